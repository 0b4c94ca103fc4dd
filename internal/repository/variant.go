package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

type FindVariantByExternalIdParams struct {
	MerchantID        uuid.UUID
	ExternalVariantID int64
}

const findVariantByExternalId = `
SELECT id, merchant_id, external_variant_id, external_product_id, sku, title, price, created_at
FROM product_variants
WHERE merchant_id = $1 AND external_variant_id = $2
`

func (q *Queries) FindVariantByExternalId(
	ctx context.Context,
	arg FindVariantByExternalIdParams,
) (domain.Variant, error) {
	var (
		v     domain.Variant
		price pgtype.Numeric
	)
	err := q.db.QueryRow(ctx, findVariantByExternalId, arg.MerchantID, arg.ExternalVariantID).
		Scan(&v.ID, &v.MerchantID, &v.ExternalVariantID, &v.ExternalProductID, &v.Sku, &v.Title, &price, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Variant{}, domain.ErrNotFound
		}
		return domain.Variant{}, err
	}
	v.Price = DecimalFromNumeric(price)
	return v, nil
}
