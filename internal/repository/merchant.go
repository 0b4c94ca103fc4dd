package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

const findMerchantByShopDomain = `
SELECT id, shop_domain, name, created_at
FROM merchants
WHERE shop_domain = $1
`

func (q *Queries) FindMerchantByShopDomain(
	ctx context.Context,
	shopDomain string,
) (domain.Merchant, error) {
	var m domain.Merchant
	err := q.db.QueryRow(ctx, findMerchantByShopDomain, shopDomain).
		Scan(&m.ID, &m.ShopDomain, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Merchant{}, domain.ErrNotFound
		}
		return domain.Merchant{}, err
	}
	return m, nil
}
