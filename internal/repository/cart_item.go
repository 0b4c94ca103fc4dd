package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

const findCartItems = `
SELECT id, cart_id, variant_id, external_variant_id, external_product_id, sku, title, quantity, list_price, unit_price, discount_amount, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC, id ASC
`

func (q *Queries) FindCartItems(
	ctx context.Context,
	cartID uuid.UUID,
) ([]domain.CartItem, error) {
	rows, err := q.db.Query(ctx, findCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []domain.CartItem{}
	for rows.Next() {
		var (
			item      domain.CartItem
			listPrice pgtype.Numeric
			unitPrice pgtype.Numeric
			discount  pgtype.Numeric
		)
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.VariantID,
			&item.ExternalVariantID,
			&item.ExternalProductID,
			&item.Sku,
			&item.Title,
			&item.Quantity,
			&listPrice,
			&unitPrice,
			&discount,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.ListPrice = DecimalFromNumeric(listPrice)
		item.UnitPrice = DecimalFromNumeric(unitPrice)
		item.DiscountAmount = DecimalFromNumeric(discount)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteCartItems = `
DELETE FROM cart_items
WHERE cart_id = $1
`

func (q *Queries) DeleteCartItems(ctx context.Context, cartID uuid.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCartItems, cartID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type InsertCartItemsParams struct {
	ID                uuid.UUID
	CartID            uuid.UUID
	VariantID         *uuid.UUID
	ExternalVariantID int64
	ExternalProductID int64
	Sku               string
	Title             string
	Quantity          int32
	ListPrice         pgtype.Numeric
	UnitPrice         pgtype.Numeric
	DiscountAmount    pgtype.Numeric
}

const insertCartItem = `
INSERT INTO cart_items (id, cart_id, variant_id, external_variant_id, external_product_id, sku, title, quantity, list_price, unit_price, discount_amount)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func (q *Queries) InsertCartItems(
	ctx context.Context,
	arg []InsertCartItemsParams,
) (int64, error) {
	var inserted int64
	for _, item := range arg {
		_, err := q.db.Exec(
			ctx,
			insertCartItem,
			item.ID,
			item.CartID,
			item.VariantID,
			item.ExternalVariantID,
			item.ExternalProductID,
			item.Sku,
			item.Title,
			item.Quantity,
			item.ListPrice,
			item.UnitPrice,
			item.DiscountAmount,
		)
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
