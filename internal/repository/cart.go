package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

const cartColumns = `id, merchant_id, company_id, created_by, cart_token, status, converted_order_id, metadata, subtotal, total, created_at, updated_at`

func scanCart(row pgx.Row) (domain.Cart, error) {
	var (
		cart     domain.Cart
		status   string
		metadata []byte
		subtotal pgtype.Numeric
		total    pgtype.Numeric
	)
	err := row.Scan(
		&cart.ID,
		&cart.MerchantID,
		&cart.CompanyID,
		&cart.CreatedBy,
		&cart.CartToken,
		&status,
		&cart.ConvertedOrderID,
		&metadata,
		&subtotal,
		&total,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.Status = domain.CartStatus(status)
	cart.Subtotal = DecimalFromNumeric(subtotal)
	cart.Total = DecimalFromNumeric(total)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &cart.Metadata); err != nil {
			return domain.Cart{}, err
		}
	}
	return cart, nil
}

type FindCartByTokenParams struct {
	MerchantID      uuid.UUID
	CartToken       string
	NormalizedToken string
}

// findCartByToken matches the raw or the normalized token so carts stored
// before token trimming keep resolving.
const findCartByToken = `
SELECT ` + cartColumns + `
FROM carts
WHERE merchant_id = $1 AND cart_token IN ($2, $3)
ORDER BY created_at DESC
LIMIT 1
`

func (q *Queries) FindCartByToken(
	ctx context.Context,
	arg FindCartByTokenParams,
) (domain.Cart, error) {
	cart, err := scanCart(
		q.db.QueryRow(ctx, findCartByToken, arg.MerchantID, arg.CartToken, arg.NormalizedToken),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, domain.ErrNotFound
		}
		return domain.Cart{}, err
	}
	return cart, nil
}

type FindCartByIdParams struct {
	ID         uuid.UUID
	MerchantID uuid.UUID
}

const findCartById = `
SELECT ` + cartColumns + `
FROM carts
WHERE id = $1 AND merchant_id = $2
`

func (q *Queries) FindCartById(
	ctx context.Context,
	arg FindCartByIdParams,
) (domain.Cart, error) {
	cart, err := scanCart(q.db.QueryRow(ctx, findCartById, arg.ID, arg.MerchantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, domain.ErrNotFound
		}
		return domain.Cart{}, err
	}
	items, err := q.FindCartItems(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.Items = items
	return cart, nil
}

const findCartsByMerchant = `
SELECT ` + cartColumns + `
FROM carts
WHERE merchant_id = $1 AND status = 'draft' AND converted_order_id IS NULL
ORDER BY updated_at DESC
`

func (q *Queries) FindCartsByMerchant(
	ctx context.Context,
	merchantID uuid.UUID,
) ([]domain.Cart, error) {
	rows, err := q.db.Query(ctx, findCartsByMerchant, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	carts := []domain.Cart{}
	for rows.Next() {
		cart, err := scanCart(rows)
		if err != nil {
			return nil, err
		}
		carts = append(carts, cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return carts, nil
}

type InsertCartParams struct {
	ID         uuid.UUID
	MerchantID uuid.UUID
	CompanyID  uuid.UUID
	CreatedBy  *uuid.UUID
	CartToken  string
	Metadata   domain.CartMetadata
}

const insertCart = `
INSERT INTO carts (id, merchant_id, company_id, created_by, cart_token, status, metadata)
VALUES ($1, $2, $3, $4, $5, 'draft', $6)
RETURNING ` + cartColumns + `
`

func (q *Queries) InsertCart(ctx context.Context, arg InsertCartParams) (domain.Cart, error) {
	metadata, err := json.Marshal(arg.Metadata)
	if err != nil {
		return domain.Cart{}, err
	}
	return scanCart(q.db.QueryRow(
		ctx,
		insertCart,
		arg.ID,
		arg.MerchantID,
		arg.CompanyID,
		arg.CreatedBy,
		arg.CartToken,
		metadata,
	))
}

type UpdateCartOnSyncParams struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	CreatedBy *uuid.UUID
	Metadata  domain.CartMetadata
}

// updateCartOnSync never touches merchant_id; COALESCE keeps the stored
// created_by when no user was resolved this pass.
const updateCartOnSync = `
UPDATE carts
SET company_id = $2,
    created_by = COALESCE($3, created_by),
    metadata   = $4,
    updated_at = now()
WHERE id = $1
RETURNING ` + cartColumns + `
`

func (q *Queries) UpdateCartOnSync(
	ctx context.Context,
	arg UpdateCartOnSyncParams,
) (domain.Cart, error) {
	metadata, err := json.Marshal(arg.Metadata)
	if err != nil {
		return domain.Cart{}, err
	}
	return scanCart(q.db.QueryRow(
		ctx,
		updateCartOnSync,
		arg.ID,
		arg.CompanyID,
		arg.CreatedBy,
		metadata,
	))
}

type UpdateCartStatusParams struct {
	ID         uuid.UUID
	MerchantID uuid.UUID
	Status     domain.CartStatus
}

const updateCartStatus = `
UPDATE carts
SET status = $3, updated_at = now()
WHERE id = $1 AND merchant_id = $2
`

func (q *Queries) UpdateCartStatus(
	ctx context.Context,
	arg UpdateCartStatusParams,
) (int64, error) {
	tag, err := q.db.Exec(ctx, updateCartStatus, arg.ID, arg.MerchantID, string(arg.Status))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type UpdateCartTotalsParams struct {
	ID       uuid.UUID
	Subtotal pgtype.Numeric
	Total    pgtype.Numeric
}

const updateCartTotals = `
UPDATE carts
SET subtotal = $2, total = $3, updated_at = now()
WHERE id = $1
`

func (q *Queries) UpdateCartTotals(ctx context.Context, arg UpdateCartTotalsParams) error {
	_, err := q.db.Exec(ctx, updateCartTotals, arg.ID, arg.Subtotal, arg.Total)
	return err
}

type DeleteCartParams struct {
	ID         uuid.UUID
	MerchantID uuid.UUID
}

const deleteCart = `
DELETE FROM carts
WHERE id = $1 AND merchant_id = $2
`

func (q *Queries) DeleteCart(ctx context.Context, arg DeleteCartParams) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteCart, arg.ID, arg.MerchantID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
