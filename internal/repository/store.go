package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// Querier is the storage surface the cart engine runs against. *Queries is
// the pgx implementation; tests substitute stubs.
type Querier interface {
	FindMerchantByShopDomain(ctx context.Context, shopDomain string) (domain.Merchant, error)
	FindCompanyUserByEmail(ctx context.Context, email string) (domain.CompanyUser, error)
	FindCompanyUserByExternalId(ctx context.Context, arg FindCompanyUserByExternalIdParams) (domain.CompanyUser, error)
	UpsertAnonymousCompany(ctx context.Context, merchantID uuid.UUID) (domain.Company, error)
	FindCartByToken(ctx context.Context, arg FindCartByTokenParams) (domain.Cart, error)
	FindCartById(ctx context.Context, arg FindCartByIdParams) (domain.Cart, error)
	FindCartsByMerchant(ctx context.Context, merchantID uuid.UUID) ([]domain.Cart, error)
	InsertCart(ctx context.Context, arg InsertCartParams) (domain.Cart, error)
	UpdateCartOnSync(ctx context.Context, arg UpdateCartOnSyncParams) (domain.Cart, error)
	UpdateCartStatus(ctx context.Context, arg UpdateCartStatusParams) (int64, error)
	UpdateCartTotals(ctx context.Context, arg UpdateCartTotalsParams) error
	DeleteCart(ctx context.Context, arg DeleteCartParams) (int64, error)
	FindCartItems(ctx context.Context, cartID uuid.UUID) ([]domain.CartItem, error)
	DeleteCartItems(ctx context.Context, cartID uuid.UUID) (int64, error)
	InsertCartItems(ctx context.Context, arg []InsertCartItemsParams) (int64, error)
	FindVariantByExternalId(ctx context.Context, arg FindVariantByExternalIdParams) (domain.Variant, error)
	InsertActivityLog(ctx context.Context, arg InsertActivityLogParams) error
	FindActivityLogsByCart(ctx context.Context, arg FindActivityLogsByCartParams) ([]domain.ActivityLog, error)
}

var _ Querier = (*Queries)(nil)
