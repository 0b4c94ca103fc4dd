package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

// The email is unique per company but the same address may exist under
// several companies. The oldest registration wins so repeated snapshots
// resolve to the same user.
const findCompanyUserByEmail = `
SELECT cu.id, cu.company_id, c.merchant_id, cu.email, cu.external_customer_id, cu.created_at
FROM company_users cu
JOIN companies c ON c.id = cu.company_id
WHERE lower(cu.email) = lower($1)
ORDER BY cu.created_at ASC
LIMIT 1
`

func (q *Queries) FindCompanyUserByEmail(
	ctx context.Context,
	email string,
) (domain.CompanyUser, error) {
	var cu domain.CompanyUser
	err := q.db.QueryRow(ctx, findCompanyUserByEmail, email).
		Scan(&cu.ID, &cu.CompanyID, &cu.MerchantID, &cu.Email, &cu.ExternalCustomerID, &cu.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CompanyUser{}, domain.ErrNotFound
		}
		return domain.CompanyUser{}, err
	}
	return cu, nil
}

type FindCompanyUserByExternalIdParams struct {
	MerchantID         uuid.UUID
	ExternalCustomerID string
}

const findCompanyUserByExternalId = `
SELECT cu.id, cu.company_id, c.merchant_id, cu.email, cu.external_customer_id, cu.created_at
FROM company_users cu
JOIN companies c ON c.id = cu.company_id
WHERE c.merchant_id = $1 AND cu.external_customer_id = $2
`

func (q *Queries) FindCompanyUserByExternalId(
	ctx context.Context,
	arg FindCompanyUserByExternalIdParams,
) (domain.CompanyUser, error) {
	var cu domain.CompanyUser
	err := q.db.QueryRow(ctx, findCompanyUserByExternalId, arg.MerchantID, arg.ExternalCustomerID).
		Scan(&cu.ID, &cu.CompanyID, &cu.MerchantID, &cu.Email, &cu.ExternalCustomerID, &cu.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CompanyUser{}, domain.ErrNotFound
		}
		return domain.CompanyUser{}, err
	}
	return cu, nil
}

// upsertAnonymousCompany relies on the (merchant_id, name) unique index so
// concurrent snapshots for one merchant converge on a single bucket row. The
// DO UPDATE arm makes the conflicting insert return the existing row.
const upsertAnonymousCompany = `
INSERT INTO companies (id, merchant_id, name, is_anonymous)
VALUES ($1, $2, $3, TRUE)
ON CONFLICT (merchant_id, name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, merchant_id, name, is_anonymous, created_at
`

func (q *Queries) UpsertAnonymousCompany(
	ctx context.Context,
	merchantID uuid.UUID,
) (domain.Company, error) {
	var c domain.Company
	err := q.db.QueryRow(ctx, upsertAnonymousCompany, uuid.New(), merchantID, domain.AnonymousCompanyName).
		Scan(&c.ID, &c.MerchantID, &c.Name, &c.IsAnonymous, &c.CreatedAt)
	if err != nil {
		return domain.Company{}, err
	}
	return c, nil
}
