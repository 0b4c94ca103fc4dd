package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnonymousCompanyName is the well-known bucket company every merchant gets
// for carts whose purchaser could not be resolved. Unique per merchant on
// (merchant_id, name).
const AnonymousCompanyName = "Anonymous Customers"

type Merchant struct {
	ID         uuid.UUID
	ShopDomain string
	Name       string
	CreatedAt  time.Time
}

type Company struct {
	ID          uuid.UUID
	MerchantID  uuid.UUID
	Name        string
	IsAnonymous bool
	CreatedAt   time.Time
}

// CompanyUser is an identified B2B purchaser, resolved by exact email match
// or by the commerce platform's customer id.
type CompanyUser struct {
	ID                 uuid.UUID
	CompanyID          uuid.UUID
	MerchantID         uuid.UUID
	Email              string
	ExternalCustomerID string
	CreatedAt          time.Time
}

// Variant is a locally synced catalog variant, used only to enrich incoming
// snapshot items with sku/title and the internal variant reference.
type Variant struct {
	ID                uuid.UUID
	MerchantID        uuid.UUID
	ExternalVariantID int64
	ExternalProductID int64
	Sku               string
	Title             string
	Price             decimal.Decimal
	CreatedAt         time.Time
}
