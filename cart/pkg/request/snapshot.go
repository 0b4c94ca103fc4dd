package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartSnapshot is one reported state of a storefront cart plus whatever
// identity hints the embedded script had at that moment. Everything except
// the cart token is best-effort: malformed items are dropped one by one
// downstream instead of failing the whole snapshot.
type CartSnapshot struct {
	ShopDomain         string         `validate:"omitempty,fqdn"    json:"shopDomain"`
	CartToken          string         `validate:"required"          json:"cartToken"`
	CustomerEmail      string         `validate:"omitempty,email"   json:"customerEmail"`
	ExternalCustomerId string         `validate:"omitempty"         json:"externalCustomerId"`
	CompanyId          uuid.UUID      `validate:"omitempty"         json:"companyId"`
	UserId             uuid.UUID      `validate:"omitempty"         json:"userId"`
	Currency           string         `validate:"omitempty,iso4217" json:"currency"`
	Items              []SnapshotItem `validate:"omitempty,dive"  json:"items"`
}

// SnapshotItem is one raw line from the storefront. Variant and product ids
// arrive as strings because the platform mints them as either plain numbers
// or gid:// URIs; they are parsed into int64 downstream.
type SnapshotItem struct {
	ExternalVariantId string          `json:"variantId"`
	ExternalProductId string          `json:"productId"`
	Sku               string          `json:"sku"`
	Title             string          `json:"title"`
	Quantity          int32           `json:"quantity"`
	Price             decimal.Decimal `json:"price"`
	ListPrice         decimal.Decimal `json:"listPrice"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
	PriceUnit         string          `validate:"omitempty,oneof=cents decimal" json:"priceUnit"`
}
