package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartStatus string

const (
	CartStatusDraft     CartStatus = "draft"
	CartStatusRestored  CartStatus = "restored"
	CartStatusConverted CartStatus = "converted"
)

// Cart is one storefront shopping session. MerchantID never changes after
// creation; CompanyID may change exactly once, when a previously anonymous
// cart becomes identified.
type Cart struct {
	ID               uuid.UUID
	MerchantID       uuid.UUID
	CompanyID        uuid.UUID
	CreatedBy        *uuid.UUID
	CartToken        string
	Status           CartStatus
	ConvertedOrderID *uuid.UUID
	Metadata         CartMetadata
	Subtotal         decimal.Decimal
	Total            decimal.Decimal
	Items            []CartItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Converted reports whether the cart has been turned into an order. A
// converted cart is immutable to reconciliation.
func (c Cart) Converted() bool {
	return c.ConvertedOrderID != nil
}

// CartItem is one reconciled line in a cart. ExternalVariantID is the join
// key for diffing; rows without it are order-only noise and excluded from
// diff comparisons.
type CartItem struct {
	ID                uuid.UUID
	CartID            uuid.UUID
	VariantID         *uuid.UUID
	ExternalVariantID int64
	ExternalProductID int64
	Sku               string
	Title             string
	Quantity          int32
	ListPrice         decimal.Decimal
	UnitPrice         decimal.Decimal
	DiscountAmount    decimal.Decimal
	CreatedAt         time.Time
}

// CartMetadata carries the identity hints seen for a cart. Merge never
// clears a previously known field, so identity cannot regress; the typed
// struct replaces the free-form map the storefront script reports.
type CartMetadata struct {
	IsAnonymous        bool       `json:"isAnonymous"`
	CustomerEmail      string     `json:"customerEmail,omitempty"`
	ExternalCustomerID string     `json:"externalCustomerId,omitempty"`
	LastSyncAt         *time.Time `json:"lastSyncAt,omitempty"`
}

// Merge overlays incoming metadata onto m. Zero values in the incoming
// snapshot leave the stored value untouched; IsAnonymous only transitions
// from anonymous to identified, never back.
func (m CartMetadata) Merge(in CartMetadata) CartMetadata {
	merged := m
	if in.CustomerEmail != "" {
		merged.CustomerEmail = in.CustomerEmail
	}
	if in.ExternalCustomerID != "" {
		merged.ExternalCustomerID = in.ExternalCustomerID
	}
	if !in.IsAnonymous {
		merged.IsAnonymous = false
	}
	if in.LastSyncAt != nil {
		merged.LastSyncAt = in.LastSyncAt
	}
	return merged
}
