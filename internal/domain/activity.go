package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActivityType is the closed set of audit events the engine emits. The
// payload for each variant is one of the typed structs below, serialized to
// jsonb.
type ActivityType string

const (
	ActivityCartCreated        ActivityType = "cart_created"
	ActivityCartItemsAdded     ActivityType = "cart_items_added"
	ActivityCartItemAdded      ActivityType = "cart_item_added"
	ActivityCartItemRemoved    ActivityType = "cart_item_removed"
	ActivityCartItemUpdated    ActivityType = "cart_item_updated"
	ActivityCartCompanyUpdated ActivityType = "cart_company_updated"
)

// ActivityLog is an immutable, append-only audit record scoped to
// merchant/company. Rows are never updated or deleted.
type ActivityLog struct {
	ID         uuid.UUID
	MerchantID uuid.UUID
	CompanyID  *uuid.UUID
	Type       ActivityType
	Payload    json.RawMessage
	CreatedAt  time.Time
}

// ItemChange is one line of a batched item diff event.
type ItemChange struct {
	ExternalVariantID int64  `json:"externalVariantId"`
	Sku               string `json:"sku,omitempty"`
	Title             string `json:"title,omitempty"`
	Quantity          int32  `json:"quantity"`
	OldQuantity       *int32 `json:"oldQuantity,omitempty"`
}

type CartCreatedPayload struct {
	CartID    uuid.UUID `json:"cartId"`
	CartToken string    `json:"cartToken"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemsChangedPayload batches every changed item of one diff category into a
// single event.
type ItemsChangedPayload struct {
	CartID    uuid.UUID    `json:"cartId"`
	Items     []ItemChange `json:"items"`
	Timestamp time.Time    `json:"timestamp"`
}

type CompanyUpdatedPayload struct {
	CartID       uuid.UUID `json:"cartId"`
	OldCompanyID uuid.UUID `json:"oldCompanyId"`
	NewCompanyID uuid.UUID `json:"newCompanyId"`
	Timestamp    time.Time `json:"timestamp"`
}
