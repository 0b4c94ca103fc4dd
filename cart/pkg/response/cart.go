package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

type Cart struct {
	ID         uuid.UUID           `json:"id"`
	MerchantID uuid.UUID           `json:"merchantId"`
	CompanyID  uuid.UUID           `json:"companyId"`
	CreatedBy  *uuid.UUID          `json:"createdBy,omitempty"`
	CartToken  string              `json:"cartToken"`
	Status     string              `json:"status"`
	Metadata   domain.CartMetadata `json:"metadata"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Total      decimal.Decimal     `json:"total"`
	Items      []CartItem          `json:"items"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

type CartItem struct {
	ID                uuid.UUID       `json:"id"`
	VariantID         *uuid.UUID      `json:"variantId,omitempty"`
	ExternalVariantID int64           `json:"externalVariantId"`
	ExternalProductID int64           `json:"externalProductId"`
	Sku               string          `json:"sku,omitempty"`
	Title             string          `json:"title,omitempty"`
	Quantity          int32           `json:"quantity"`
	ListPrice         decimal.Decimal `json:"listPrice"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
}

// Lifecycle is the result shape for restore/delete operations.
type Lifecycle struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
