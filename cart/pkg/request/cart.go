package request

import "github.com/google/uuid"

type FindCartById struct {
	ID         uuid.UUID `json:"id" validate:"required"`
	MerchantID uuid.UUID `json:"merchantId" validate:"required"`
}

type FindCartActivities struct {
	CartId     uuid.UUID `json:"cartId" validate:"required"`
	MerchantId uuid.UUID `json:"merchantId" validate:"required"`
	Limit      int32     `json:"limit" validate:"omitempty,min=1,max=500"`
}

type CartLifecycle struct {
	CartId     uuid.UUID `json:"cartId" validate:"required"`
	MerchantId uuid.UUID `json:"merchantId" validate:"required"`
}
