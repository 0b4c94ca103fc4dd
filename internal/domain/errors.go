package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found for the
	// requesting merchant.
	ErrNotFound = errors.New("not found")
	// ErrMerchantUnresolved means a snapshot carried neither a shop domain
	// nor an email that maps to a known company user. The snapshot cannot be
	// durably stored without a tenant and must be rejected whole.
	ErrMerchantUnresolved = errors.New("merchant unresolved")
)
