package constants

const (
	AppCartService = "cart-service"

	AudienceMerchant = "merchant-dashboard"
)
