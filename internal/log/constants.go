package log

const (
	KeyAppName   = "app"
	KeyTag       = "tag"
	KeyProcess   = "process"
	KeyRequestID = "requestId"
	KeyConfig    = "config"
	KeyToken     = "token"

	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"

	KeyMerchantID  = "merchantId"
	KeyCompanyID   = "companyId"
	KeyCartID      = "cartId"
	KeyCartToken   = "cartToken"
	KeyCartItems   = "cartItems"
	KeyShopDomain  = "shopDomain"
	KeyEmail       = "email"
	KeyCacheKey    = "cacheKey"
	KeyDbURL       = "dbURL"
	KeyTraceID     = "traceId"
	KeySpanID      = "spanId"
	KeyEventType   = "eventType"
	KeySkippedItem = "skippedItem"
)
