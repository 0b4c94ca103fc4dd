package cache

const (
	// KeyCart caches a cart response by cart id.
	KeyCart = "carts:%s"
	// KeyVariant caches a catalog variant by merchant id and external
	// variant id.
	KeyVariant = "variants:%s:%d"
)
