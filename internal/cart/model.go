package cart

import (
	"time"

	"GlowMart/internal/catalog"
)

// Line is one product in the cart. Quantity is always at least 1.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

func (l Line) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

type WishlistEntry struct {
	Product catalog.Product `json:"product"`
	AddedAt time.Time       `json:"addedAt"`
}

const (
	cartKeyPrefix     = "glowmart-cart"
	wishlistKeyPrefix = "glowmart-wishlist"
)

// Keys names the two kv entries a Store persists to.
type Keys struct {
	Cart     string
	Wishlist string
}

// KeysFor scopes the storage keys to one shopper session.
func KeysFor(session string) Keys {
	return Keys{
		Cart:     cartKeyPrefix + ":" + session,
		Wishlist: wishlistKeyPrefix + ":" + session,
	}
}
