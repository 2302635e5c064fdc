package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"GlowMart/internal/catalog"
	"GlowMart/internal/kv"
	"GlowMart/internal/notify"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrPersist wraps storage failures after a mutation. The in-memory
	// change has already been applied when it is returned.
	ErrPersist = errors.New("persist snapshot")
)

type Options struct {
	// Session is copied onto every notification.
	Session  string
	Notifier notify.Notifier
	Log      *zap.Logger
	Now      func() time.Time
}

// Store holds one shopper's cart and wishlist. Every mutation writes the
// affected collection back to kv in full; totals are derived on each read.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	keys     Keys
	cart     []Line
	wishlist []WishlistEntry

	session  string
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

// Open rehydrates a Store from kv. Missing or unreadable snapshots start
// empty; only a failing kv backend is an error.
func Open(ctx context.Context, store kv.Store, keys Keys, opts Options) (*Store, error) {
	s := &Store{
		kv:       store,
		keys:     keys,
		cart:     []Line{},
		wishlist: []WishlistEntry{},
		session:  opts.Session,
		notifier: opts.Notifier,
		log:      opts.Log,
		now:      opts.Now,
	}
	if s.notifier == nil {
		s.notifier = notify.Nop
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	lines, err := loadSnapshot[Line](ctx, store, keys.Cart, s.log)
	if err != nil {
		return nil, err
	}
	entries, err := loadSnapshot[WishlistEntry](ctx, store, keys.Wishlist, s.log)
	if err != nil {
		return nil, err
	}

	s.cart = cleanLines(lines)
	s.wishlist = cleanWishlist(entries)
	return s, nil
}

// AddToCart adds quantity units of p, merging into an existing line.
func (s *Store) AddToCart(ctx context.Context, p catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	if i := s.cartIndex(p.ID); i >= 0 {
		s.cart[i].Quantity += quantity
	} else {
		s.cart = append(s.cart, Line{Product: p, Quantity: quantity})
	}
	err := s.saveCartLocked(ctx)
	s.mu.Unlock()

	s.emit(ctx, notify.Notification{
		Kind:        notify.CartAdded,
		Title:       "Added to cart",
		Description: fmt.Sprintf("%s has been added to your cart.", p.Name),
		ProductID:   p.ID,
	})
	return err
}

// RemoveFromCart drops the line for productID. Removing an absent line is
// not an error and still confirms to the shopper.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	s.cart = slices.DeleteFunc(s.cart, func(l Line) bool { return l.Product.ID == productID })
	err := s.saveCartLocked(ctx)
	s.mu.Unlock()

	s.emit(ctx, notify.Notification{
		Kind:        notify.CartRemoved,
		Title:       "Removed from cart",
		Description: "Item has been removed from your cart.",
		ProductID:   productID,
	})
	return err
}

// UpdateQuantity sets the quantity of an existing line. Anything below 1
// removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveFromCart(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.cartIndex(productID)
	if i < 0 {
		return nil
	}
	s.cart[i].Quantity = quantity
	return s.saveCartLocked(ctx)
}

func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = []Line{}
	return s.saveCartLocked(ctx)
}

// AddToWishlist toggles p: it is added when absent and removed when present.
// The result reports whether p is in the wishlist afterwards.
func (s *Store) AddToWishlist(ctx context.Context, p catalog.Product) (bool, error) {
	s.mu.Lock()
	added := true
	if i := s.wishlistIndex(p.ID); i >= 0 {
		s.wishlist = slices.Delete(s.wishlist, i, i+1)
		added = false
	} else {
		s.wishlist = append(s.wishlist, WishlistEntry{Product: p, AddedAt: s.now().UTC()})
	}
	err := s.saveWishlistLocked(ctx)
	s.mu.Unlock()

	n := notify.Notification{
		Kind:        notify.WishlistAdded,
		Title:       "Added to wishlist",
		Description: fmt.Sprintf("%s added to your wishlist.", p.Name),
		ProductID:   p.ID,
	}
	if !added {
		n.Kind = notify.WishlistRemoved
		n.Title = "Removed from wishlist"
		n.Description = fmt.Sprintf("%s removed from your wishlist.", p.Name)
	}
	s.emit(ctx, n)

	return added, err
}

func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.wishlistIndex(productID)
	if i < 0 {
		return nil
	}
	s.wishlist = slices.Delete(s.wishlist, i, i+1)
	return s.saveWishlistLocked(ctx)
}

func (s *Store) IsInCart(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartIndex(productID) >= 0
}

func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistIndex(productID) >= 0
}

// CartTotal is Σ price × quantity over the current lines.
func (s *Store) CartTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartTotal(s.cart)
}

// CartItemCount is Σ quantity over the current lines.
func (s *Store) CartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itemCount(s.cart)
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cart)
}

// Wishlist returns a copy of the wishlist in insertion order.
func (s *Store) Wishlist() []WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.wishlist)
}

func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summarize(s.cart)
}

func (s *Store) cartIndex(id string) int {
	return slices.IndexFunc(s.cart, func(l Line) bool { return l.Product.ID == id })
}

func (s *Store) wishlistIndex(id string) int {
	return slices.IndexFunc(s.wishlist, func(e WishlistEntry) bool { return e.Product.ID == id })
}

func (s *Store) saveCartLocked(ctx context.Context) error {
	if err := saveSnapshot(ctx, s.kv, s.keys.Cart, s.cart); err != nil {
		s.log.Error("save cart failed", zap.String("key", s.keys.Cart), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) saveWishlistLocked(ctx context.Context) error {
	if err := saveSnapshot(ctx, s.kv, s.keys.Wishlist, s.wishlist); err != nil {
		s.log.Error("save wishlist failed", zap.String("key", s.keys.Wishlist), zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) emit(ctx context.Context, n notify.Notification) {
	n.Session = s.session
	n.At = s.now().UTC()
	s.notifier.Notify(ctx, n)
}

func cartTotal(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

func itemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
