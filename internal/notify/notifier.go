// Package notify carries the short confirmations ("Added to cart", ...) that
// cart and wishlist changes produce. Delivery is fire-and-forget: a Notifier
// never reports failure back to the caller.
package notify

import (
	"context"
	"time"
)

type Kind string

const (
	CartAdded       Kind = "cart.added"
	CartRemoved     Kind = "cart.removed"
	WishlistAdded   Kind = "wishlist.added"
	WishlistRemoved Kind = "wishlist.removed"
)

type Notification struct {
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ProductID   string    `json:"product_id,omitempty"`
	Session     string    `json:"session,omitempty"`
	At          time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Nop drops everything.
var Nop Notifier = Func(func(context.Context, Notification) {})

// Multi delivers to every notifier in order. Nil entries are skipped.
func Multi(ns ...Notifier) Notifier {
	out := make([]Notifier, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return Func(func(ctx context.Context, n Notification) {
		for _, d := range out {
			d.Notify(ctx, n)
		}
	})
}
