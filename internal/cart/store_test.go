package cart

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GlowMart/internal/catalog"
	"GlowMart/internal/kv"
	"GlowMart/internal/notify"
)

var (
	serum = catalog.Product{ID: "1", Name: "Vitamin C Serum", Price: 599, OriginalPrice: 699}
	oil   = catalog.Product{ID: "6", Name: "Onion Hair Oil", Price: 399}
	edp   = catalog.Product{ID: "10", Name: "Oudh Eau de Parfum", Price: 4950}
)

type collector struct {
	got []notify.Notification
}

func (c *collector) Notify(_ context.Context, n notify.Notification) { c.got = append(c.got, n) }

func (c *collector) titles() []string {
	out := make([]string, 0, len(c.got))
	for _, n := range c.got {
		out = append(out, n.Title)
	}
	return out
}

func openStore(t *testing.T, store kv.Store) (*Store, *collector) {
	t.Helper()

	c := &collector{}
	s, err := Open(context.Background(), store, KeysFor("s1"), Options{Session: "s1", Notifier: c})
	require.NoError(t, err)
	return s, c
}

func TestAddToCart_DefaultQuantity(t *testing.T) {
	s, c := openStore(t, kv.NewMemStore())
	ctx := context.Background()

	before := s.CartItemCount()
	require.NoError(t, s.AddToCart(ctx, serum, 1))

	assert.True(t, s.IsInCart(serum.ID))
	assert.Equal(t, before+1, s.CartItemCount())
	require.Len(t, c.got, 1)
	assert.Equal(t, "Added to cart", c.got[0].Title)
	assert.Equal(t, "Vitamin C Serum has been added to your cart.", c.got[0].Description)
	assert.Equal(t, "s1", c.got[0].Session)
}

func TestAddToCart_MergesLines(t *testing.T) {
	s, _ := openStore(t, kv.NewMemStore())
	ctx := context.Background()

	require.NoError(t, s.AddToCart(ctx, serum, 2))
	require.NoError(t, s.AddToCart(ctx, serum, 3))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, int64(5*599), s.CartTotal())
}

func TestAddToCart_RejectsNonPositive(t *testing.T) {
	s, c := openStore(t, kv.NewMemStore())

	assert.ErrorIs(t, s.AddToCart(context.Background(), serum, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddToCart(context.Background(), serum, -2), ErrInvalidQuantity)
	assert.False(t, s.IsInCart(serum.ID))
	assert.Empty(t, c.got)
}

func TestUpdateQuantity(t *testing.T) {
	s, c := openStore(t, kv.NewMemStore())
	ctx := context.Background()

	require.NoError(t, s.AddToCart(ctx, serum, 1))
	require.NoError(t, s.AddToCart(ctx, oil, 1))

	require.NoError(t, s.UpdateQuantity(ctx, oil.ID, 4))
	assert.Equal(t, 5, s.CartItemCount(), "update replaces the quantity")

	require.NoError(t, s.UpdateQuantity(ctx, "missing", 3))
	assert.Len(t, s.Lines(), 2, "updating an absent line is a no-op")

	require.NoError(t, s.UpdateQuantity(ctx, serum.ID, 0))
	assert.False(t, s.IsInCart(serum.ID))
	assert.Equal(t, "Removed from cart", c.got[len(c.got)-1].Title)
}

func TestRemoveFromCart_AbsentIsNoop(t *testing.T) {
	s, c := openStore(t, kv.NewMemStore())
	ctx := context.Background()

	require.NoError(t, s.AddToCart(ctx, serum, 1))
	require.NoError(t, s.RemoveFromCart(ctx, "nope"))
	assert.True(t, s.IsInCart(serum.ID))
	assert.Equal(t, []string{"Added to cart", "Removed from cart"}, c.titles())
}

func TestClearCart(t *testing.T) {
	s, _ := openStore(t, kv.NewMemStore())
	ctx := context.Background()

	require.NoError(t, s.AddToCart(ctx, serum, 1))
	require.NoError(t, s.AddToCart(ctx, edp, 2))
	require.NoError(t, s.ClearCart(ctx))

	assert.Empty(t, s.Lines())
	assert.Zero(t, s.CartTotal())
	assert.Zero(t, s.CartItemCount())
}

func TestWishlistToggle(t *testing.T) {
	s, c := openStore(t, kv.NewMemStore())
	ctx := context.Background()

	in, err := s.AddToWishlist(ctx, oil)
	require.NoError(t, err)
	assert.True(t, in)
	assert.True(t, s.IsInWishlist(oil.ID))

	in, err = s.AddToWishlist(ctx, oil)
	require.NoError(t, err)
	assert.False(t, in)
	assert.False(t, s.IsInWishlist(oil.ID), "toggling twice restores membership")

	require.Len(t, c.got, 2)
	assert.Equal(t, notify.WishlistAdded, c.got[0].Kind)
	assert.Equal(t, "Onion Hair Oil added to your wishlist.", c.got[0].Description)
	assert.Equal(t, notify.WishlistRemoved, c.got[1].Kind)
	assert.Equal(t, "Onion Hair Oil removed from your wishlist.", c.got[1].Description)
}

func TestWishlistAddedAt(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s, err := Open(context.Background(), kv.NewMemStore(), KeysFor("s"), Options{Now: func() time.Time { return at }})
	require.NoError(t, err)

	_, err = s.AddToWishlist(context.Background(), serum)
	require.NoError(t, err)

	w := s.Wishlist()
	require.Len(t, w, 1)
	assert.True(t, at.Equal(w[0].AddedAt))
}

func TestRemoveFromWishlist(t *testing.T) {
	s, _ := openStore(t, kv.NewMemStore())
	ctx := context.Background()

	_, err := s.AddToWishlist(ctx, oil)
	require.NoError(t, err)
	require.NoError(t, s.RemoveFromWishlist(ctx, "absent"))
	assert.True(t, s.IsInWishlist(oil.ID))

	require.NoError(t, s.RemoveFromWishlist(ctx, oil.ID))
	assert.False(t, s.IsInWishlist(oil.ID))
}

func TestLinesReturnsCopy(t *testing.T) {
	s, _ := openStore(t, kv.NewMemStore())
	require.NoError(t, s.AddToCart(context.Background(), serum, 1))

	lines := s.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, s.CartItemCount())
}

// TestCartTotalInvariant drives a random operation sequence and checks the
// derived values against the lines after every step.
func TestCartTotalInvariant(t *testing.T) {
	s, _ := openStore(t, kv.NewMemStore())
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	products := []catalog.Product{serum, oil, edp}

	for step := 0; step < 500; step++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(4) {
		case 0:
			require.NoError(t, s.AddToCart(ctx, p, 1+rng.Intn(3)))
		case 1:
			require.NoError(t, s.RemoveFromCart(ctx, p.ID))
		case 2:
			require.NoError(t, s.UpdateQuantity(ctx, p.ID, rng.Intn(5)-1))
		case 3:
			if rng.Intn(10) == 0 {
				require.NoError(t, s.ClearCart(ctx))
			}
		}

		var total int64
		count := 0
		seen := map[string]bool{}
		for _, l := range s.Lines() {
			require.False(t, seen[l.Product.ID], "duplicate line at step %d", step)
			seen[l.Product.ID] = true
			require.GreaterOrEqual(t, l.Quantity, 1)
			total += l.Product.Price * int64(l.Quantity)
			count += l.Quantity
		}
		require.Equal(t, total, s.CartTotal(), "step %d", step)
		require.Equal(t, count, s.CartItemCount(), "step %d", step)
	}
}

func TestPersistAndRehydrate(t *testing.T) {
	mem := kv.NewMemStore()
	ctx := context.Background()

	s, _ := openStore(t, mem)
	require.NoError(t, s.AddToCart(ctx, serum, 2))
	require.NoError(t, s.AddToCart(ctx, oil, 1))
	_, err := s.AddToWishlist(ctx, edp)
	require.NoError(t, err)

	again, _ := openStore(t, mem)
	assert.Equal(t, s.Lines(), again.Lines())
	assert.Equal(t, s.CartTotal(), again.CartTotal())
	assert.True(t, again.IsInWishlist(edp.ID))

	raw, ok, err := mem.Get(ctx, KeysFor("s1").Cart)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"quantity":2`)

	require.NoError(t, s.ClearCart(ctx))
	raw, _, err = mem.Get(ctx, KeysFor("s1").Cart)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw), "an empty cart persists as an empty array")
}

type failingKV struct {
	kv.Store
	getErr, setErr error
}

func (f failingKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	boom := errors.New("redis down")
	s, c := openStore(t, failingKV{Store: kv.NewMemStore(), setErr: boom})

	err := s.AddToCart(context.Background(), serum, 1)
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, boom)
	assert.True(t, s.IsInCart(serum.ID))
	assert.Len(t, c.got, 1, "the shopper is still told")
}

func TestOpen_BackendError(t *testing.T) {
	_, err := Open(context.Background(), failingKV{Store: kv.NewMemStore(), getErr: errors.New("dial")}, KeysFor("s"), Options{})
	assert.Error(t, err)
}
