package cart_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"GlowMart/internal/cart"
	"GlowMart/internal/catalog"
	"GlowMart/internal/kv"
	"GlowMart/internal/notify"
)

type cartBody struct {
	Items         []cart.Line           `json:"items"`
	ItemCount     int                   `json:"item_count"`
	Total         int64                 `json:"total"`
	Summary       cart.Summary          `json:"summary"`
	Notifications []notify.Notification `json:"notifications"`
	Error         string                `json:"error"`
}

type wishlistBody struct {
	Items         []cart.WishlistEntry  `json:"items"`
	Count         int                   `json:"count"`
	InWishlist    *bool                 `json:"in_wishlist"`
	Notifications []notify.Notification `json:"notifications"`
	Error         string                `json:"error"`
}

type env struct {
	ts  *httptest.Server
	sid string
}

func newEnv(t *testing.T, store kv.Store, source cart.ProductSource) *env {
	t.Helper()

	s := &cart.Server{
		Sessions: cart.NewSessions(store, cart.SessionOptions{}),
		Catalog:  source,
	}
	h := cart.NewHandler(s, cart.HTTPDeps{
		Log:      zap.NewNop(),
		Service:  "cart",
		Registry: prometheus.NewRegistry(),
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return &env{ts: ts, sid: uuid.NewString()}
}

func newDefaultEnv(t *testing.T) *env {
	return newEnv(t, kv.NewMemStore(), cart.StoreSource{Store: catalog.NewStore()})
}

func (e *env) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if e.sid != "" {
		req.Header.Set(cart.SessionHeader, e.sid)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestCart_AddUpdateRemove(t *testing.T) {
	e := newDefaultEnv(t)

	var got cartBody
	code := e.do(t, http.MethodPost, "/cart/items", map[string]any{"product_id": "1"}, &got)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 1, got.ItemCount)
	assert.Equal(t, int64(599), got.Total)
	require.Len(t, got.Notifications, 1)
	assert.Equal(t, "Added to cart", got.Notifications[0].Title)

	got = cartBody{}
	code = e.do(t, http.MethodPost, "/cart/items", map[string]any{"product_id": "1", "quantity": 2}, &got)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.Equal(t, int64(1797), got.Summary.Subtotal)
	assert.Zero(t, got.Summary.DeliveryFee)

	got = cartBody{}
	code = e.do(t, http.MethodPut, "/cart/items/1", map[string]any{"quantity": 1}, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, got.ItemCount)
	assert.Equal(t, int64(99), got.Summary.DeliveryFee)
	assert.Equal(t, int64(401), got.Summary.FreeDeliveryGap)
	assert.Empty(t, got.Notifications, "quantity updates are silent")

	var member map[string]bool
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/cart/items/1", nil, &member))
	assert.True(t, member["in_cart"])

	got = cartBody{}
	code = e.do(t, http.MethodDelete, "/cart/items/1", nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, got.Items)
	require.Len(t, got.Notifications, 1)
	assert.Equal(t, "Removed from cart", got.Notifications[0].Title)
}

func TestCart_UpdateToZeroRemoves(t *testing.T) {
	e := newDefaultEnv(t)

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/cart/items", map[string]any{"product_id": "6"}, nil))

	var got cartBody
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPut, "/cart/items/6", map[string]any{"quantity": 0}, &got))
	assert.Empty(t, got.Items)
}

func TestCart_Clear(t *testing.T) {
	e := newDefaultEnv(t)

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/cart/items", map[string]any{"product_id": "1"}, nil))
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/cart/items", map[string]any{"product_id": "6"}, nil))

	var got cartBody
	require.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, "/cart", nil, &got))
	assert.Empty(t, got.Items)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.Summary.DeliveryFee)
}

func TestCart_BadRequests(t *testing.T) {
	e := newDefaultEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
		errMsg string
	}{
		{"missing product", http.MethodPost, "/cart/items", map[string]any{}, http.StatusBadRequest, "product_id required"},
		{"unknown product", http.MethodPost, "/cart/items", map[string]any{"product_id": "999"}, http.StatusBadRequest, "invalid product_id"},
		{"zero quantity", http.MethodPost, "/cart/items", map[string]any{"product_id": "1", "quantity": 0}, http.StatusBadRequest, "quantity must be at least 1"},
		{"unknown field", http.MethodPost, "/cart/items", map[string]any{"product_id": "1", "qty": 2}, http.StatusBadRequest, "bad json"},
		{"update without quantity", http.MethodPut, "/cart/items/1", map[string]any{}, http.StatusBadRequest, "quantity required"},
		{"wishlist unknown product", http.MethodPost, "/wishlist/items", map[string]any{"product_id": "nope"}, http.StatusBadRequest, "invalid product_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got cartBody
			code := e.do(t, tt.method, tt.path, tt.body, &got)
			assert.Equal(t, tt.want, code)
			assert.Equal(t, tt.errMsg, got.Error)
		})
	}
}

func TestCart_RequiresSession(t *testing.T) {
	e := newDefaultEnv(t)

	e.sid = ""
	var got cartBody
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/cart", nil, &got))
	assert.Equal(t, "missing session", got.Error)

	e.sid = "not-a-uuid"
	got = cartBody{}
	assert.Equal(t, http.StatusUnauthorized, e.do(t, http.MethodGet, "/cart", nil, &got))
	assert.Equal(t, "invalid session", got.Error)
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	e := newDefaultEnv(t)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/cart/items", map[string]any{"product_id": "1"}, nil))

	e.sid = uuid.NewString()
	var got cartBody
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/cart", nil, &got))
	assert.Empty(t, got.Items)
}

func TestWishlist_Toggle(t *testing.T) {
	e := newDefaultEnv(t)

	var got wishlistBody
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/wishlist/items", map[string]any{"product_id": "6"}, &got))
	require.NotNil(t, got.InWishlist)
	assert.True(t, *got.InWishlist)
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Notifications, 1)
	assert.Equal(t, notify.WishlistAdded, got.Notifications[0].Kind)

	got = wishlistBody{}
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/wishlist/items", map[string]any{"product_id": "6"}, &got))
	require.NotNil(t, got.InWishlist)
	assert.False(t, *got.InWishlist)
	assert.Zero(t, got.Count)
	require.Len(t, got.Notifications, 1)
	assert.Equal(t, notify.WishlistRemoved, got.Notifications[0].Kind)
}

func TestWishlist_RemoveAndMembership(t *testing.T) {
	e := newDefaultEnv(t)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/wishlist/items", map[string]any{"product_id": "1"}, nil))

	var member map[string]bool
	require.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/wishlist/items/1", nil, &member))
	assert.True(t, member["in_wishlist"])

	var got wishlistBody
	require.Equal(t, http.StatusOK, e.do(t, http.MethodDelete, "/wishlist/items/1", nil, &got))
	assert.Zero(t, got.Count)
	assert.Nil(t, got.InWishlist)
	assert.Empty(t, got.Notifications, "direct removal is silent")
}

type brokenKV struct {
	kv.Store
}

func (brokenKV) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func TestCart_PersistFailureIs503(t *testing.T) {
	e := newEnv(t, brokenKV{Store: kv.NewMemStore()}, cart.StoreSource{Store: catalog.NewStore()})

	var got cartBody
	code := e.do(t, http.MethodPost, "/cart/items", map[string]any{"product_id": "1"}, &got)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "storage unavailable", got.Error)
}

type downSource struct{}

func (downSource) GetProduct(context.Context, string) (catalog.Product, error) {
	return catalog.Product{}, cart.ErrCatalogUnavailable
}

func TestCart_CatalogDownIs503(t *testing.T) {
	e := newEnv(t, kv.NewMemStore(), downSource{})

	var got cartBody
	code := e.do(t, http.MethodPost, "/cart/items", map[string]any{"product_id": "1"}, &got)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "catalog unavailable", got.Error)
}

func TestCart_Probes(t *testing.T) {
	e := newDefaultEnv(t)
	e.sid = ""

	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/healthz", nil, nil))
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/readyz", nil, nil))
}

func TestCatalogClient_GetProduct(t *testing.T) {
	catalogTS := httptest.NewServer(catalog.NewHandler(&catalog.Server{Store: catalog.NewStore()}, catalog.HTTPDeps{Log: zap.NewNop(), Service: "catalog"}))
	t.Cleanup(catalogTS.Close)

	c := cart.NewCatalogClient(catalogTS.URL + "/")
	p, err := c.GetProduct(context.Background(), "6")
	require.NoError(t, err)
	assert.Equal(t, "Onion Hair Oil", p.Name)

	_, err = c.GetProduct(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, cart.ErrCatalogNotFound)

	catalogTS.Close()
	_, err = c.GetProduct(context.Background(), "6")
	assert.ErrorIs(t, err, cart.ErrCatalogUnavailable)
}
