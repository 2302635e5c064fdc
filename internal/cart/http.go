package cart

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"GlowMart/internal/catalog"
	"GlowMart/internal/notify"
	"GlowMart/pkg/kit"
)

type Server struct {
	Sessions *Sessions
	Catalog  ProductSource
	Log      *zap.Logger
	Metrics  *Metrics
}

type cartView struct {
	Items         []Line                `json:"items"`
	ItemCount     int                   `json:"item_count"`
	Total         int64                 `json:"total"`
	Summary       Summary               `json:"summary"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

type wishlistView struct {
	Items         []WishlistEntry       `json:"items"`
	Count         int                   `json:"count"`
	InWishlist    *bool                 `json:"in_wishlist,omitempty"`
	Notifications []notify.Notification `json:"notifications,omitempty"`
}

type addReq struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

type updateReq struct {
	Quantity *int `json:"quantity"`
}

type toggleReq struct {
	ProductID string `json:"product_id"`
}

var (
	errBadItem        = errors.New("bad item")
	errInvalidProduct = errors.New("invalid product_id")
	errCatalogDown    = errors.New("catalog unavailable")
	errCatalogError   = errors.New("catalog error")
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequireSession)

	r.Route("/cart", func(cr chi.Router) {
		cr.Get("/", s.getCart)
		cr.Delete("/", s.clearCart)
		cr.Post("/items", s.addItem)
		cr.Get("/items/{id}", s.cartMembership)
		cr.Put("/items/{id}", s.updateItem)
		cr.Delete("/items/{id}", s.removeItem)
	})

	r.Route("/wishlist", func(wr chi.Router) {
		wr.Get("/", s.getWishlist)
		wr.Post("/items", s.toggleWishlist)
		wr.Get("/items/{id}", s.wishlistMembership)
		wr.Delete("/items/{id}", s.removeWishlistItem)
	})

	return r
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeCart(w, r, st)
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty < 1 {
		kit.WriteError(w, r, http.StatusBadRequest, ErrInvalidQuantity.Error(), nil)
		return
	}

	st, ok := s.session(w, r)
	if !ok {
		return
	}
	p, err := s.resolve(r, req.ProductID)
	if err != nil {
		s.writeResolveError(w, r, err)
		return
	}

	err = st.AddToCart(r.Context(), p, qty)
	s.Metrics.observe("cart_add", err)
	if !s.checkMutation(w, r, err) {
		return
	}
	s.writeCart(w, r, st)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if req.Quantity == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "quantity required", nil)
		return
	}

	st, ok := s.session(w, r)
	if !ok {
		return
	}

	err := st.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), *req.Quantity)
	s.Metrics.observe("cart_update", err)
	if !s.checkMutation(w, r, err) {
		return
	}
	s.writeCart(w, r, st)
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	err := st.RemoveFromCart(r.Context(), chi.URLParam(r, "id"))
	s.Metrics.observe("cart_remove", err)
	if !s.checkMutation(w, r, err) {
		return
	}
	s.writeCart(w, r, st)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	err := st.ClearCart(r.Context())
	s.Metrics.observe("cart_clear", err)
	if !s.checkMutation(w, r, err) {
		return
	}
	s.writeCart(w, r, st)
}

func (s *Server) cartMembership(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"in_cart": st.IsInCart(chi.URLParam(r, "id"))})
}

func (s *Server) getWishlist(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	s.writeWishlist(w, r, st, nil)
}

func (s *Server) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	var req toggleReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	st, ok := s.session(w, r)
	if !ok {
		return
	}
	p, err := s.resolve(r, req.ProductID)
	if err != nil {
		s.writeResolveError(w, r, err)
		return
	}

	in, err := st.AddToWishlist(r.Context(), p)
	s.Metrics.observe("wishlist_toggle", err)
	if !s.checkMutation(w, r, err) {
		return
	}
	s.writeWishlist(w, r, st, &in)
}

func (s *Server) removeWishlistItem(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}

	err := st.RemoveFromWishlist(r.Context(), chi.URLParam(r, "id"))
	s.Metrics.observe("wishlist_remove", err)
	if !s.checkMutation(w, r, err) {
		return
	}
	s.writeWishlist(w, r, st, nil)
}

func (s *Server) wishlistMembership(w http.ResponseWriter, r *http.Request) {
	st, ok := s.session(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]any{"in_wishlist": st.IsInWishlist(chi.URLParam(r, "id"))})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Store, bool) {
	sid, ok := SessionFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no session", nil)
		return nil, false
	}

	st, err := s.Sessions.Get(r.Context(), sid)
	if err != nil {
		s.logError("load session failed", err, zap.String("session", sid))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "storage unavailable", nil)
		return nil, false
	}
	return st, true
}

func (s *Server) resolve(r *http.Request, productID string) (catalog.Product, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return catalog.Product{}, errBadItem
	}

	p, err := s.Catalog.GetProduct(r.Context(), pid)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, ErrCatalogNotFound):
		return catalog.Product{}, errInvalidProduct
	case errors.Is(err, ErrCatalogUnavailable):
		return catalog.Product{}, errCatalogDown
	default:
		s.logWarn("catalog error", err, zap.String("product_id", pid))
		return catalog.Product{}, errCatalogError
	}
}

func (s *Server) writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	switch err {
	case errBadItem:
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
	case errInvalidProduct:
		kit.WriteError(w, r, http.StatusBadRequest, "invalid product_id", nil)
	case errCatalogDown:
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", nil)
	case errCatalogError:
		kit.WriteError(w, r, http.StatusBadGateway, "catalog error", nil)
	default:
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

// checkMutation answers the request when err is set and reports whether the
// handler should go on to render state.
func (s *Server) checkMutation(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrInvalidQuantity):
		kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrPersist):
		kit.WriteError(w, r, http.StatusServiceUnavailable, "storage unavailable", nil)
	default:
		s.logError("cart mutation failed", err)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
	return false
}

func (s *Server) writeCart(w http.ResponseWriter, r *http.Request, st *Store) {
	sum := st.Summary()
	kit.WriteJSON(w, http.StatusOK, cartView{
		Items:         st.Lines(),
		ItemCount:     sum.ItemCount,
		Total:         sum.Subtotal,
		Summary:       sum,
		Notifications: notify.Recorded(r.Context()),
	})
}

func (s *Server) writeWishlist(w http.ResponseWriter, r *http.Request, st *Store, in *bool) {
	items := st.Wishlist()
	kit.WriteJSON(w, http.StatusOK, wishlistView{
		Items:         items,
		Count:         len(items),
		InWishlist:    in,
		Notifications: notify.Recorded(r.Context()),
	})
}

func (s *Server) logError(msg string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(msg, append(fields, zap.Error(err))...)
	}
}

func (s *Server) logWarn(msg string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Warn(msg, append(fields, zap.Error(err))...)
	}
}
