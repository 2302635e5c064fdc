package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"GlowMart/pkg/kit"
)

const (
	relatedLimit  = 4
	trendingLimit = 8
	readyTimeout  = 1 * time.Second

	// The catalog only changes on deploy or reseed.
	cacheControl = "public, max-age=60"
)

type Server struct {
	Store Store
	Log   *zap.Logger

	// PriceRanges is the table price filter indices refer to.
	// Nil means DefaultPriceRanges.
	PriceRanges []PriceRange
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	kit.Probes(r, func(r *http.Request) error {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		return s.Store.Ping(ctx)
	}, s.Log)

	r.Group(func(cr chi.Router) {
		cr.Use(chimw.SetHeader("Cache-Control", cacheControl))

		cr.Get("/products", s.list)
		cr.Get("/products/trending", s.trending)
		cr.Get("/products/{id}", s.get)
		cr.Get("/products/{id}/related", s.related)

		cr.Get("/categories", s.categories)
		cr.Get("/brands", s.brands)
		cr.Get("/price-ranges", s.priceRanges)
	})

	return r
}

func (s *Server) ranges() []PriceRange {
	if s.PriceRanges != nil {
		return s.PriceRanges
	}
	return DefaultPriceRanges
}

type listResp struct {
	Products      []Product `json:"products"`
	Count         int       `json:"count"`
	ActiveFilters int       `json:"active_filters"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad query", map[string]any{"cause": err.Error()})
		return
	}

	products, ok := s.allProducts(w, r)
	if !ok {
		return
	}

	view := Apply(products, s.ranges(), q)
	kit.WriteJSON(w, http.StatusOK, listResp{
		Products:      view,
		Count:         len(view),
		ActiveFilters: q.ActiveFilters(),
	})
}

func (s *Server) trending(w http.ResponseWriter, r *http.Request) {
	products, ok := s.allProducts(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, Trending(products, trendingLimit))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) related(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	products, ok := s.allProducts(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, Related(products, p, relatedLimit))
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.Store.Categories(r.Context())
	if err != nil {
		s.serverError(w, r, "list categories failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, cats)
}

func (s *Server) brands(w http.ResponseWriter, r *http.Request) {
	products, ok := s.allProducts(w, r)
	if !ok {
		return
	}
	kit.WriteJSON(w, http.StatusOK, Brands(products))
}

func (s *Server) priceRanges(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.ranges())
}

func (s *Server) allProducts(w http.ResponseWriter, r *http.Request) ([]Product, bool) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.serverError(w, r, "list products failed", err)
		return nil, false
	}
	return products, true
}

// lookup resolves {id}; a miss is answered with 404 here.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (Product, bool) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product failed", err, zap.String("id", id))
		return Product{}, false
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return Product{}, false
	}
	return p, true
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error, fields ...zap.Field) {
	if s.Log != nil {
		s.Log.Error(msg, append(fields, zap.Error(err))...)
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}
