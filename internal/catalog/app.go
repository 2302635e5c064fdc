package catalog

import (
	"net/http"

	"GlowMart/pkg/kit"
)

type HTTPDeps = kit.RouterDeps

// NewHandler serves the catalog behind the shared request plumbing.
func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if s.Log == nil {
		s.Log = deps.Log
	}

	r := kit.NewRouter(deps)
	r.NotFound(kit.Handle404JSON)
	r.Mount("/", s.Routes())
	return r
}
