package cart

import (
	"context"
	"net/http"
	"time"

	"GlowMart/pkg/kit"
)

type HTTPDeps = kit.RouterDeps

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if s.Log == nil {
		s.Log = deps.Log
	}
	if s.Metrics == nil && deps.Registry != nil {
		s.Metrics = NewMetrics(deps.Registry)
	}

	r := kit.NewRouter(deps)
	r.NotFound(kit.Handle404JSON)

	kit.Probes(r, func(r *http.Request) error {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		return s.Sessions.Ping(ctx)
	}, s.Log)

	r.Mount("/", s.Routes())
	return r
}
