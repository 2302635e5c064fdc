package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"GlowMart/internal/session"
	"GlowMart/pkg/kit"
)

type HTTPDeps = kit.RouterDeps

type Deps struct {
	CatalogURL    string
	CartURL       string
	SessionSecret string
	SessionTTL    time.Duration

	// SessionRateLimit is how many sessions one IP may open per
	// SessionRateWindow. Zero uses the defaults.
	SessionRateLimit  int
	SessionRateWindow time.Duration
	// TrustProxy keys the rate limit on X-Forwarded-For. Set it only when a
	// load balancer in front of the gateway overwrites that header.
	TrustProxy bool
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond

	defaultSessionTTL        = 30 * 24 * time.Hour
	defaultSessionRateLimit  = 20
	defaultSessionRateWindow = time.Minute
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	deps = withDefaults(deps)

	catalogProxy, cartProxy, err := buildProxies(deps, httpDeps.Log)
	if err != nil {
		return nil, err
	}

	tokens, err := session.NewTokenMakerStrict(deps.SessionSecret)
	if err != nil {
		return nil, err
	}
	limiter := kit.NewIPRateLimiter(deps.SessionRateLimit, deps.SessionRateWindow)
	limiter.TrustForwardedFor = deps.TrustProxy

	r := kit.NewRouter(httpDeps)
	r.NotFound(kit.Handle404JSON)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	r.With(limiter.Middleware).Post("/session", issueSession(tokens, deps.SessionTTL, httpDeps.Log))

	for _, p := range []string{"/products", "/products/*", "/categories", "/brands", "/price-ranges"} {
		r.Handle(p, catalogProxy)
	}

	r.Group(func(pr chi.Router) {
		pr.Use(SessionJWT(tokens))
		pr.Use(InjectSession)
		pr.Handle("/cart", cartProxy)
		pr.Handle("/cart/*", cartProxy)
		pr.Handle("/wishlist", cartProxy)
		pr.Handle("/wishlist/*", cartProxy)
	})

	return r, nil
}

func withDefaults(d Deps) Deps {
	if d.SessionTTL <= 0 {
		d.SessionTTL = defaultSessionTTL
	}
	if d.SessionRateLimit <= 0 {
		d.SessionRateLimit = defaultSessionRateLimit
	}
	if d.SessionRateWindow <= 0 {
		d.SessionRateWindow = defaultSessionRateWindow
	}
	return d
}

func buildProxies(deps Deps, log *zap.Logger) (catalogProxy, cartProxy http.Handler, err error) {
	cp, err := NewReverseProxy(deps.CatalogURL, log)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog proxy: %w", err)
	}

	cartp, err := NewReverseProxy(deps.CartURL, log)
	if err != nil {
		return nil, nil, fmt.Errorf("cart proxy: %w", err)
	}

	return cp, cartp, nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	upstreams := []struct{ name, url string }{
		{"catalog", deps.CatalogURL},
		{"cart", deps.CartURL},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		for _, u := range upstreams {
			if err := checkReady(ctx, u.url+"/readyz"); err != nil {
				if log != nil {
					log.Warn("readyz failed: "+u.name, zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusServiceUnavailable, u.name+" not ready", nil)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	return nil
}
