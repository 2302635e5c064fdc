package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"GlowMart/internal/gateway"
	"GlowMart/internal/session"
	"GlowMart/pkg/kit"
)

func main() {
	kit.LoadDotEnv()

	service := "gateway"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := kit.Getenv("PORT", "8080")

	secret := kit.Getenv("SESSION_SECRET", "")
	if len(secret) < session.MinSecretLen {
		log.Fatal("SESSION_SECRET must be set to at least 32 characters")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h, err := gateway.NewHandler(
		gateway.Deps{
			CatalogURL:        kit.Getenv("CATALOG_URL", "http://localhost:8082"),
			CartURL:           kit.Getenv("CART_URL", "http://localhost:8083"),
			SessionSecret:     secret,
			SessionTTL:        kit.GetenvDuration("SESSION_TTL", 30*24*time.Hour),
			SessionRateLimit:  kit.GetenvInt("SESSION_RATE_LIMIT", 20),
			SessionRateWindow: kit.GetenvDuration("SESSION_RATE_WINDOW", time.Minute),
			TrustProxy:        kit.GetenvBool("TRUST_PROXY", false),
		},
		gateway.HTTPDeps{
			Log:            log,
			Service:        service,
			Registry:       reg,
			MetricsEnabled: kit.GetenvBool("METRICS_ENABLED", true),
			MetricsToken:   kit.Getenv("METRICS_TOKEN", ""),
		},
	)
	if err != nil {
		log.Fatal("gateway init", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
