package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"GlowMart/internal/catalog"
	"GlowMart/pkg/kit"
)

func main() {
	kit.LoadDotEnv()

	service := "catalog"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := kit.Getenv("PORT", "8082")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store, closeStore := openStore(log)

	s := &catalog.Server{Store: store, Log: log}
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: kit.GetenvBool("METRICS_ENABLED", true),
		MetricsToken:   kit.Getenv("METRICS_TOKEN", ""),
	})

	err := kit.RunHTTPServerWith(":"+port, h, log, kit.ServerOptions{
		OnShutdown: func(context.Context) { closeStore() },
	})
	if err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// openStore serves the built-in catalog unless DATABASE_URL points at Postgres.
func openStore(log *zap.Logger) (catalog.Store, func()) {
	dsn := kit.Getenv("DATABASE_URL", "")
	if dsn == "" {
		log.Info("catalog store: memory")
		return catalog.NewStore(), func() {}
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	db.SetMaxOpenConns(kit.GetenvInt("DB_MAX_OPEN_CONNS", 10))
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store := catalog.NewPostgresStore(db)
	if err := store.Migrate(ctx); err != nil {
		log.Fatal("migrate catalog", zap.Error(err))
	}
	if kit.GetenvBool("CATALOG_SEED", true) {
		if err := store.Seed(ctx, catalog.SeedProducts, catalog.SeedCategories); err != nil {
			log.Fatal("seed catalog", zap.Error(err))
		}
	}

	log.Info("catalog store: postgres")
	return store, func() { _ = db.Close() }
}
