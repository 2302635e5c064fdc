package main

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"GlowMart/internal/cart"
	"GlowMart/internal/kv"
	"GlowMart/internal/notify"
	"GlowMart/pkg/kit"
)

func main() {
	kit.LoadDotEnv()

	service := "cart"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := kit.Getenv("PORT", "8083")
	catalogURL := kit.Getenv("CATALOG_URL", "http://localhost:8082")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var closers []func()

	store, closeKV := openKV(log)
	closers = append(closers, closeKV)

	notifiers := []notify.Notifier{notify.LogNotifier{Log: log}}
	if n, closeAMQP := openAMQP(log); n != nil {
		notifiers = append(notifiers, n)
		closers = append(closers, closeAMQP)
	}

	s := &cart.Server{
		Sessions: cart.NewSessions(store, cart.SessionOptions{
			Notifier: notify.Multi(notifiers...),
			Log:      log,
			IdleTTL:  kit.GetenvDuration("SESSION_IDLE_TTL", 30*time.Minute),
		}),
		Catalog: cart.NewCatalogClient(catalogURL),
		Log:     log,
	}

	h := cart.NewHandler(s, cart.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: kit.GetenvBool("METRICS_ENABLED", true),
		MetricsToken:   kit.Getenv("METRICS_TOKEN", ""),
	})

	err := kit.RunHTTPServerWith(":"+port, h, log, kit.ServerOptions{
		OnShutdown: func(context.Context) {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	})
	if err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// openKV picks the snapshot backend from KV_BACKEND: memory, redis or postgres.
func openKV(log *zap.Logger) (kv.Store, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	backend := kit.Getenv("KV_BACKEND", "memory")
	switch backend {
	case "memory":
		log.Warn("kv backend: memory, carts are lost on restart")
		return kv.NewMemStore(), func() {}

	case "redis":
		opts, err := redis.ParseURL(kit.Getenv("REDIS_URL", "redis://localhost:6379/0"))
		if err != nil {
			log.Fatal("parse REDIS_URL", zap.Error(err))
		}
		client := redis.NewClient(opts)
		store := kv.NewRedisStore(client, kit.Getenv("REDIS_PREFIX", ""), kit.GetenvDuration("CART_TTL", 30*24*time.Hour))
		if err := store.Ping(ctx); err != nil {
			log.Fatal("redis ping", zap.Error(err))
		}
		log.Info("kv backend: redis", zap.String("addr", opts.Addr))
		return store, func() { _ = client.Close() }

	case "postgres":
		pool, err := pgxpool.New(ctx, kit.Getenv("DATABASE_URL", ""))
		if err != nil {
			log.Fatal("open database", zap.Error(err))
		}
		store := kv.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			log.Fatal("migrate kv", zap.Error(err))
		}
		log.Info("kv backend: postgres")
		return store, pool.Close

	default:
		log.Fatal("unknown KV_BACKEND", zap.String("backend", backend))
		return nil, nil
	}
}

// openAMQP connects the event publisher when AMQP_URL is set. Without it the
// service only logs notifications.
func openAMQP(log *zap.Logger) (notify.Notifier, func()) {
	url := kit.Getenv("AMQP_URL", "")
	if url == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatal("amqp dial", zap.Error(err))
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		log.Fatal("amqp channel", zap.Error(err))
	}

	n, err := notify.NewAMQPNotifier(ch, kit.Getenv("AMQP_QUEUE", "cart_events"), log)
	if err != nil {
		_ = conn.Close()
		log.Fatal("amqp notifier", zap.Error(err))
	}

	log.Info("notifications: amqp enabled")
	return n, func() {
		_ = ch.Close()
		_ = conn.Close()
	}
}
