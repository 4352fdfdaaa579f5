package bootstrap

import (
	"context"
	"database/sql"

	"rates-bot/internal/api"
	"rates-bot/internal/config"
	"rates-bot/internal/db"
	"rates-bot/internal/handlers"
	"rates-bot/internal/kafka"
	"rates-bot/internal/metrics"
	"rates-bot/internal/repositories"
	"rates-bot/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds everything the bot needs besides the Telegram transport.
// Redis, Postgres and Kafka are optional and stay nil when not configured.
type App struct {
	Registry *prometheus.Registry
	Metrics  *metrics.BotMetrics
	Rates    *services.RatesService
	Users    handlers.UserRegistrar

	redis         *redis.Client
	db            *sql.DB
	ratesProducer *kafka.Producer
	usersProducer *kafka.Producer
	log           *logrus.Logger
}

func InitBootstrap(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Registry: prometheus.NewRegistry(), log: log}
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.Metrics = metrics.NewBotMetrics(app.Registry)

	var store services.Store = services.NewMemoryStore()
	if cfg.Cache.RedisURL != "" {
		client, err := db.ConnectRedis(ctx, cfg.Cache.RedisURL, log)
		if err != nil {
			return nil, err
		}
		app.redis = client
		store = db.NewRedisStore(client)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		var err error
		if app.ratesProducer, err = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.RatesTopic, log); err != nil {
			app.Close()
			return nil, err
		}
		if app.usersProducer, err = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.UsersTopic, log); err != nil {
			app.Close()
			return nil, err
		}
	} else {
		log.Info("KAFKA_BROKERS not set, rate events disabled")
	}

	opts := services.CacheOptions{
		TTL:     cfg.Cache.TTL(),
		Prefix:  cfg.Cache.Prefix,
		Metrics: app.Metrics,
		Logger:  log,
	}
	if app.ratesProducer != nil {
		opts.Publisher = app.ratesProducer
	}
	client := api.NewClient(cfg.Rates.BaseURL, cfg.Rates.Timeout, app.Metrics)
	app.Rates = services.NewRatesService(client, store, opts)

	if cfg.Database.URL != "" {
		conn, err := db.ConnectPostgres(ctx, cfg.Database.URL, log)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.db = conn

		repo := repositories.NewUserRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			app.Close()
			return nil, err
		}
		var publisher services.Publisher
		if app.usersProducer != nil {
			publisher = app.usersProducer
		}
		app.Users = services.NewUserService(repo, publisher)
	} else {
		log.Info("DATABASE_URL not set, /start will not record users")
	}

	log.WithFields(logrus.Fields{
		"cache_ttl": cfg.Cache.TTL().String(),
		"redis":     app.redis != nil,
		"postgres":  app.db != nil,
		"kafka":     app.ratesProducer != nil,
	}).Info("bootstrap complete")
	return app, nil
}

// Close releases backends in reverse order of creation. It is safe to call
// on a partially built App.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.WithError(err).Warn("postgres close")
		}
	}
	if a.usersProducer != nil {
		a.usersProducer.Close()
	}
	if a.ratesProducer != nil {
		a.ratesProducer.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("redis close")
		}
	}
}
