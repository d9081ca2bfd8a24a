package app

import (
	"context"
	"errors"
	"fmt"
	"statusboard/config"
	middle "statusboard/internals/middleware"
	"statusboard/internals/modules/badge"
	"statusboard/internals/modules/daystore"
	"statusboard/internals/modules/incident"
	"statusboard/internals/modules/monitor"
	"statusboard/internals/modules/rotation"
	"statusboard/internals/modules/timeline"
	"statusboard/internals/modules/webhook"
	"statusboard/internals/security"
	"statusboard/pkg/db"
	"statusboard/pkg/httpclient"
	"statusboard/pkg/markdown"
	"statusboard/pkg/rabbitmq"
	"statusboard/pkg/redisstore"
	"statusboard/pkg/utils"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

type Container struct {
	Config      *config.Config
	DB          *pgxpool.Pool
	RedisClient *redisstore.Client
	MQConn      *amqp091.Connection
	Publisher   *rabbitmq.Publisher
	Logger      *zerolog.Logger

	Catalog *monitor.Catalog
	Store   daystore.Store
	Rotator *rotation.Rotator

	webhookHandler  *webhook.Handler
	incidentHandler *incident.Handler
	timelineHandler *timeline.Handler
	badgeHandler    *badge.Handler
	monitorHandler  *monitor.Handler

	webhookAuth *middle.WebhookAuth
	rateLimiter *middle.RateLimiter
	authMW      *middle.AuthMiddleware
}

// NewContainer builds every dependency from cfg. configPath is re-read on
// registry reloads. Postgres and RabbitMQ are optional and only connected
// when configured.
func NewContainer(ctx context.Context, cfg *config.Config, configPath string, logger *zerolog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	registry, err := monitor.NewRegistry(toMonitors(cfg.Monitors))
	if err != nil {
		return nil, fmt.Errorf("build monitor registry: %w", err)
	}
	c.Catalog = monitor.NewCatalog(registry)

	if err := c.initStore(ctx); err != nil {
		c.Shutdown(ctx)
		return nil, err
	}
	for _, m := range registry.All() {
		if err := c.Store.Ensure(ctx, m); err != nil {
			c.Shutdown(ctx)
			return nil, fmt.Errorf("prepare day for %q: %w", m.Tag, err)
		}
	}

	var ledger incident.Ledger
	if cfg.DB != nil && cfg.DB.URL != "" {
		pool, err := db.ConnectToDB(ctx, cfg.DB, logger)
		if err != nil {
			c.Shutdown(ctx)
			return nil, err
		}
		c.DB = pool
		repo := incident.NewRepository(pool, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			c.Shutdown(ctx)
			return nil, err
		}
		ledger = repo
	}

	var events incident.EventPublisher
	if cfg.RabbitMQ != nil && cfg.RabbitMQ.BrokerLink != "" {
		if err := c.initPublisher(ctx); err != nil {
			c.Shutdown(ctx)
			return nil, err
		}
		events = c.Publisher
	}

	tracker, err := incident.NewGitHubTracker(cfg.GitHub, httpclient.NewHttpClient(cfg.GitHub.Timeout))
	if err != nil {
		c.Shutdown(ctx)
		return nil, err
	}

	validator := utils.NewValidator()
	clock := timeline.SystemClock{}
	engine := timeline.NewEngine(c.Store, clock)

	webhookSvc := webhook.NewService(c.Catalog, c.Store, engine, clock, loc, validator, logger)
	incidentSvc := incident.NewService(tracker, c.Catalog, markdown.New(), ledger, events, cfg.GitHub.Timeout, logger)

	c.webhookHandler = webhook.NewHandler(webhookSvc)
	c.incidentHandler = incident.NewHandler(incidentSvc)
	c.timelineHandler = timeline.NewHandler(engine, c.Catalog, validator, logger)
	c.badgeHandler = badge.NewHandler(c.Catalog, c.Store, engine, loc, logger)
	c.monitorHandler = monitor.NewHandler(c.Catalog, monitorLoader(configPath), c.Store, logger)

	c.webhookAuth = middle.NewWebhookAuth(security.NewKeyVerifier(cfg.Webhook.APIKeyHashes), logger)
	c.rateLimiter = middle.NewRateLimiter(rate.Limit(cfg.Webhook.RatePerSec), cfg.Webhook.Burst)
	c.authMW = middle.NewAuthMiddleware(security.NewTokenService(cfg.Auth))

	c.Rotator = rotation.New(c.Store, c.Catalog, loc, clock, logger)

	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.Store.Driver {
	case "redis":
		client, err := redisstore.New(ctx, c.Config.Redis.URL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		c.RedisClient = client
		c.Store = daystore.NewRedisStore(client, c.Logger)
	default:
		c.Store = daystore.NewFileStore(c.Logger)
	}
	c.Logger.Info().Str("driver", c.Config.Store.Driver).Msg("day store initialized")
	return nil
}

func (c *Container) initPublisher(ctx context.Context) error {
	conn, err := rabbitmq.NewConnection(ctx, c.Config.RabbitMQ, c.Logger)
	if err != nil {
		return err
	}
	c.MQConn = conn

	if err := rabbitmq.SetupTopology(conn, c.Config.RabbitMQ); err != nil {
		return fmt.Errorf("declare rabbitmq topology: %w", err)
	}

	pub, err := rabbitmq.NewPublisher(conn, c.Config.RabbitMQ.ExchangeName, c.Config.RabbitMQ.RoutingKey)
	if err != nil {
		return err
	}
	c.Publisher = pub
	c.Logger.Info().Str("exchange", c.Config.RabbitMQ.ExchangeName).Msg("incident event publisher initialized")
	return nil
}

// Ping checks the backing services that are in use.
func (c *Container) Ping(ctx context.Context) error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	return nil
}

// Shutdown releases everything NewContainer opened. It is safe on a
// partially built container.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.Rotator != nil {
		c.Rotator.Stop(ctx)
	}
	if c.Publisher != nil {
		errs = append(errs, c.Publisher.Close())
	}
	if c.MQConn != nil && !c.MQConn.IsClosed() {
		errs = append(errs, c.MQConn.Close())
	}
	if c.RedisClient != nil {
		errs = append(errs, c.RedisClient.Close())
	}
	if c.DB != nil {
		c.DB.Close()
	}
	return errors.Join(errs...)
}

func toMonitors(cfgs []config.MonitorConfig) []monitor.Monitor {
	monitors := make([]monitor.Monitor, 0, len(cfgs))
	for _, mc := range cfgs {
		monitors = append(monitors, monitor.Monitor{
			Tag:      mc.Tag,
			Name:     mc.Name,
			Path0Day: mc.Path0Day,
		})
	}
	return monitors
}

func monitorLoader(configPath string) monitor.Loader {
	return func(context.Context) ([]monitor.Monitor, error) {
		cfgs, err := config.LoadMonitors(configPath)
		if err != nil {
			return nil, err
		}
		return toMonitors(cfgs), nil
	}
}
