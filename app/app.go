// Package app assembles the mailpush process: token verification, the
// websocket session registry, the notifier, mail submission and the HTTP
// server, with optional PostgreSQL storage and a Redis relay.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/config"
	"github.com/dmitrymomot/mailpush/core/logger"
	"github.com/dmitrymomot/mailpush/core/mail"
	"github.com/dmitrymomot/mailpush/core/mail/pgstore"
	"github.com/dmitrymomot/mailpush/core/notify"
	"github.com/dmitrymomot/mailpush/core/notify/redisrelay"
	"github.com/dmitrymomot/mailpush/core/server"
	"github.com/dmitrymomot/mailpush/integration/database/pg"
	"github.com/dmitrymomot/mailpush/integration/database/redis"
)

type App struct {
	config     Config
	configured bool
	version    string
	logger     *slog.Logger
	verifier   *auth.Verifier
	issuer     *auth.Issuer
	metrics    *notify.Metrics
	prom       *prometheus.Registry
	registry   *notify.Registry
	notifier   *notify.Notifier
	relay      *redisrelay.Relay
	store      mail.Store
	mail       *mail.Service
	server     *server.Server
	handler    http.Handler

	pool   *pgxpool.Pool
	redis  *goredis.Client
	checks []func(context.Context) error
}

type AppOption func(*App) error

// WithConfig uses cfg instead of loading the environment.
func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.configured = true
		return nil
	}
}

// WithVersion tags every record of the default logger with the build version.
func WithVersion(v string) AppOption {
	return func(app *App) error {
		app.version = v
		return nil
	}
}

func WithLogger(log *slog.Logger) AppOption {
	return func(app *App) error {
		if log == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = log
		return nil
	}
}

// WithStore overrides the mail store. PostgreSQL is not connected when set.
func WithStore(store mail.Store) AppOption {
	return func(app *App) error {
		if store == nil {
			return errors.New("mail store cannot be nil")
		}
		app.store = store
		return nil
	}
}

func WithServer(srv *server.Server) AppOption {
	return func(app *App) error {
		if srv == nil {
			return errors.New("server cannot be nil")
		}
		app.server = srv
		return nil
	}
}

// New builds the application. External connections are opened here and
// released by Close; Run closes them itself.
func New(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.configured {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		logOpts := []logger.Option{
			logger.ForEnv(app.config.Env, app.config.AppName),
			logger.WithLevel(logger.ParseLevel(app.config.LogLevel)),
		}
		if app.version != "" {
			logOpts = append(logOpts, logger.WithAttr(slog.String("version", app.version)))
		}
		app.logger = logger.New(logOpts...)
	}

	if err := app.init(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	cfg := app.config
	log := app.logger

	tokens, err := auth.NewService(cfg.Auth)
	if err != nil {
		return err
	}
	app.verifier = auth.NewVerifier(tokens, auth.WithLogger(log))
	app.issuer = auth.NewIssuer(tokens, cfg.Auth.TTL, auth.WithIssuerName(cfg.Auth.Issuer))

	app.prom = prometheus.NewRegistry()
	app.prom.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = notify.NewMetrics(app.prom)

	app.registry = notify.NewRegistry(append(app.metrics.RegistryOptions(), notify.WithRegistryLogger(log))...)

	notifierOpts := []notify.NotifierOption{
		notify.WithDeliveryTimeout(cfg.Notify.DeliveryTimeout),
		notify.WithNotifierLogger(log),
		notify.WithNotifierMetrics(app.metrics),
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		app.redis = client
		app.relay = redisrelay.New(client, redisrelay.WithLogger(log))
		app.checks = append(app.checks, redis.Healthcheck(client))
		notifierOpts = append(notifierOpts, notify.WithRelay(app.relay))
		log.InfoContext(ctx, "redis relay enabled", logger.Component("app"))
	}

	app.notifier = notify.NewNotifier(app.registry, notifierOpts...)

	if app.store == nil {
		store, err := app.openStore(ctx)
		if err != nil {
			return err
		}
		app.store = store
	}
	app.mail = mail.NewService(app.store, app.notifier, mail.WithLogger(log))

	if app.server == nil {
		srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
		if err != nil {
			return err
		}
		app.server = srv
	}
	server.WithOnShutdown(app.closeSessions)(app.server)

	app.handler = app.routes()
	return nil
}

func (app *App) openStore(ctx context.Context) (mail.Store, error) {
	if !app.config.DB.Enabled() {
		app.logger.WarnContext(ctx, "PG_CONN_URL not set, using in-memory mail store", logger.Component("app"))
		return mail.NewMemoryStore(), nil
	}

	pool, err := pg.Connect(ctx, app.config.DB)
	if err != nil {
		return nil, err
	}
	app.pool = pool
	app.checks = append(app.checks, pg.Healthcheck(pool))

	if app.config.AutoMigrate {
		if err := pg.Migrate(ctx, pool, app.config.DB, pgstore.Migrations(), app.logger); err != nil {
			return nil, err
		}
	}
	return pgstore.New(pool), nil
}

func (app *App) closeSessions() {
	n := app.registry.CloseAll()
	if n == 0 {
		return
	}
	app.logger.Info("websocket sessions closed", logger.Component("app"), logger.Count("sessions", n))
}

// Handler returns the HTTP handler of the application.
func (app *App) Handler() http.Handler { return app.handler }

// Registry returns the session registry.
func (app *App) Registry() *notify.Registry { return app.registry }

// Notifier returns the notifier used by the mail service.
func (app *App) Notifier() *notify.Notifier { return app.notifier }

// Issuer returns the credential issuer sharing the verifier's key.
func (app *App) Issuer() *auth.Issuer { return app.issuer }

// Run serves HTTP and, when enabled, consumes the relay until ctx is
// canceled. Live websocket sessions are closed on shutdown and external
// connections are released before Run returns.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.server.Run(ctx, app.handler))

	if app.relay != nil {
		timeout := app.config.Notify.DeliveryTimeout
		if timeout <= 0 {
			timeout = notify.DefaultConfig().DeliveryTimeout
		}
		g.Go(func() error {
			return app.relay.Run(ctx, func(ctx context.Context, recipient string, ev notify.Event) {
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()
				app.notifier.DeliverLocal(ctx, recipient, ev)
			})
		})
	}

	err := g.Wait()
	app.closeSessions()
	return err
}

// Close releases external connections. Safe to call more than once.
func (app *App) Close() {
	if app.pool != nil {
		app.pool.Close()
		app.pool = nil
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("failed to close redis client", logger.Component("app"), logger.Error(err))
		}
		app.redis = nil
	}
}
