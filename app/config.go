package app

import (
	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/notify"
	"github.com/dmitrymomot/mailpush/core/server"
	"github.com/dmitrymomot/mailpush/integration/database/pg"
	"github.com/dmitrymomot/mailpush/integration/database/redis"
)

// Config is the full process configuration. Nested structs read their own
// variables; PostgreSQL and Redis are optional and enabled by their URLs.
type Config struct {
	Server server.Config
	Notify notify.Config
	Auth   auth.Config
	DB     pg.Config
	Redis  redis.Config

	AppName        string `env:"APP_NAME" envDefault:"mailpush"`
	Env            string `env:"APP_ENV" envDefault:"development"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	AutoMigrate    bool   `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	MaxBodySize    int64  `env:"HTTP_MAX_BODY_SIZE" envDefault:"1048576"`
}
