package main

import (
	"time"

	"github.com/registrahq/registra/pkg/email"
	"github.com/registrahq/registra/pkg/pg"
	"github.com/registrahq/registra/pkg/redis"
)

type appConfig struct {
	AppEnv        string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr      string `env:"HTTP_ADDR" envDefault:":8080"`
	RolesPath     string `env:"ROLES_PATH" envDefault:"roles.yml"`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"false"`

	// First-run administrator; skipped when empty or already present.
	BootstrapAdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`

	LoginRateCapacity int           `env:"LOGIN_RATE_CAPACITY" envDefault:"5"`
	LoginRateRefill   int           `env:"LOGIN_RATE_REFILL" envDefault:"5"`
	LoginRateInterval time.Duration `env:"LOGIN_RATE_INTERVAL" envDefault:"1m"`

	PG    pg.Config
	Redis redis.Config
	Email email.Config
}
