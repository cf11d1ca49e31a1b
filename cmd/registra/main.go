package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/registrahq/registra/modules/company"
	"github.com/registrahq/registra/modules/identity"
	"github.com/registrahq/registra/pkg/authz"
	"github.com/registrahq/registra/pkg/config"
	"github.com/registrahq/registra/pkg/cookie"
	"github.com/registrahq/registra/pkg/email"
	"github.com/registrahq/registra/pkg/environment"
	"github.com/registrahq/registra/pkg/httpserver"
	"github.com/registrahq/registra/pkg/logger"
	"github.com/registrahq/registra/pkg/pg"
	"github.com/registrahq/registra/pkg/ratelimiter"
	"github.com/registrahq/registra/pkg/redis"
	"github.com/registrahq/registra/pkg/session"
)

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	logFormat := logger.FormatText
	if environment.IsProduction(cfg.AppEnv) {
		logFormat = logger.FormatJSON
	}
	log := logger.New(
		logger.WithFormat(logFormat),
		logger.WithEnvironment(cfg.AppEnv, "registra"),
	)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.PG)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.PG); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	roles, err := authz.LoadRoleSource(cfg.RolesPath)
	if err != nil {
		return err
	}

	var mailer email.Sender
	if cfg.Email.PostmarkServerToken != "" {
		mailer, err = email.NewPostmarkSender(cfg.Email)
		if err != nil {
			return err
		}
	} else {
		log.Warn("no postmark token configured, logging emails instead of sending")
		mailer = email.NewDevSender(log)
	}

	loginLimiter, err := ratelimiter.NewBucket(
		ratelimiter.NewRedisStore(redisClient, "ratelimit:login"),
		ratelimiter.Config{
			Capacity:       cfg.LoginRateCapacity,
			RefillRate:     cfg.LoginRateRefill,
			RefillInterval: cfg.LoginRateInterval,
		},
	)
	if err != nil {
		return err
	}

	sessionMgr := session.NewManager(
		session.NewPgStore(pool),
		cookie.New(),
		session.WithSecureCookies(cfg.SecureCookies || environment.IsProduction(cfg.AppEnv)),
	)

	userStore := identity.NewPgUserStore(pool)
	identitySvc := identity.NewService(userStore, sessionMgr, roles, mailer,
		identity.WithServiceLogger(log),
		identity.WithLoginLimiter(loginLimiter),
	)
	companySvc := company.NewService(company.NewPgCompanyStore(pool),
		company.WithServiceLogger(log),
	)

	if cfg.BootstrapAdminEmail != "" {
		if _, err := identitySvc.EnsureAdmin(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword); err != nil {
			return err
		}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))

	r.Mount("/", identity.NewHandler(identitySvc).Router())
	r.Group(func(private chi.Router) {
		private.Use(identity.Authenticate(sessionMgr, userStore))
		private.Mount("/companies", company.NewHandler(companySvc).Router())
	})

	srv := httpserver.New(
		httpserver.WithAddr(cfg.HTTPAddr),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, r)
}
