package router

import (
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/webmuseum/expo-api/config"
	"github.com/webmuseum/expo-api/internal/application"
	pginfra "github.com/webmuseum/expo-api/internal/infrastructure/postgres"
	handlers "github.com/webmuseum/expo-api/internal/interface/http"
	"github.com/webmuseum/expo-api/internal/interface/middleware"
	"github.com/webmuseum/expo-api/internal/router/modules"
	"github.com/webmuseum/expo-api/pkg/helpers"
)

// Deps carries every externally constructed collaborator. All wiring is
// explicit: main builds these once and hands them down, nothing is reached
// through package-level state.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
}

// InitModules builds the application modules from deps and registers them
// with the router registry. Called once during startup.
func InitModules(r *Registry, d Deps) {
	accountRepo := pginfra.NewAccountRepository(d.Pool)
	expoRepo := pginfra.NewExpoRepository(d.Pool)

	authSvc := application.NewAuthService(accountRepo, d.JWT, d.Pub, d.Cfg.MailSendEnabled, d.Logger)
	expoSvc := application.NewExpoService(expoRepo, d.Redis, d.GCS, d.Cfg.GCSBucket, d.ES, d.Cfg.ESExposIndex, d.Logger)
	accountSvc := application.NewAccountService(accountRepo, d.Logger)

	// Coarse per-IP limit across the whole API surface.
	if d.Cfg.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(d.Redis, d.Cfg.RateLimitPerMin, time.Minute, middleware.KeyByIP()))
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, d.JWT, d.Logger)))
	r.Add(modules.NewExpoModule(handlers.NewExpoHandler(expoSvc, d.Logger), d.JWT))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(accountSvc, d.Logger), d.JWT))
}
