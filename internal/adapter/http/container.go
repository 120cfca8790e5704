package http

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	memcache "taskapp/internal/adapter/cache/memory"
	rediscache "taskapp/internal/adapter/cache/redis"
	pgdatabase "taskapp/internal/adapter/database/postgres"
	pgrepository "taskapp/internal/adapter/database/postgres/repository"
	database "taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/adapter/database/sqlite/repository"

	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/internal/core/telemetry"
	"taskapp/pkg/auth"
	"taskapp/pkg/config"
	"taskapp/pkg/logging"
	"taskapp/pkg/otp"
	apptelemetry "taskapp/pkg/telemetry"
)

type Container struct {
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository

	UserUseCase      port.UserService
	TaskUseCase      port.TaskService
	AuthUseCase      port.AuthService
	TwoFactorUseCase port.TwoFactorService
	GoogleUseCase    port.GoogleAuthService

	JWT       *auth.JWT
	CodeStore port.CodeStore

	AuthHandler      *handler.AuthHandler
	TwoFactorHandler *handler.TwoFactorHandler
	GoogleHandler    *handler.GoogleHandler
	TaskHandler      *handler.TaskHandler
	UserHandler      *handler.UserHandler
}

func NewContainer(cfg *config.Config, metrics *apptelemetry.AppMetrics, logger *logging.AppLogger) (*Container, error) {
	probe := telemetry.NewOTELProbe(slog.Default())

	userRepo, taskRepo, err := buildRepositories(cfg, probe)

	if err != nil {
		return nil, err
	}

	jwt := &auth.JWT{Secret: cfg.JWTSecret, ExpiresIn: cfg.JWTExpiresIn}

	otpEngine := otp.NewEngine(otp.Config{
		Issuer: cfg.TOTPIssuer,
		Digits: 6,
		Period: 30,
		Skew:   cfg.TOTPSkew,
	})

	codeStore := buildCodeStore(cfg)

	userSvc := service.NewUserService(userRepo)
	taskSvc := service.NewTaskService(taskRepo)
	authSvc := service.NewAuthService(userSvc, jwt)
	twoFactorSvc := service.NewTwoFactorService(userSvc, jwt, otpEngine)
	googleSvc := service.NewGoogleAuthService(userSvc, jwt, codeStore, cfg.FrontendOrigin, cfg.ExchangeCodeTTL)

	return &Container{
		UserRepo: userRepo,
		TaskRepo: taskRepo,

		UserUseCase:      userSvc,
		TaskUseCase:      taskSvc,
		AuthUseCase:      authSvc,
		TwoFactorUseCase: twoFactorSvc,
		GoogleUseCase:    googleSvc,

		JWT:       jwt,
		CodeStore: codeStore,

		AuthHandler:      handler.NewAuthHandler(authSvc, metrics),
		TwoFactorHandler: handler.NewTwoFactorHandler(twoFactorSvc, metrics),
		GoogleHandler:    handler.NewGoogleHandler(googleSvc, cfg, metrics),
		TaskHandler:      handler.NewTaskHandler(taskSvc),
		UserHandler:      handler.NewUserHandler(userSvc),
	}, nil
}

func buildRepositories(cfg *config.Config, probe port.Telemetry) (port.UserRepository, port.TaskRepository, error) {
	if cfg.DatabaseAdapter == "postgres" {
		db, err := pgdatabase.NewDB(context.Background(), cfg.DatabaseURL, cfg.MigrationsDir())

		if err != nil {
			return nil, nil, err
		}

		return pgrepository.NewUserRepository(db), pgrepository.NewTaskRepository(db), nil
	}

	db, err := database.NewDB(cfg.DatabasePath, cfg.MigrationsDir())

	if err != nil {
		return nil, nil, err
	}

	return repository.NewUserRepository(db, probe), repository.NewTaskRepository(db, probe), nil
}

func buildCodeStore(cfg *config.Config) port.CodeStore {
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		return rediscache.NewCodeStore(client)
	}

	return memcache.NewCodeStore()
}
