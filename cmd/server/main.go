package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	_ "github.com/random-knowledge/knowledge-api/docs"
	"github.com/random-knowledge/knowledge-api/internal/api"
	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/infrastructure/config"
	mongodb "github.com/random-knowledge/knowledge-api/internal/infrastructure/db/mongo"
	redisdb "github.com/random-knowledge/knowledge-api/internal/infrastructure/db/redis"
	"github.com/random-knowledge/knowledge-api/internal/infrastructure/queue"
	"github.com/random-knowledge/knowledge-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           Random Knowledge API
// @version         1.0
// @description     CRUD API for categories and curiosities with JWT authentication.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet; this is a fatal startup condition.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	curiosityRepo := mongodb.NewCuriosityRepository(db)
	for name, ensure := range map[string]func(context.Context) error{
		"users":       userRepo.EnsureIndexes,
		"categories":  categoryRepo.EnsureIndexes,
		"curiosities": curiosityRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("failed to create indexes")
		}
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	dispatcher := queue.NewDispatcher(0, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	if err := seedDefaultAdmin(ctx, userRepo, cfg.Admin, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default admin")
	}

	e := api.NewRouter(cfg, db, rdb, dispatcher, log)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped unexpectedly")
	}
}

// seedDefaultAdmin creates the ADMIN account on first boot. Skipped when no
// admin password is configured or the account already exists.
func seedDefaultAdmin(ctx context.Context, users *mongodb.UserRepository, cfg config.AdminConfig, log zerolog.Logger) error {
	if cfg.Password == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, skipping default admin seeding")
		return nil
	}

	exists, err := users.ExistsByEmail(ctx, cfg.Email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Name:         cfg.Name,
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("email", cfg.Email).Msg("default admin created")
	return nil
}
