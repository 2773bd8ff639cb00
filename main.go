package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"nojom_backend/internals/configs"
	database "nojom_backend/internals/databases"
	scheduler "nojom_backend/internals/features/users/auth/scheduler"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/helpers/logger"
	"nojom_backend/internals/helpers/storage"
	middlewares "nojom_backend/internals/middlewares"
	routes "nojom_backend/internals/route"
	"nojom_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	logger.Init(configs.GetEnv("LOG_LEVEL", "info"), configs.GetEnv("LOG_FORMAT", "console"))

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             (configs.App.Upload.MaxSizeMB + 1) << 20,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	middlewares.SetupMiddlewares(app)

	if url := configs.GetEnv("REDIS_URL"); url != "" {
		store, err := middlewares.NewRedisStorage(url)
		if err != nil {
			log.Warn().Err(err).Msg("redis limiter storage unavailable, using memory")
		} else {
			middlewares.UseLimiterStorage(store)
			defer store.Close()
		}
	}

	// DB connect + pool + schema + warm-up
	database.ConnectDB()
	database.TunePool()
	database.Migrate()
	database.WarmUpQueries()
	seeds.RunAllSeeds(database.DB)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	scheduler.StartBlacklistCleanupScheduler(ctx, database.DB, 24*time.Hour)

	store, err := storage.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}
	uploadDir := ""
	if strings.ToLower(configs.GetEnv("STORAGE_DRIVER", "local")) == "local" {
		uploadDir = configs.GetEnv("UPLOAD_DIR", "./storage/uploads")
	}

	routes.SetupRoutes(app, database.DB, routes.Options{
		Clock:     clock.Real{Location: configs.App.Location()},
		Storage:   store,
		UploadDir: uploadDir,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "8080")
	go func() {
		log.Info().Str("port", port).Msg("listening")
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown + close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	database.Close()
}
