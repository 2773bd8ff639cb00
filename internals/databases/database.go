package database

import (
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nojom_backend/internals/configs"
	"nojom_backend/internals/models"
)

var DB *gorm.DB

// DSN builds the postgres connection string from DB_* variables.
func DSN() string {
	if url := configs.GetEnv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=nojom&options=-c%%20statement_timeout=5000",
		configs.GetEnv("DB_USER", "postgres"),
		configs.GetEnv("DB_PASSWORD"),
		configs.GetEnv("DB_HOST", "localhost"),
		configs.GetEnv("DB_PORT", "5432"),
		configs.GetEnv("DB_NAME", "nojom"),
		configs.GetEnv("DB_SSLMODE", "disable"),
	)
}

// ConnectDB opens the pool. DB_DRIVER=postgres switches the underlying
// database/sql driver from pgx to lib/pq.
func ConnectDB() {
	log.Info().Msg("connecting to PostgreSQL...")

	pgCfg := postgres.Config{
		DSN:                  DSN(),
		PreferSimpleProtocol: true,
	}
	if configs.GetEnv("DB_DRIVER") == "postgres" {
		pgCfg.DriverName = "postgres"
	}

	db, err := gorm.Open(postgres.New(pgCfg), &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := models.SetupJoinTables(db); err != nil {
		log.Fatal().Err(err).Msg("join table setup failed")
	}
	DB = db
	log.Info().Msg("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Error().Err(err).Msg("pool tune")
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate runs AutoMigrate when DB_AUTO_MIGRATE is not "false".
func Migrate() {
	if configs.GetEnv("DB_AUTO_MIGRATE", "true") == "false" {
		return
	}
	if err := models.AutoMigrate(DB); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}
	log.Info().Msg("schema migrated")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(); err != nil {
			log.Warn().Err(err).Msg("warm-up ping")
		}
	}()
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not initialised")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
