package scheduler

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"nojom_backend/internals/configs"
	authRepo "nojom_backend/internals/features/users/auth/repository"
)

const cleanupBatch = 100

// StartBlacklistCleanupScheduler purges expired blacklist entries once on start
// and then every interval until ctx is cancelled.
func StartBlacklistCleanupScheduler(ctx context.Context, db *gorm.DB, interval time.Duration) {
	graceDays := 7
	if v := configs.GetEnv("TOKEN_BLACKLIST_TTL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			graceDays = n
		}
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			CleanupOnce(db, time.Now().AddDate(0, 0, -graceDays))
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// CleanupOnce deletes expired entries in batches and returns how many went away.
func CleanupOnce(db *gorm.DB, cutoff time.Time) int64 {
	var total int64
	for {
		n, err := authRepo.PurgeBlacklist(db, cutoff, cleanupBatch)
		if err != nil {
			log.Error().Err(err).Msg("[CLEANUP] token_blacklist purge failed")
			return total
		}
		total += n
		if n < cleanupBatch {
			break
		}
	}
	if total > 0 {
		log.Info().Int64("deleted", total).Msg("[CLEANUP] expired tokens removed")
	}
	return total
}
