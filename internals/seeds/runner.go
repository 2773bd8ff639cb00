package seeds

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"nojom_backend/internals/configs"
	"nojom_backend/internals/seeds/academics"
	"nojom_backend/internals/seeds/users"
)

// RunAllSeeds is driven by env: SEED_ADMIN=true creates the admin account from
// ADMIN_NAME/ADMIN_EMAIL/ADMIN_PASSWORD, SEED_SUBJECTS=true loads the subject catalogue.
func RunAllSeeds(db *gorm.DB) {
	if configs.GetEnv("SEED_ADMIN") == "true" {
		users.SeedUsers(db, []users.UserSeed{{
			Name:     configs.GetEnv("ADMIN_NAME", "Administrator"),
			Email:    configs.GetEnv("ADMIN_EMAIL", "admin@nojom.local"),
			Password: configs.GetEnv("ADMIN_PASSWORD"),
		}})
	}

	if configs.GetEnv("SEED_SUBJECTS") == "true" {
		path := configs.GetEnv("SEED_SUBJECTS_FILE", "internals/seeds/academics/data_subjects.json")
		if err := academics.SeedSubjectsFromJSON(db, path); err != nil {
			log.Error().Err(err).Msg("seed: subjects failed")
		}
	}
}
