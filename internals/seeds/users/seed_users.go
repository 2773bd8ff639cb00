package users

import (
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	authHelper "nojom_backend/internals/features/users/auth/helper"
	authRepo "nojom_backend/internals/features/users/auth/repository"
	"nojom_backend/internals/models"
)

type UserSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedUsers inserts users whose email is not taken yet. Existing accounts are
// never overwritten.
func SeedUsers(db *gorm.DB, inputs []UserSeed) int {
	created := 0
	for _, data := range inputs {
		email := strings.ToLower(strings.TrimSpace(data.Email))
		if email == "" || data.Password == "" {
			continue
		}
		taken, err := authRepo.EmailTaken(db, email)
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("seed: lookup failed")
			continue
		}
		if taken {
			log.Info().Str("email", email).Msg("seed: user exists, skipped")
			continue
		}

		hashed, err := authHelper.HashPassword(data.Password)
		if err != nil {
			log.Error().Err(err).Str("email", email).Msg("seed: hash failed")
			continue
		}
		user := models.User{Name: data.Name, Email: email, Password: hashed}
		if err := authRepo.CreateUser(db, &user); err != nil {
			log.Error().Err(err).Str("email", email).Msg("seed: insert failed")
			continue
		}
		log.Info().Str("email", email).Msg("seed: user created")
		created++
	}
	return created
}
