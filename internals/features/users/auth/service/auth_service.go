package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"nojom_backend/internals/configs"
	authHelper "nojom_backend/internals/features/users/auth/helper"
	authRepo "nojom_backend/internals/features/users/auth/repository"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/models"
)

var (
	errInvalidCredentials = apperr.New(http.StatusUnauthorized, apperr.CodeUnauthorized, "Invalid credentials")
	errInvalidRefresh     = apperr.New(http.StatusUnauthorized, apperr.CodeUnauthorized, "Invalid or expired refresh token")
	errRegistrationClosed = apperr.New(http.StatusForbidden, "FORBIDDEN", "Registration is disabled")
)

// RegistrationOpen is controlled by ALLOW_REGISTRATION (default true).
func RegistrationOpen() bool {
	return strings.ToLower(configs.GetEnv("ALLOW_REGISTRATION", "true")) != "false"
}

func Login(db *gorm.DB, email, password string, now time.Time) (*models.User, TokenPair, error) {
	user, err := authRepo.FindUserByEmail(db, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, TokenPair{}, errInvalidCredentials
	}
	if err != nil {
		return nil, TokenPair{}, apperr.Internal(apperr.CodeServer, "Login failed", err)
	}
	if err := authHelper.CheckPasswordHash(user.Password, password); err != nil {
		return nil, TokenPair{}, errInvalidCredentials
	}
	pair, err := IssuePair(*user, now)
	if err != nil {
		return nil, TokenPair{}, apperr.Internal(apperr.CodeServer, "Login failed", err)
	}
	return user, pair, nil
}

func Register(db *gorm.DB, name, email, password string, now time.Time) (*models.User, TokenPair, error) {
	if !RegistrationOpen() {
		return nil, TokenPair{}, errRegistrationClosed
	}
	bag := helper.FieldErrorBag{}
	if !authHelper.IsAlphaNumeric(password) {
		bag.Add("password", "password must contain at least one letter and one number")
	}
	taken, err := authRepo.EmailTaken(db, email)
	if err != nil {
		return nil, TokenPair{}, apperr.Internal(apperr.CodeCreate, "Failed to register user", err)
	}
	if taken {
		bag.Add("email", "email has already been taken")
	}
	if err := bag.Err(); err != nil {
		return nil, TokenPair{}, err
	}

	hash, err := authHelper.HashPassword(password)
	if err != nil {
		return nil, TokenPair{}, apperr.Internal(apperr.CodeCreate, "Failed to register user", err)
	}
	user := models.User{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, TokenPair{}, apperr.Field("email", "email has already been taken")
		}
		return nil, TokenPair{}, apperr.Internal(apperr.CodeCreate, "Failed to register user", err)
	}
	pair, err := IssuePair(user, now)
	if err != nil {
		return nil, TokenPair{}, apperr.Internal(apperr.CodeCreate, "Failed to register user", err)
	}
	return &user, pair, nil
}

// Refresh rotates the pair: the presented refresh token is blacklisted and cannot be reused.
func Refresh(db *gorm.DB, refreshToken string, now time.Time) (TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	claims, err := ParseRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, errInvalidRefresh
	}
	revoked, err := authRepo.IsBlacklisted(db, refreshToken)
	if err != nil {
		return TokenPair{}, apperr.Internal(apperr.CodeServer, "Failed to refresh token", err)
	}
	if revoked {
		return TokenPair{}, errInvalidRefresh
	}
	user, err := authRepo.FindUserByID(db, claims.UserID)
	if err != nil {
		return TokenPair{}, errInvalidRefresh
	}

	var pair TokenPair
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := authRepo.BlacklistToken(tx, refreshToken, claims.Expiry()); err != nil {
			return err
		}
		pair, err = IssuePair(*user, now)
		return err
	})
	if err != nil {
		return TokenPair{}, apperr.Internal(apperr.CodeServer, "Failed to refresh token", err)
	}
	return pair, nil
}

// Logout blacklists the access token and, when given, the refresh token.
func Logout(db *gorm.DB, accessToken string, accessExp time.Time, refreshToken string) error {
	if accessToken != "" {
		if err := authRepo.BlacklistToken(db, accessToken, accessExp); err != nil {
			return apperr.Internal(apperr.CodeServer, "Logout failed", err)
		}
	}
	if refreshToken = strings.TrimSpace(refreshToken); refreshToken != "" {
		if claims, err := ParseRefresh(refreshToken); err == nil {
			if err := authRepo.BlacklistToken(db, refreshToken, claims.Expiry()); err != nil {
				return apperr.Internal(apperr.CodeServer, "Logout failed", err)
			}
		}
	}
	return nil
}
