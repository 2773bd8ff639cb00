package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nojom_backend/internals/models"
)

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func EmailTaken(db *gorm.DB, email string) (bool, error) {
	var n int64
	err := db.Model(&models.User{}).Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Count(&n).Error
	return n > 0, err
}

/* ====================== TOKEN BLACKLIST ====================== */

// BlacklistToken is idempotent: blacklisting the same token twice is not an error.
func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TokenBlacklist{Token: token, ExpiredAt: expiredAt}).Error
}

func IsBlacklisted(db *gorm.DB, token string) (bool, error) {
	var existing models.TokenBlacklist
	err := db.Select("id").Where("token = ?", token).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PurgeBlacklist hard-deletes entries that expired before cutoff, at most limit rows.
func PurgeBlacklist(db *gorm.DB, cutoff time.Time, limit int) (int64, error) {
	var ids []uint
	if err := db.Model(&models.TokenBlacklist{}).
		Where("expired_at < ?", cutoff).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.Unscoped().Where("id IN ?", ids).Delete(&models.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
