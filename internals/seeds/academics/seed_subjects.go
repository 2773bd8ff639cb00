package academics

import (
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nojom_backend/internals/models"
)

type SubjectSeed struct {
	NameEn       string  `json:"name_en"`
	NameAr       string  `json:"name_ar"`
	Code         string  `json:"code"`
	GradeLevel   string  `json:"grade_level"`
	HoursPerWeek int     `json:"hours_per_week"`
	PricePerHour float64 `json:"price_per_hour"`
	FeeAmount    float64 `json:"fee_amount"`
}

// SeedSubjectsFromJSON inserts the catalogue, skipping codes that already exist.
func SeedSubjectsFromJSON(db *gorm.DB, filePath string) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var inputs []SubjectSeed
	if err := sonic.Unmarshal(raw, &inputs); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return nil
	}

	rows := make([]models.Subject, 0, len(inputs))
	for _, s := range inputs {
		hours := s.HoursPerWeek
		if hours < 1 {
			hours = 1
		}
		rows = append(rows, models.Subject{
			NameEn:       s.NameEn,
			NameAr:       s.NameAr,
			Code:         s.Code,
			GradeLevel:   s.GradeLevel,
			HoursPerWeek: hours,
			PricePerHour: s.PricePerHour,
			FeeAmount:    s.FeeAmount,
			Status:       models.SubjectStatusActive,
		})
	}
	res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&rows)
	if res.Error != nil {
		return res.Error
	}
	log.Info().Int64("inserted", res.RowsAffected).Str("file", filePath).Msg("seed: subjects")
	return nil
}
