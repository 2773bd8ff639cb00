package helper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/helpers/apperr"
)

// ParamID parses a numeric route parameter. Malformed ids are reported as the
// entity's NOT_FOUND, the same as an id that does not exist.
func ParamID(c *fiber.Ctx, name, entity string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.NotFound(entity)
	}
	return uint(n), nil
}

// FindOr404 loads dest by primary key and maps a miss to <entity>_NOT_FOUND.
func FindOr404(db *gorm.DB, dest any, id uint, entity string) error {
	err := db.First(dest, id).Error
	if IsNotFound(err) {
		return apperr.NotFound(entity)
	}
	if err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load "+entity, err)
	}
	return nil
}

// Exists reports whether a row with id exists in model's table.
func Exists(db *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	err := db.Model(model).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// MissingIDs returns the ids that have no row in model's table.
func MissingIDs(db *gorm.DB, model any, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	if err := db.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	have := make(map[uint]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	var missing []uint
	for _, id := range ids {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

/* =========================================================
   PATCH FIELD — tri-state (absent | null | value)
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

// TrimmedOrNil turns blank strings into nil.
func TrimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// TrimPtr trims *s in place, keeping a present field present.
func TrimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
