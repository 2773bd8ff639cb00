package controller

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/configs"
	studentDTO "nojom_backend/internals/features/academics/students/dto"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/dbtime"
	"nojom_backend/internals/helpers/spreadsheet"
	"nojom_backend/internals/models"
)

var requiredImportColumns = []string{"first_name", "last_name", "phone", "grade", "joined_date"}

// POST /api/students/import (multipart "file", .xlsx)
// Valid rows are created together; invalid rows are reported by row number.
func (h *StudentController) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.Field("file", "file is required")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") {
		return apperr.Field("file", "file must be an .xlsx spreadsheet")
	}
	if max := int64(configs.App.Upload.MaxSizeMB) << 20; fh.Size > max {
		return apperr.Field("file", fmt.Sprintf("file may not be greater than %d MB", configs.App.Upload.MaxSizeMB))
	}

	f, err := fh.Open()
	if err != nil {
		return apperr.Internal(apperr.CodeImport, "Failed to read upload", err)
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return apperr.Internal(apperr.CodeImport, "Failed to read upload", err)
	}

	table, err := spreadsheet.ReadTable(raw)
	if errors.Is(err, spreadsheet.ErrEmptyWorkbook) {
		return apperr.Field("file", "spreadsheet has no data rows")
	}
	if err != nil {
		return apperr.Field("file", "file is not a readable spreadsheet")
	}
	if missing := table.Missing(requiredImportColumns...); len(missing) > 0 {
		return apperr.Field("file", "missing columns: "+strings.Join(missing, ", "))
	}

	result := studentDTO.ImportResult{Errors: []studentDTO.ImportRowError{}}
	var valid []models.Student
	seenPhones := map[string]int{}

	for i := range table.Rows {
		rowNo := i + 2 // header is row 1
		req := rowRequest(table, i)
		req.Normalize()

		bag := helper.FieldErrorBag{}
		if err := bag.Merge(helper.ValidateStruct(&req)); err != nil {
			return apperr.Internal(apperr.CodeImport, "Failed to import students", err)
		}
		if req.Phone != "" {
			if prev, dup := seenPhones[req.Phone]; dup {
				bag.Add("phone", fmt.Sprintf("phone duplicates row %d", prev))
			} else {
				seenPhones[req.Phone] = rowNo
				if err := h.checkPhone(bag, req.Phone, 0); err != nil {
					return err
				}
			}
		}
		if len(bag) > 0 {
			result.Failed++
			result.Errors = append(result.Errors, studentDTO.ImportRowError{Row: rowNo, Errors: bag})
			continue
		}

		joined, _ := dbtime.ParseDate(req.JoinedDate, time.UTC)
		valid = append(valid, req.ToModel(joined))
	}

	if len(valid) > 0 {
		err := h.DB.Transaction(func(tx *gorm.DB) error {
			return tx.CreateInBatches(&valid, 100).Error
		})
		if err != nil {
			return apperr.Internal(apperr.CodeImport, "Failed to import students", err)
		}
	}
	result.Imported = len(valid)

	return helper.JsonCreated(c, fmt.Sprintf("%d students imported", result.Imported), result)
}

func rowRequest(t spreadsheet.Table, i int) studentDTO.CreateStudentRequest {
	req := studentDTO.CreateStudentRequest{
		FirstName:  t.Value(i, "first_name"),
		LastName:   t.Value(i, "last_name"),
		Phone:      t.Value(i, "phone"),
		Grade:      t.Value(i, "grade"),
		JoinedDate: t.Value(i, "joined_date"),
		Status:     strings.ToLower(t.Value(i, "status")),
	}
	if v := t.Value(i, "notes"); v != "" {
		req.Notes = &v
	}
	if v := t.Value(i, "attendance_rate"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.AttendanceRate = &f
		} else {
			bad := -1.0
			req.AttendanceRate = &bad
		}
	}
	return req
}
