package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/policy"
	subjectDTO "nojom_backend/internals/features/academics/subjects/dto"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/models"
)

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

func codeTaken() error {
	return apperr.Field("code", "code has already been taken")
}

// GET /api/subjects?search=&grade_level=&status=
func (h *SubjectController) List(c *fiber.Ctx) error {
	var q subjectDTO.ListSubjectQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 0, 0)
	order := helper.ResolveSort(c, subjectDTO.SortColumns, "name_en ASC")

	base := h.DB.Model(&models.Subject{})
	if s := strings.TrimSpace(q.Search); s != "" {
		like := helper.ILikePattern(s)
		base = base.Where("LOWER(name_en) LIKE ? OR LOWER(name_ar) LIKE ? OR LOWER(code) LIKE ?", like, like, like)
	}
	if q.GradeLevel != "" {
		base = base.Where("grade_level = ?", q.GradeLevel)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load subjects", err)
	}
	var rows []models.Subject
	if err := base.Session(&gorm.Session{}).
		Order(order).Order("id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load subjects", err)
	}
	return helper.JsonList(c, rows, helper.BuildMeta(total, paging))
}

// GET /api/subjects/grade/:grade
func (h *SubjectController) ByGrade(c *fiber.Ctx) error {
	grade := c.Params("grade")
	if err := helper.Validator().Var(grade, "grade"); err != nil {
		return apperr.Field("grade", "grade must be one of 7, 8, 9, 10, 11, 12")
	}
	var rows []models.Subject
	if err := h.DB.Where("grade_level = ? AND status = ?", grade, models.SubjectStatusActive).
		Order("name_en ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load subjects", err)
	}
	return helper.JsonOK(c, rows)
}

// POST /api/subjects
func (h *SubjectController) Create(c *fiber.Ctx) error {
	var req subjectDTO.CreateSubjectRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	if taken, err := h.codeUsed(req.Code, 0); err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create subject", err)
	} else if taken {
		return codeTaken()
	}

	row := req.ToModel()
	if err := h.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return codeTaken()
		}
		return apperr.Internal(apperr.CodeCreate, "Failed to create subject", err)
	}
	return helper.JsonCreated(c, "Subject created successfully", row)
}

// GET /api/subjects/:id
func (h *SubjectController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "subject")
	if err != nil {
		return err
	}
	var subject models.Subject
	if err := helper.FindOr404(h.DB, &subject, id, "subject"); err != nil {
		return err
	}

	out := subjectDTO.SubjectDetail{Subject: subject}
	if err := h.DB.Preload("Teacher").
		Where("subject_id = ?", id).Order("id ASC").
		Find(&out.Classes).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load subject", err)
	}
	if err := h.DB.
		Where("id IN (?)", h.DB.Table("teacher_subject").Select("teacher_id").Where("subject_id = ?", id)).
		Order("id ASC").
		Find(&out.Teachers).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load subject", err)
	}
	return helper.JsonOK(c, out)
}

// PUT|PATCH /api/subjects/:id
func (h *SubjectController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "subject")
	if err != nil {
		return err
	}
	var row models.Subject
	if err := helper.FindOr404(h.DB, &row, id, "subject"); err != nil {
		return err
	}
	var req subjectDTO.UpdateSubjectRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	changes := req.Apply(&row)
	if _, ok := changes["code"]; ok {
		if taken, err := h.codeUsed(row.Code, id); err != nil {
			return apperr.Internal(apperr.CodeUpdate, "Failed to update subject", err)
		} else if taken {
			return codeTaken()
		}
	}

	if len(changes) > 0 {
		if err := h.DB.Model(&models.Subject{ID: id}).Updates(changes).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return codeTaken()
			}
			return apperr.Internal(apperr.CodeUpdate, "Failed to update subject", err)
		}
	}
	if err := h.DB.First(&row, id).Error; err != nil {
		return apperr.Internal(apperr.CodeUpdate, "Failed to update subject", err)
	}
	return helper.JsonUpdated(c, "Subject updated successfully", row)
}

// DELETE /api/subjects/:id
func (h *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "subject")
	if err != nil {
		return err
	}
	if err := helper.FindOr404(h.DB, &models.Subject{}, id, "subject"); err != nil {
		return err
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := policy.GuardSubjectDelete(tx, id); err != nil {
			return err
		}
		for _, join := range []any{&models.StudentSubject{}, &models.TeacherSubject{}} {
			if err := tx.Where("subject_id = ?", id).Delete(join).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Payment{}).Where("subject_id = ?", id).Update("subject_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Subject{}, id).Error
	})
	if err != nil {
		return apperr.OrInternal(err, apperr.CodeDelete, "Failed to delete subject")
	}
	return helper.JsonMessage(c, "Subject deleted successfully")
}

// GET /api/subjects/:id/statistics
func (h *SubjectController) Statistics(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "subject")
	if err != nil {
		return err
	}
	var subject models.Subject
	if err := helper.FindOr404(h.DB, &subject, id, "subject"); err != nil {
		return err
	}

	var st subjectDTO.SubjectStatistics
	counts := []struct {
		q   *gorm.DB
		dst *int64
	}{
		{h.DB.Model(&models.ClassModel{}).Where("subject_id = ?", id), &st.TotalClasses},
		{h.DB.Model(&models.ClassModel{}).Where("subject_id = ? AND status = ?", id, models.ClassStatusActive), &st.ActiveClasses},
		{h.DB.Model(&models.TeacherSubject{}).Where("subject_id = ?", id), &st.TotalTeachers},
		{h.DB.Model(&models.StudentSubject{}).Where("subject_id = ?", id), &st.TotalStudents},
	}
	for _, cnt := range counts {
		if err := cnt.q.Count(cnt.dst).Error; err != nil {
			return apperr.Internal(apperr.CodeServer, "Failed to load subject statistics", err)
		}
	}
	return helper.JsonOK(c, fiber.Map{"subject": subject, "statistics": st})
}

func (h *SubjectController) codeUsed(code string, exceptID uint) (bool, error) {
	q := h.DB.Model(&models.Subject{}).Where("LOWER(code) = ?", strings.ToLower(code))
	if exceptID > 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}
