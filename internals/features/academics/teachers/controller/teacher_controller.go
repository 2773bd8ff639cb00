package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/association"
	"nojom_backend/internals/domain/policy"
	teacherDTO "nojom_backend/internals/features/academics/teachers/dto"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/helpers/dbtime"
	"nojom_backend/internals/models"
)

type TeacherController struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewTeacherController(db *gorm.DB, clk clock.Clock) *TeacherController {
	return &TeacherController{DB: db, Clock: clk}
}

func subjectsByID(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }

// GET /api/teachers?search=&status=&subject_id=&sort=
func (h *TeacherController) List(c *fiber.Ctx) error {
	var q teacherDTO.ListTeacherQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 0, 0)
	order := helper.ResolveSort(c, teacherDTO.SortColumns, "created_at DESC")

	base := h.DB.Model(&models.Teacher{})
	if s := strings.TrimSpace(q.Search); s != "" {
		like := helper.ILikePattern(s)
		base = base.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(phone) LIKE ?",
			like, like, like, like)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}
	if q.SubjectID > 0 {
		base = base.Where("id IN (?)", h.DB.Table("teacher_subject").Select("teacher_id").Where("subject_id = ?", q.SubjectID))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load teachers", err)
	}
	var teachers []models.Teacher
	if err := base.Session(&gorm.Session{}).
		Preload("Subjects", subjectsByID).
		Order(order).Order("id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&teachers).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load teachers", err)
	}
	return helper.JsonList(c, teachers, helper.BuildMeta(total, paging))
}

// POST /api/teachers
func (h *TeacherController) Create(c *fiber.Ctx) error {
	var req teacherDTO.CreateTeacherRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}

	bag := helper.FieldErrorBag{}
	if err := h.checkEmail(bag, req.Email, 0); err != nil {
		return err
	}
	if err := checkSubjects(h.DB, bag, req.SubjectIDs); err != nil {
		return err
	}
	if err := bag.Err(); err != nil {
		return err
	}

	var joined *time.Time
	if req.JoinedDate != nil && *req.JoinedDate != "" {
		t, _ := dbtime.ParseDate(*req.JoinedDate, time.UTC)
		joined = &t
	}
	teacher := req.ToModel(joined)
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&teacher).Error; err != nil {
			return err
		}
		_, _, err := association.Sync(tx, association.TeacherSubjects, teacher.ID, req.SubjectIDs)
		return err
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return apperr.Field("email", "email has already been taken")
		}
		return apperr.Internal(apperr.CodeCreate, "Failed to create teacher", err)
	}

	if err := h.DB.Preload("Subjects", subjectsByID).First(&teacher, teacher.ID).Error; err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create teacher", err)
	}
	return helper.JsonCreated(c, "Teacher created successfully", teacher)
}

// GET /api/teachers/:id
func (h *TeacherController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "teacher")
	if err != nil {
		return err
	}
	var teacher models.Teacher
	if err := helper.FindOr404(h.DB.
		Preload("Subjects", subjectsByID).
		Preload("Classes", subjectsByID).
		Preload("Classes.Subject"),
		&teacher, id, "teacher"); err != nil {
		return err
	}
	return helper.JsonOK(c, teacher)
}

// PUT|PATCH /api/teachers/:id
func (h *TeacherController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "teacher")
	if err != nil {
		return err
	}
	var teacher models.Teacher
	if err := helper.FindOr404(h.DB, &teacher, id, "teacher"); err != nil {
		return err
	}

	var req teacherDTO.UpdateTeacherRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}

	bag := helper.FieldErrorBag{}
	var joined *time.Time
	if v, ok := req.JoinedDate.Get(); ok && v != nil && strings.TrimSpace(*v) != "" {
		t, err := dbtime.ParseDate(*v, time.UTC)
		if err != nil {
			bag.Add("joined_date", "joined_date does not match the 2006-01-02 format")
		}
		joined = &t
	}
	if req.Email != nil {
		if err := h.checkEmail(bag, strings.ToLower(strings.TrimSpace(*req.Email)), id); err != nil {
			return err
		}
	}
	if req.SubjectIDs != nil {
		if err := checkSubjects(h.DB, bag, *req.SubjectIDs); err != nil {
			return err
		}
	}
	if err := bag.Err(); err != nil {
		return err
	}

	changes := req.Apply(&teacher, joined)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			if err := tx.Model(&models.Teacher{ID: id}).Updates(changes).Error; err != nil {
				return err
			}
		}
		if req.SubjectIDs != nil {
			if _, _, err := association.Sync(tx, association.TeacherSubjects, id, *req.SubjectIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return apperr.Field("email", "email has already been taken")
		}
		return apperr.Internal(apperr.CodeUpdate, "Failed to update teacher", err)
	}

	if err := h.DB.Preload("Subjects", subjectsByID).First(&teacher, id).Error; err != nil {
		return apperr.Internal(apperr.CodeUpdate, "Failed to update teacher", err)
	}
	return helper.JsonUpdated(c, "Teacher updated successfully", teacher)
}

// DELETE /api/teachers/:id
// Refused while the teacher still owns classes.
func (h *TeacherController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "teacher")
	if err != nil {
		return err
	}
	if err := helper.FindOr404(h.DB, &models.Teacher{}, id, "teacher"); err != nil {
		return err
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := policy.GuardTeacherDelete(tx, id); err != nil {
			return err
		}
		if err := association.DetachAll(tx, association.TeacherSubjects, id); err != nil {
			return err
		}
		if err := tx.Where("teacher_id = ?", id).Delete(&models.TeacherPayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Teacher{}, id).Error
	})
	if err != nil {
		return apperr.OrInternal(err, apperr.CodeDelete, "Failed to delete teacher")
	}
	return helper.JsonMessage(c, "Teacher deleted successfully")
}

func (h *TeacherController) checkEmail(bag helper.FieldErrorBag, email string, exceptID uint) error {
	if email == "" {
		return nil
	}
	q := h.DB.Model(&models.Teacher{}).Where("LOWER(email) = ?", email)
	if exceptID > 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to validate teacher", err)
	}
	if n > 0 {
		bag.Add("email", "email has already been taken")
	}
	return nil
}

func checkSubjects(db *gorm.DB, bag helper.FieldErrorBag, ids []uint) error {
	missing, err := helper.MissingIDs(db, &models.Subject{}, ids)
	if err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to validate subjects", err)
	}
	if len(missing) > 0 {
		bag.Add("subject_ids", "selected subject_ids are invalid")
	}
	return nil
}
