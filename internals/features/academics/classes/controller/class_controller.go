package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/policy"
	classDTO "nojom_backend/internals/features/academics/classes/dto"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/dbtime"
	"nojom_backend/internals/models"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

func studentsByID(db *gorm.DB) *gorm.DB { return db.Order("students.id ASC") }

// GET /api/classes?search=&subject_id=&teacher_id=&grade_level=&status=
func (h *ClassController) List(c *fiber.Ctx) error {
	var q classDTO.ListClassQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 0, 0)
	order := helper.ResolveSort(c, classDTO.SortColumns, "created_at DESC")

	base := h.DB.Model(&models.ClassModel{})
	if s := strings.TrimSpace(q.Search); s != "" {
		base = base.Where("LOWER(name) LIKE ?", helper.ILikePattern(s))
	}
	if q.SubjectID > 0 {
		base = base.Where("subject_id = ?", q.SubjectID)
	}
	if q.TeacherID > 0 {
		base = base.Where("teacher_id = ?", q.TeacherID)
	}
	if q.GradeLevel != "" {
		base = base.Where("grade_level = ?", q.GradeLevel)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load classes", err)
	}
	var rows []models.ClassModel
	if err := base.Session(&gorm.Session{}).
		Preload("Subject").Preload("Teacher").
		Order(order).Order("id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load classes", err)
	}

	counts, err := h.enrolledCounts(rows)
	if err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load classes", err)
	}
	items := make([]classDTO.ClassItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, classDTO.ClassItem{ClassModel: r, StudentsCount: counts[r.ID]})
	}
	return helper.JsonList(c, items, helper.BuildMeta(total, paging))
}

// POST /api/classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	var req classDTO.CreateClassRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	bag := helper.FieldErrorBag{}
	if !dbtime.TodAfter(req.StartTime, req.EndTime) {
		bag.Add("end_time", "end_time must be after start_time")
	}
	if err := h.checkRefs(bag, req.SubjectID, req.TeacherID); err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create class", err)
	}
	if err := bag.Err(); err != nil {
		return err
	}

	row := req.ToModel()
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := policy.ShareClassRefs(tx, row.SubjectID, row.TeacherID); err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return apperr.OrInternal(err, apperr.CodeCreate, "Failed to create class")
	}
	if err := h.DB.Preload("Subject").Preload("Teacher").First(&row, row.ID).Error; err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create class", err)
	}
	return helper.JsonCreated(c, "Class created successfully", row)
}

// GET /api/classes/:id
func (h *ClassController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "class")
	if err != nil {
		return err
	}
	var row models.ClassModel
	q := h.DB.Preload("Subject").Preload("Teacher").Preload("Students", studentsByID)
	if err := helper.FindOr404(q, &row, id, "class"); err != nil {
		return err
	}
	return helper.JsonOK(c, classDTO.ClassItem{ClassModel: row, StudentsCount: int64(len(row.Students))})
}

// PUT|PATCH /api/classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "class")
	if err != nil {
		return err
	}
	var row models.ClassModel
	if err := helper.FindOr404(h.DB, &row, id, "class"); err != nil {
		return err
	}
	var req classDTO.UpdateClassRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	changes := req.Apply(&row)

	bag := helper.FieldErrorBag{}
	if (req.StartTime != nil || req.EndTime != nil) && !dbtime.TodAfter(row.StartTime, row.EndTime) {
		bag.Add("end_time", "end_time must be after start_time")
	}
	var subjectID, teacherID uint
	if req.SubjectID != nil {
		subjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		teacherID = *req.TeacherID
	}
	if err := h.checkRefs(bag, subjectID, teacherID); err != nil {
		return apperr.Internal(apperr.CodeUpdate, "Failed to update class", err)
	}
	if err := bag.Err(); err != nil {
		return err
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := policy.ShareClassRefs(tx, subjectID, teacherID); err != nil {
			return err
		}
		if req.MaxStudents != nil {
			if err := policy.GuardCapacity(tx, id, row.MaxStudents); err != nil {
				return err
			}
		}
		if len(changes) == 0 {
			return nil
		}
		return tx.Model(&models.ClassModel{ID: id}).Updates(changes).Error
	})
	if err != nil {
		return apperr.OrInternal(err, apperr.CodeUpdate, "Failed to update class")
	}
	if err := h.DB.Preload("Subject").Preload("Teacher").First(&row, id).Error; err != nil {
		return apperr.Internal(apperr.CodeUpdate, "Failed to update class", err)
	}
	return helper.JsonUpdated(c, "Class updated successfully", row)
}

// DELETE /api/classes/:id
func (h *ClassController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "class")
	if err != nil {
		return err
	}
	if err := helper.FindOr404(h.DB, &models.ClassModel{}, id, "class"); err != nil {
		return err
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := policy.GuardClassDelete(tx, id); err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ClassModel{}, id).Error
	})
	if err != nil {
		return apperr.OrInternal(err, apperr.CodeDelete, "Failed to delete class")
	}
	return helper.JsonMessage(c, "Class deleted successfully")
}

func (h *ClassController) checkRefs(bag helper.FieldErrorBag, subjectID, teacherID uint) error {
	if subjectID > 0 {
		ok, err := helper.Exists(h.DB, &models.Subject{}, subjectID)
		if err != nil {
			return err
		}
		if !ok {
			bag.Add("subject_id", "selected subject_id is invalid")
		}
	}
	if teacherID > 0 {
		ok, err := helper.Exists(h.DB, &models.Teacher{}, teacherID)
		if err != nil {
			return err
		}
		if !ok {
			bag.Add("teacher_id", "selected teacher_id is invalid")
		}
	}
	return nil
}

func (h *ClassController) enrolledCounts(rows []models.ClassModel) (map[uint]int64, error) {
	out := make(map[uint]int64, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	var counts []struct {
		ClassID uint
		N       int64
	}
	if err := h.DB.Model(&models.ClassStudent{}).
		Select("class_id, COUNT(*) AS n").
		Where("class_id IN ?", ids).
		Group("class_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, r := range counts {
		out[r.ClassID] = r.N
	}
	return out, nil
}
