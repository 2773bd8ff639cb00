package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/domain/policy"
	classDTO "nojom_backend/internals/features/academics/classes/dto"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/models"
)

// POST /api/classes/:id/students
func (h *ClassController) AddStudent(c *fiber.Ctx) error {
	id, req, err := h.enrollmentInput(c)
	if err != nil {
		return err
	}

	var class *models.ClassModel
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		class, err = policy.Enroll(tx, id, req.StudentID)
		return err
	})
	if err != nil {
		return apperr.OrInternal(err, apperr.CodeServer, "Failed to add student to class")
	}
	if err := h.DB.Preload("Students", studentsByID).First(class, id).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to add student to class", err)
	}
	return helper.JsonCreated(c, "Student added to class successfully", class)
}

// DELETE /api/classes/:id/students
func (h *ClassController) RemoveStudent(c *fiber.Ctx) error {
	id, req, err := h.enrollmentInput(c)
	if err != nil {
		return err
	}

	var removed bool
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = policy.Unenroll(tx, id, req.StudentID)
		return err
	})
	if err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to remove student from class", err)
	}
	if !removed {
		return apperr.Field("student_id", "student is not enrolled in this class")
	}
	return helper.JsonMessage(c, "Student removed from class successfully")
}

func (h *ClassController) enrollmentInput(c *fiber.Ctx) (uint, classDTO.EnrollmentRequest, error) {
	var req classDTO.EnrollmentRequest
	id, err := helper.ParamID(c, "id", "class")
	if err != nil {
		return 0, req, err
	}
	if err := helper.ParseBody(c, &req); err != nil {
		return 0, req, err
	}
	if err := helper.FindOr404(h.DB, &models.ClassModel{}, id, "class"); err != nil {
		return 0, req, err
	}
	ok, err := helper.Exists(h.DB, &models.Student{}, req.StudentID)
	if err != nil {
		return 0, req, apperr.Internal(apperr.CodeServer, "Failed to load student", err)
	}
	if !ok {
		return 0, req, apperr.Field("student_id", "selected student_id is invalid")
	}
	return id, req, nil
}

// GET /api/classes/:id/statistics
func (h *ClassController) Statistics(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "class")
	if err != nil {
		return err
	}
	var class models.ClassModel
	if err := helper.FindOr404(h.DB.Preload("Subject").Preload("Teacher"), &class, id, "class"); err != nil {
		return err
	}

	var rates []float64
	if err := h.DB.Model(&models.Student{}).
		Joins("JOIN class_student cs ON cs.student_id = students.id").
		Where("cs.class_id = ?", id).
		Order("students.id ASC").
		Pluck("students.attendance_rate", &rates).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load class statistics", err)
	}
	enrolled := int64(len(rates))

	return helper.JsonOK(c, fiber.Map{
		"class": class,
		"statistics": classDTO.ClassStatistics{
			TotalStudents:      enrolled,
			AvailableSlots:     aggregate.AvailableSlots(enrolled, class.MaxStudents),
			AttendanceRate:     aggregate.AverageRate(rates),
			CapacityPercentage: aggregate.CapacityPercentage(enrolled, class.MaxStudents),
		},
	})
}
