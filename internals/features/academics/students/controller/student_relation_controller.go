package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/domain/policy"
	studentDTO "nojom_backend/internals/features/academics/students/dto"
	paymentService "nojom_backend/internals/features/finance/payments/service"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/models"
)

// GET /api/students/:id/payments
func (h *StudentController) Payments(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "student")
	if err != nil {
		return err
	}
	var student models.Student
	if err := helper.FindOr404(h.DB, &student, id, "student"); err != nil {
		return err
	}

	var payments []models.Payment
	if err := h.DB.Preload("Class").Preload("Subject").
		Where("student_id = ?", id).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load payments", err)
	}

	return helper.JsonOK(c, fiber.Map{
		"student":  student,
		"payments": payments,
		"summary":  aggregate.SummarizeStudentPayments(paymentService.Rows(payments)),
	})
}

// GET /api/students/:id/classes
func (h *StudentController) Classes(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "student")
	if err != nil {
		return err
	}
	if err := helper.FindOr404(h.DB, &models.Student{}, id, "student"); err != nil {
		return err
	}

	var classes []models.ClassModel
	if err := h.DB.Preload("Subject").Preload("Teacher").
		Joins("JOIN class_student cs ON cs.class_id = classes.id").
		Where("cs.student_id = ?", id).
		Order("classes.id ASC").
		Find(&classes).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load classes", err)
	}
	return helper.JsonOK(c, classes)
}

// POST /api/students/:id/classes
// Same capacity and duplicate rules as POST /api/classes/:id/students.
func (h *StudentController) JoinClass(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "student")
	if err != nil {
		return err
	}
	var req studentDTO.JoinClassRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	if err := helper.FindOr404(h.DB, &models.Student{}, id, "student"); err != nil {
		return err
	}
	exists, err := helper.Exists(h.DB, &models.ClassModel{}, req.ClassID)
	if err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to add student to class", err)
	}
	if !exists {
		return apperr.Field("class_id", "selected class_id is invalid")
	}

	var class *models.ClassModel
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		class, err = policy.Enroll(tx, req.ClassID, id)
		return err
	})
	if err != nil {
		return apperr.OrInternal(err, apperr.CodeServer, "Failed to add student to class")
	}
	return helper.JsonCreated(c, "Student added to class successfully", class)
}
