package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/aggregate"
	teacherDTO "nojom_backend/internals/features/academics/teachers/dto"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/models"
)

// GET /api/teachers/:id/statistics
func (h *TeacherController) Statistics(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "teacher")
	if err != nil {
		return err
	}
	var teacher models.Teacher
	if err := helper.FindOr404(h.DB.Preload("Subjects", subjectsByID), &teacher, id, "teacher"); err != nil {
		return err
	}

	var st teacherDTO.TeacherStatistics
	classes := h.DB.Model(&models.ClassModel{}).Where("teacher_id = ?", id)
	if err := classes.Session(&gorm.Session{}).Count(&st.TotalClasses).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load teacher statistics", err)
	}
	if err := classes.Session(&gorm.Session{}).Where("status = ?", models.ClassStatusActive).Count(&st.ActiveClasses).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load teacher statistics", err)
	}
	if err := h.DB.Table("class_student").
		Joins("JOIN classes ON classes.id = class_student.class_id").
		Where("classes.teacher_id = ?", id).
		Count(&st.TotalStudents).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load teacher statistics", err)
	}

	return helper.JsonOK(c, fiber.Map{
		"teacher":    teacher,
		"statistics": st,
	})
}

// GET /api/teachers/:id/payments/suggested?month=&year=
// Suggested pay is the teacher's monthly percentage of completed payments
// collected for their classes in that month.
func (h *TeacherController) SuggestedPayment(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "teacher")
	if err != nil {
		return err
	}
	var q teacherDTO.SuggestedPaymentQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	var teacher models.Teacher
	if err := helper.FindOr404(h.DB, &teacher, id, "teacher"); err != nil {
		return err
	}

	now := aggregate.MonthOf(h.Clock.Now())
	if q.Month == 0 {
		q.Month = now.Month
	}
	if q.Year == 0 {
		q.Year = now.Year
	}

	var collected float64
	if err := h.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ? AND payment_month = ? AND payment_year = ?", models.PaymentStatusCompleted, q.Month, q.Year).
		Where("class_id IN (?)", h.DB.Model(&models.ClassModel{}).Select("id").Where("teacher_id = ?", id)).
		Scan(&collected).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to compute suggested payment", err)
	}

	out := teacherDTO.SuggestedPayment{
		TeacherID:         id,
		Month:             q.Month,
		Year:              q.Year,
		CollectedAmount:   aggregate.Round2(collected),
		MonthlyPercentage: teacher.MonthlyPercentage,
		SuggestedAmount:   aggregate.TeacherShare(collected, teacher.MonthlyPercentage),
	}
	var existing []models.TeacherPayment
	if err := h.DB.Where("teacher_id = ? AND payment_month = ? AND payment_year = ?", id, q.Month, q.Year).
		Limit(1).Find(&existing).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to compute suggested payment", err)
	}
	if len(existing) > 0 {
		out.AlreadyPaid = true
		out.ExistingPayment = &existing[0]
	}
	return helper.JsonOK(c, out)
}
