package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tpDTO "nojom_backend/internals/features/finance/teacher_payments/dto"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/dbtime"
	"nojom_backend/internals/models"
)

type TeacherPaymentController struct {
	DB *gorm.DB
}

func NewTeacherPaymentController(db *gorm.DB) *TeacherPaymentController {
	return &TeacherPaymentController{DB: db}
}

func periodTaken(month, year int) error {
	return apperr.Rule(apperr.CodeTeacherPaymentExists,
		fmt.Sprintf("Teacher has already been paid for %02d/%d", month, year))
}

// GET /api/teacher-payments?teacher_id=&month=&year=
func (h *TeacherPaymentController) List(c *fiber.Ctx) error {
	var q tpDTO.ListTeacherPaymentQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 0, 0)
	order := helper.ResolveSort(c, tpDTO.SortColumns, "payment_date DESC")

	base := h.DB.Model(&models.TeacherPayment{})
	if q.TeacherID > 0 {
		base = base.Where("teacher_id = ?", q.TeacherID)
	}
	if q.Month > 0 {
		base = base.Where("payment_month = ?", q.Month)
	}
	if q.Year > 0 {
		base = base.Where("payment_year = ?", q.Year)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load teacher payments", err)
	}
	var rows []models.TeacherPayment
	if err := base.Session(&gorm.Session{}).Preload("Teacher").
		Order(order).Order("id DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load teacher payments", err)
	}
	return helper.JsonList(c, rows, helper.BuildMeta(total, paging))
}

// POST /api/teacher-payments
func (h *TeacherPaymentController) Create(c *fiber.Ctx) error {
	var req tpDTO.CreateTeacherPaymentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	ok, err := helper.Exists(h.DB, &models.Teacher{}, req.TeacherID)
	if err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create teacher payment", err)
	}
	if !ok {
		return apperr.Field("teacher_id", "selected teacher_id is invalid")
	}
	if taken, err := h.periodUsed(req.TeacherID, req.PaymentMonth, req.PaymentYear, 0); err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create teacher payment", err)
	} else if taken {
		return periodTaken(req.PaymentMonth, req.PaymentYear)
	}

	paid, _ := dbtime.ParseDate(req.PaymentDate, time.UTC)
	row := req.ToModel(paid)
	if err := h.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return periodTaken(req.PaymentMonth, req.PaymentYear)
		}
		return apperr.Internal(apperr.CodeCreate, "Failed to create teacher payment", err)
	}
	if err := h.DB.Preload("Teacher").First(&row, row.ID).Error; err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create teacher payment", err)
	}
	return helper.JsonCreated(c, "Teacher payment created successfully", row)
}

// GET /api/teacher-payments/:id
func (h *TeacherPaymentController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "teacher payment")
	if err != nil {
		return err
	}
	var row models.TeacherPayment
	if err := helper.FindOr404(h.DB.Preload("Teacher"), &row, id, "teacher payment"); err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// PUT|PATCH /api/teacher-payments/:id
func (h *TeacherPaymentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "teacher payment")
	if err != nil {
		return err
	}
	var row models.TeacherPayment
	if err := helper.FindOr404(h.DB, &row, id, "teacher payment"); err != nil {
		return err
	}
	var req tpDTO.UpdateTeacherPaymentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}

	var paid *time.Time
	if req.PaymentDate != nil {
		t, _ := dbtime.ParseDate(*req.PaymentDate, time.UTC)
		paid = &t
	}
	changes := req.Apply(&row, paid)
	if req.PaymentMonth != nil || req.PaymentYear != nil {
		taken, err := h.periodUsed(row.TeacherID, row.PaymentMonth, row.PaymentYear, id)
		if err != nil {
			return apperr.Internal(apperr.CodeUpdate, "Failed to update teacher payment", err)
		}
		if taken {
			return periodTaken(row.PaymentMonth, row.PaymentYear)
		}
	}

	if len(changes) > 0 {
		if err := h.DB.Model(&models.TeacherPayment{ID: id}).Updates(changes).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return periodTaken(row.PaymentMonth, row.PaymentYear)
			}
			return apperr.Internal(apperr.CodeUpdate, "Failed to update teacher payment", err)
		}
	}
	if err := h.DB.Preload("Teacher").First(&row, id).Error; err != nil {
		return apperr.Internal(apperr.CodeUpdate, "Failed to update teacher payment", err)
	}
	return helper.JsonUpdated(c, "Teacher payment updated successfully", row)
}

// DELETE /api/teacher-payments/:id
func (h *TeacherPaymentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "teacher payment")
	if err != nil {
		return err
	}
	if err := helper.FindOr404(h.DB, &models.TeacherPayment{}, id, "teacher payment"); err != nil {
		return err
	}
	if err := h.DB.Delete(&models.TeacherPayment{}, id).Error; err != nil {
		return apperr.Internal(apperr.CodeDelete, "Failed to delete teacher payment", err)
	}
	return helper.JsonMessage(c, "Teacher payment deleted successfully")
}

func (h *TeacherPaymentController) periodUsed(teacherID uint, month, year int, exceptID uint) (bool, error) {
	q := h.DB.Model(&models.TeacherPayment{}).
		Where("teacher_id = ? AND payment_month = ? AND payment_year = ?", teacherID, month, year)
	if exceptID > 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}
