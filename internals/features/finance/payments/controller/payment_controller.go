package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/domain/policy"
	paymentDTO "nojom_backend/internals/features/finance/payments/dto"
	paymentService "nojom_backend/internals/features/finance/payments/service"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/helpers/dbtime"
	"nojom_backend/internals/models"
)

type PaymentController struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewPaymentController(db *gorm.DB, clk clock.Clock) *PaymentController {
	return &PaymentController{DB: db, Clock: clk}
}

func referenceTaken() error {
	return apperr.Field("reference_number", "reference_number has already been taken")
}

// GET /api/payments
func (h *PaymentController) List(c *fiber.Ctx) error {
	var q paymentDTO.ListPaymentQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 0, 0)
	order := helper.ResolveSort(c, paymentDTO.SortColumns, "payment_date DESC")

	base := h.DB.Model(&models.Payment{})
	if q.StudentID > 0 {
		base = base.Where("student_id = ?", q.StudentID)
	}
	if q.ClassID > 0 {
		base = base.Where("class_id = ?", q.ClassID)
	}
	if q.SubjectID > 0 {
		base = base.Where("subject_id = ?", q.SubjectID)
	}
	if q.PaymentMethod != "" {
		base = base.Where("payment_method = ?", q.PaymentMethod)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}
	if q.Month > 0 {
		base = base.Where("payment_month = ?", q.Month)
	}
	if q.Year > 0 {
		base = base.Where("payment_year = ?", q.Year)
	}
	if q.StartDate != "" {
		start, _ := dbtime.ParseDate(q.StartDate, time.UTC)
		base = base.Where("payment_date >= ?", start)
	}
	if q.EndDate != "" {
		end, _ := dbtime.ParseDate(q.EndDate, time.UTC)
		base = base.Where("payment_date < ?", end.AddDate(0, 0, 1))
	}
	if s := q.Trimmed(); s != "" {
		base = base.Where("LOWER(reference_number) LIKE ?", helper.ILikePattern(s))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load payments", err)
	}
	var rows []models.Payment
	if err := base.Session(&gorm.Session{}).
		Preload("Student").Preload("Class").Preload("Subject").
		Order(order).Order("id DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load payments", err)
	}
	return helper.JsonList(c, rows, helper.BuildMeta(total, paging))
}

// POST /api/payments
func (h *PaymentController) Create(c *fiber.Ctx) error {
	var req paymentDTO.CreatePaymentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	bag := helper.FieldErrorBag{}
	if err := h.checkRefs(bag, req.StudentID, req.ClassID, req.SubjectID); err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create payment", err)
	}
	if req.ReferenceNumber != nil && strings.TrimSpace(*req.ReferenceNumber) != "" {
		taken, err := paymentService.ReferenceTaken(h.DB, strings.TrimSpace(*req.ReferenceNumber), 0)
		if err != nil {
			return apperr.Internal(apperr.CodeCreate, "Failed to create payment", err)
		}
		if taken {
			bag.Add("reference_number", "reference_number has already been taken")
		}
	}
	if err := bag.Err(); err != nil {
		return err
	}

	paid, _ := dbtime.ParseDate(req.PaymentDate, time.UTC)
	row := req.ToModel(paid)
	if row.ReferenceNumber == nil {
		ref, err := paymentService.UniqueReference(h.DB, h.Clock.Now())
		if err != nil {
			return apperr.Internal(apperr.CodeCreate, "Failed to create payment", err)
		}
		row.ReferenceNumber = &ref
	}
	if err := h.DB.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return referenceTaken()
		}
		return apperr.Internal(apperr.CodeCreate, "Failed to create payment", err)
	}
	if err := h.preloaded().First(&row, row.ID).Error; err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create payment", err)
	}
	return helper.JsonCreated(c, "Payment created successfully", row)
}

// GET /api/payments/:id
func (h *PaymentController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "payment")
	if err != nil {
		return err
	}
	var row models.Payment
	if err := helper.FindOr404(h.preloaded(), &row, id, "payment"); err != nil {
		return err
	}
	return helper.JsonOK(c, row)
}

// PUT|PATCH /api/payments/:id
func (h *PaymentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "payment")
	if err != nil {
		return err
	}
	var row models.Payment
	if err := helper.FindOr404(h.DB, &row, id, "payment"); err != nil {
		return err
	}
	var req paymentDTO.UpdatePaymentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}

	var paid *time.Time
	if req.PaymentDate != nil {
		t, _ := dbtime.ParseDate(*req.PaymentDate, time.UTC)
		paid = &t
	}
	changes := req.Apply(&row, paid)

	bag := helper.FieldErrorBag{}
	var subjectID *uint
	if v, ok := req.SubjectID.Get(); ok {
		subjectID = v
	}
	var studentID, classID uint
	if req.StudentID != nil {
		studentID = row.StudentID
	}
	if req.ClassID != nil {
		classID = row.ClassID
	}
	if err := h.checkRefs(bag, studentID, classID, subjectID); err != nil {
		return apperr.Internal(apperr.CodeUpdate, "Failed to update payment", err)
	}
	if row.ReferenceNumber != nil && req.ReferenceNumber.Present {
		taken, err := paymentService.ReferenceTaken(h.DB, *row.ReferenceNumber, id)
		if err != nil {
			return apperr.Internal(apperr.CodeUpdate, "Failed to update payment", err)
		}
		if taken {
			bag.Add("reference_number", "reference_number has already been taken")
		}
	}
	if err := bag.Err(); err != nil {
		return err
	}

	if len(changes) > 0 {
		if err := h.DB.Model(&models.Payment{ID: id}).Updates(changes).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return referenceTaken()
			}
			return apperr.Internal(apperr.CodeUpdate, "Failed to update payment", err)
		}
	}
	if err := h.preloaded().First(&row, id).Error; err != nil {
		return apperr.Internal(apperr.CodeUpdate, "Failed to update payment", err)
	}
	return helper.JsonUpdated(c, "Payment updated successfully", row)
}

// DELETE /api/payments/:id
func (h *PaymentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "payment")
	if err != nil {
		return err
	}
	if err := helper.FindOr404(h.DB, &models.Payment{}, id, "payment"); err != nil {
		return err
	}
	if err := h.DB.Delete(&models.Payment{}, id).Error; err != nil {
		return apperr.Internal(apperr.CodeDelete, "Failed to delete payment", err)
	}
	return helper.JsonMessage(c, "Payment deleted successfully")
}

// GET /api/payments/student/:studentId
func (h *PaymentController) StudentPayments(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "studentId", "student")
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

// GET /api/payments/class/:classId
func (h *PaymentController) ClassPayments(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "classId", "class")
	if err != nil {
		return err
	}
	var class models.ClassModel
	if err := helper.FindOr404(h.DB.Preload("Subject").Preload("Teacher"), &class, id, "class"); err != nil {
		return err
	}
	var payments []models.Payment
	if err := h.DB.Preload("Student").
		Where("class_id = ?", id).
		Order("payment_date DESC, id DESC").
		Find(&payments).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load payments", err)
	}
	enrolled, err := policy.CountEnrolled(h.DB, id)
	if err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load payments", err)
	}
	return helper.JsonOK(c, fiber.Map{
		"class":    class,
		"payments": payments,
		"summary":  aggregate.SummarizeClassPayments(paymentService.Rows(payments), enrolled, class.MonthlyFee),
	})
}

// GET /api/payments/statistics?start_date=&end_date=
func (h *PaymentController) Statistics(c *fiber.Ctx) error {
	var q paymentDTO.StatisticsQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	base := h.DB.Model(&models.Payment{})
	if q.StartDate != "" {
		start, _ := dbtime.ParseDate(q.StartDate, time.UTC)
		base = base.Where("payment_date >= ?", start)
	}
	if q.EndDate != "" {
		end, _ := dbtime.ParseDate(q.EndDate, time.UTC)
		base = base.Where("payment_date < ?", end.AddDate(0, 0, 1))
	}
	var payments []models.Payment
	if err := base.Order("id ASC").Find(&payments).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load payment statistics", err)
	}
	return helper.JsonOK(c, aggregate.PaymentStatistics(paymentService.Rows(payments)))
}

func (h *PaymentController) preloaded() *gorm.DB {
	return h.DB.Preload("Student").Preload("Class").Preload("Subject")
}

// checkRefs validates the referenced rows; zero ids and nil subject are skipped.
func (h *PaymentController) checkRefs(bag helper.FieldErrorBag, studentID, classID uint, subjectID *uint) error {
	refs := []struct {
		field string
		model any
		id    uint
	}{
		{"student_id", &models.Student{}, studentID},
		{"class_id", &models.ClassModel{}, classID},
	}
	if subjectID != nil {
		refs = append(refs, struct {
			field string
			model any
			id    uint
		}{"subject_id", &models.Subject{}, *subjectID})
	}
	for _, r := range refs {
		if r.id == 0 {
			continue
		}
		ok, err := helper.Exists(h.DB, r.model, r.id)
		if err != nil {
			return err
		}
		if !ok {
			bag.Add(r.field, "selected "+r.field+" is invalid")
		}
	}
	return nil
}
