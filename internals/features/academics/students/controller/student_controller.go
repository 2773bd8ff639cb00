package controller

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/constants"
	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/domain/association"
	studentDTO "nojom_backend/internals/features/academics/students/dto"
	studentService "nojom_backend/internals/features/academics/students/service"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/helpers/dbtime"
	"nojom_backend/internals/models"
)

type StudentController struct {
	DB    *gorm.DB
	Clock clock.Clock
}

func NewStudentController(db *gorm.DB, clk clock.Clock) *StudentController {
	return &StudentController{DB: db, Clock: clk}
}

/*
=========================================================

	LIST
	GET /api/students?search=&grade=&status=&payment_status=&sort=-joined_date&page=&per_page=
	=========================================================
*/
func (h *StudentController) List(c *fiber.Ctx) error {
	var q studentDTO.ListStudentQuery
	if err := helper.ParseQuery(c, &q); err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 0, 0)
	order := helper.ResolveSort(c, studentDTO.SortColumns, "created_at DESC")
	month := aggregate.MonthOf(h.Clock.Now())

	base := h.DB.Model(&models.Student{})
	if s := strings.TrimSpace(q.Search); s != "" {
		like := helper.ILikePattern(s)
		base = base.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(phone) LIKE ?", like, like, like)
	}
	if q.Grade != "" {
		base = base.Where("grade = ?", q.Grade)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}

	var (
		students []models.Student
		infos    map[uint]aggregate.StudentPaymentInfo
		total    int64
	)

	if q.PaymentStatus == "" {
		if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return apperr.Internal(apperr.CodeServer, "Failed to load students", err)
		}
		if err := base.Session(&gorm.Session{}).
			Preload("Subjects", orderByID).
			Order(order).Order("id ASC").
			Limit(paging.Limit).Offset(paging.Offset).
			Find(&students).Error; err != nil {
			return apperr.Internal(apperr.CodeServer, "Failed to load students", err)
		}
		var err error
		if infos, err = studentService.PaymentInfo(h.DB, studentIDs(students), month); err != nil {
			return apperr.Internal(apperr.CodeServer, "Failed to load students", err)
		}
	} else {
		// payment status is derived, so filter in memory before paginating
		var ids []uint
		if err := base.Session(&gorm.Session{}).Order(order).Order("id ASC").Pluck("id", &ids).Error; err != nil {
			return apperr.Internal(apperr.CodeServer, "Failed to load students", err)
		}
		all, err := studentService.PaymentInfo(h.DB, ids, month)
		if err != nil {
			return apperr.Internal(apperr.CodeServer, "Failed to load students", err)
		}
		matched := make([]uint, 0, len(ids))
		for _, id := range ids {
			if all[id].PaymentStatus == q.PaymentStatus {
				matched = append(matched, id)
			}
		}
		total = int64(len(matched))
		page := window(matched, paging.Offset, paging.Limit)
		if len(page) > 0 {
			if err := h.DB.Preload("Subjects", orderByID).Where("id IN ?", page).Find(&students).Error; err != nil {
				return apperr.Internal(apperr.CodeServer, "Failed to load students", err)
			}
			pos := make(map[uint]int, len(page))
			for i, id := range page {
				pos[id] = i
			}
			sort.Slice(students, func(i, j int) bool { return pos[students[i].ID] < pos[students[j].ID] })
		}
		infos = all
	}

	items := make([]studentDTO.StudentItem, 0, len(students))
	for _, s := range students {
		items = append(items, studentDTO.StudentItem{Student: s, StudentPaymentInfo: infos[s.ID]})
	}

	return helper.JsonListEx(c, items, helper.BuildMeta(total, paging), fiber.Map{
		"filters": fiber.Map{
			"grades":           constants.Grades,
			"payment_statuses": studentDTO.PaymentStatuses,
			"applied": fiber.Map{
				"search":         q.Search,
				"grade":          q.Grade,
				"status":         q.Status,
				"payment_status": q.PaymentStatus,
			},
		},
	})
}

/*
=========================================================

	CREATE
	POST /api/students
	=========================================================
*/
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req studentDTO.CreateStudentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}

	joined, _ := dbtime.ParseDate(req.JoinedDate, time.UTC)
	bag := helper.FieldErrorBag{}
	if err := h.checkPhone(bag, req.Phone, 0); err != nil {
		return err
	}
	if err := checkSubjects(h.DB, bag, req.SubjectIDs); err != nil {
		return err
	}
	if err := bag.Err(); err != nil {
		return err
	}

	student := req.ToModel(joined)
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&student).Error; err != nil {
			return err
		}
		_, _, err := association.Sync(tx, association.StudentSubjects, student.ID, req.SubjectIDs)
		return err
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return apperr.Field("phone", "phone has already been taken")
		}
		return apperr.Internal(apperr.CodeCreate, "Failed to create student", err)
	}

	if err := h.DB.Preload("Subjects", orderByID).First(&student, student.ID).Error; err != nil {
		return apperr.Internal(apperr.CodeCreate, "Failed to create student", err)
	}
	return helper.JsonCreated(c, "Student created successfully", student)
}

/*
=========================================================

	SHOW
	GET /api/students/:id
	=========================================================
*/
func (h *StudentController) Show(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "student")
	if err != nil {
		return err
	}
	var student models.Student
	err = helper.FindOr404(h.DB.
		Preload("Subjects", orderByID).
		Preload("Classes", orderByID).
		Preload("Classes.Subject").
		Preload("Classes.Teacher").
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date DESC, id DESC") }),
		&student, id, "student")
	if err != nil {
		return err
	}

	month := aggregate.MonthOf(h.Clock.Now())
	infos, err := studentService.PaymentInfo(h.DB, []uint{id}, month)
	if err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to load student", err)
	}
	monthly := make([]models.Payment, 0)
	for _, p := range student.Payments {
		if p.PaymentMonth == month.Month && p.PaymentYear == month.Year {
			monthly = append(monthly, p)
		}
	}

	return helper.JsonOK(c, studentDTO.StudentDetail{
		Student:            student,
		StudentPaymentInfo: infos[id],
		MonthlyPayments:    monthly,
	})
}

/*
=========================================================

	UPDATE
	PUT|PATCH /api/students/:id
	=========================================================
*/
func (h *StudentController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "student")
	if err != nil {
		return err
	}
	var student models.Student
	if err := helper.FindOr404(h.DB, &student, id, "student"); err != nil {
		return err
	}

	var req studentDTO.UpdateStudentRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}

	bag := helper.FieldErrorBag{}
	var joined *time.Time
	if req.JoinedDate != nil {
		t, _ := dbtime.ParseDate(*req.JoinedDate, time.UTC)
		joined = &t
	}
	if req.Phone != nil {
		if err := h.checkPhone(bag, strings.TrimSpace(*req.Phone), id); err != nil {
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

	changes := req.Apply(&student, joined)
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if len(changes) > 0 {
			if err := tx.Model(&models.Student{ID: id}).Updates(changes).Error; err != nil {
				return err
			}
		}
		if req.SubjectIDs != nil {
			if _, _, err := association.Sync(tx, association.StudentSubjects, id, *req.SubjectIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return apperr.Field("phone", "phone has already been taken")
		}
		return apperr.Internal(apperr.CodeUpdate, "Failed to update student", err)
	}

	if err := h.DB.Preload("Subjects", orderByID).First(&student, id).Error; err != nil {
		return apperr.Internal(apperr.CodeUpdate, "Failed to update student", err)
	}
	return helper.JsonUpdated(c, "Student updated successfully", student)
}

/*
=========================================================

	DELETE
	DELETE /api/students/:id
	Detaches subjects and classes and removes payments in one transaction.
	=========================================================
*/
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "id", "student")
	if err != nil {
		return err
	}
	var student models.Student
	if err := helper.FindOr404(h.DB, &student, id, "student"); err != nil {
		return err
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := association.DetachAll(tx, association.StudentSubjects, id); err != nil {
			return err
		}
		if err := association.DetachAll(tx, association.StudentClasses, id); err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Student{}, id).Error
	})
	if err != nil {
		return apperr.Internal(apperr.CodeDelete, "Failed to delete student", err)
	}
	return helper.JsonMessage(c, "Student deleted successfully")
}

/* ===================== helpers ===================== */

func (h *StudentController) checkPhone(bag helper.FieldErrorBag, phone string, exceptID uint) error {
	if phone == "" {
		return nil
	}
	q := h.DB.Model(&models.Student{}).Where("phone = ?", phone)
	if exceptID > 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return apperr.Internal(apperr.CodeServer, "Failed to validate student", err)
	}
	if n > 0 {
		bag.Add("phone", "phone has already been taken")
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

func orderByID(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }

func studentIDs(students []models.Student) []uint {
	ids := make([]uint, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids
}

func window(ids []uint, offset, limit int) []uint {
	if offset >= len(ids) {
		return nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end]
}
