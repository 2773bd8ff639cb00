package controller_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/helpers/spreadsheet"
	"nojom_backend/internals/models"
	"nojom_backend/internals/testutil"
	"nojom_backend/internals/testutil/apptest"
)

func march(p *models.Payment) {
	p.PaymentMonth = 3
	p.PaymentYear = 2024
}

func forSubject(id uint) func(*models.Payment) {
	return func(p *models.Payment) { p.SubjectID = &id }
}

func TestListStudentsPaymentStatus(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	subjects := make([]uint, 4)
	for i := range subjects {
		subjects[i] = testutil.Subject(t, db).ID
	}
	class := testutil.Class(t, db, func(c *models.ClassModel) { c.SubjectID = subjects[0] })

	unpaid := testutil.Student(t, db)
	testutil.AttachSubjects(t, db, unpaid.ID, subjects...)

	partial := testutil.Student(t, db)
	testutil.AttachSubjects(t, db, partial.ID, subjects[0], subjects[1])
	testutil.Payment(t, db, partial.ID, class.ID, march, forSubject(subjects[0]))

	paid := testutil.Student(t, db)
	testutil.AttachSubjects(t, db, paid.ID, subjects[0])
	testutil.Enroll(t, db, class.ID, paid.ID)
	// resolves to subjects[0] through the class
	testutil.Payment(t, db, paid.ID, class.ID, march)

	// pending and other-month payments do not count
	testutil.Payment(t, db, unpaid.ID, class.ID, march, forSubject(subjects[1]),
		func(p *models.Payment) { p.Status = models.PaymentStatusPending })
	testutil.Payment(t, db, unpaid.ID, class.ID, forSubject(subjects[2]))

	res := apptest.Do(t, app, http.MethodGet, "/api/students?per_page=50", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	byID := map[float64]map[string]any{}
	for _, it := range res.List() {
		m := it.(map[string]any)
		byID[m["id"].(float64)] = m
	}
	require.Len(t, byID, 3)

	tests := []struct {
		name       string
		id         uint
		wantStatus string
		wantTotal  float64
		wantPaid   float64
	}{
		{"four subjects no payments", unpaid.ID, "unpaid", 4, 0},
		{"one of two paid", partial.ID, "partial", 2, 1},
		{"paid through class subject", paid.ID, "paid", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := byID[float64(tt.id)]
			require.NotNil(t, m)
			assert.Equal(t, tt.wantStatus, m["payment_status"])
			assert.Equal(t, tt.wantTotal, m["total_subjects"])
			assert.Equal(t, tt.wantPaid, m["paid_subjects"])
			assert.Equal(t, tt.wantTotal-tt.wantPaid, m["unpaid_subjects"])
		})
	}

	assert.Contains(t, res.Body, "filters")
}

func TestListStudentsFilterByPaymentStatus(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	subject := testutil.Subject(t, db)
	class := testutil.Class(t, db, func(c *models.ClassModel) { c.SubjectID = subject.ID })

	var unpaidIDs []uint
	for i := 0; i < 3; i++ {
		s := testutil.Student(t, db)
		testutil.AttachSubjects(t, db, s.ID, subject.ID)
		unpaidIDs = append(unpaidIDs, s.ID)
	}
	paid := testutil.Student(t, db)
	testutil.AttachSubjects(t, db, paid.ID, subject.ID)
	testutil.Payment(t, db, paid.ID, class.ID, march, forSubject(subject.ID))

	res := apptest.Do(t, app, http.MethodGet, "/api/students?payment_status=unpaid&per_page=2&sort=first_name", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	items := res.List()
	require.Len(t, items, 2)
	assert.Equal(t, float64(unpaidIDs[0]), items[0].(map[string]any)["id"])
	assert.Equal(t, float64(unpaidIDs[1]), items[1].(map[string]any)["id"])
	meta := res.Body["meta"].(map[string]any)
	assert.Equal(t, float64(3), meta["total"])

	res = apptest.Do(t, app, http.MethodGet, "/api/students?payment_status=paid", nil, token)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.List(), 1)
	assert.Equal(t, float64(paid.ID), res.List()[0].(map[string]any)["id"])

	res = apptest.Do(t, app, http.MethodGet, "/api/students?payment_status=bogus", nil, token)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
}

func TestCreateStudent(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	s1 := testutil.Subject(t, db)
	s2 := testutil.Subject(t, db)
	existing := testutil.Student(t, db)

	valid := func() map[string]any {
		return map[string]any{
			"first_name":  "  Sara ",
			"last_name":   "Ali",
			"phone":       "+966500000001",
			"grade":       "11",
			"joined_date": "2024-02-01",
			"subject_ids": []uint{s1.ID, s2.ID},
		}
	}

	res := apptest.Do(t, app, http.MethodPost, "/api/students", valid(), token)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	data := res.Data()
	assert.Equal(t, "Sara", data["first_name"])
	assert.Len(t, data["subjects"], 2)

	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{"blank first name", func(b map[string]any) { b["first_name"] = "   " }, "first_name"},
		{"blank last name", func(b map[string]any) { b["last_name"] = "\t " }, "last_name"},
		{"grade out of range", func(b map[string]any) { b["grade"] = "13" }, "grade"},
		{"missing phone", func(b map[string]any) { delete(b, "phone") }, "phone"},
		{"duplicate phone", func(b map[string]any) { b["phone"] = existing.Phone }, "phone"},
		{"unknown subject", func(b map[string]any) { b["subject_ids"] = []uint{9999} }, "subject_ids"},
		{"bad joined date", func(b map[string]any) { b["joined_date"] = "01/02/2024" }, "joined_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := valid()
			body["phone"] = "+966511111111"
			tt.mutate(body)
			res := apptest.Do(t, app, http.MethodPost, "/api/students", body, token)
			assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
			assert.Equal(t, "VALIDATION_ERROR", res.ErrorCode())
			details := res.Body["error"].(map[string]any)["details"].(map[string]any)
			assert.Contains(t, details, tt.field)
		})
	}
}

func TestUpdateStudentSyncsSubjects(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	s1 := testutil.Subject(t, db)
	s2 := testutil.Subject(t, db)
	student := testutil.Student(t, db)
	testutil.AttachSubjects(t, db, student.ID, s1.ID)

	res := apptest.Do(t, app, http.MethodPatch, fmt.Sprintf("/api/students/%d", student.ID),
		map[string]any{"subject_ids": []uint{s2.ID}, "notes": "moved"}, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	var ids []uint
	require.NoError(t, db.Model(&models.StudentSubject{}).Where("student_id = ?", student.ID).Pluck("subject_id", &ids).Error)
	assert.Equal(t, []uint{s2.ID}, ids)

	var got models.Student
	require.NoError(t, db.First(&got, student.ID).Error)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "moved", *got.Notes)
	assert.Equal(t, student.Phone, got.Phone)
}

func TestUpdateStudentRejectsBlankNames(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	student := testutil.Student(t, db)
	path := fmt.Sprintf("/api/students/%d", student.ID)

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"blank first name", map[string]any{"first_name": "   "}, "first_name"},
		{"blank last name", map[string]any{"last_name": " "}, "last_name"},
		{"blank phone", map[string]any{"phone": "  "}, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := apptest.Do(t, app, http.MethodPatch, path, tt.body, token)
			assert.Equal(t, http.StatusUnprocessableEntity, res.Status, string(res.Raw))
			details := res.Body["error"].(map[string]any)["details"].(map[string]any)
			assert.Contains(t, details, tt.field)
		})
	}

	res := apptest.Do(t, app, http.MethodPut, path, map[string]any{"first_name": " Maha  "}, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	var got models.Student
	require.NoError(t, db.First(&got, student.ID).Error)
	assert.Equal(t, "Maha", got.FirstName)
	assert.Equal(t, student.LastName, got.LastName)
}

func TestDeleteStudentCascades(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	class := testutil.Class(t, db)
	student := testutil.Student(t, db)
	other := testutil.Student(t, db)
	testutil.AttachSubjects(t, db, student.ID, class.SubjectID)
	testutil.Enroll(t, db, class.ID, student.ID, other.ID)
	testutil.Payment(t, db, student.ID, class.ID)
	testutil.Payment(t, db, other.ID, class.ID)

	res := apptest.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/students/%d", student.ID), nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	count := func(model any, where string, args ...any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Where(where, args...).Count(&n).Error)
		return n
	}
	assert.Zero(t, count(&models.Student{}, "id = ?", student.ID))
	assert.Zero(t, count(&models.StudentSubject{}, "student_id = ?", student.ID))
	assert.Zero(t, count(&models.ClassStudent{}, "student_id = ?", student.ID))
	assert.Zero(t, count(&models.Payment{}, "student_id = ?", student.ID))
	assert.Equal(t, int64(1), count(&models.Payment{}, "student_id = ?", other.ID))
	assert.Equal(t, int64(1), count(&models.ClassStudent{}, "student_id = ?", other.ID))

	res = apptest.Do(t, app, http.MethodGet, fmt.Sprintf("/api/students/%d", student.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "STUDENT_NOT_FOUND", res.ErrorCode())
}

func TestShowStudentMonthlyPayments(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	class := testutil.Class(t, db)
	student := testutil.Student(t, db)
	testutil.AttachSubjects(t, db, student.ID, class.SubjectID)
	testutil.Payment(t, db, student.ID, class.ID, march)
	testutil.Payment(t, db, student.ID, class.ID)

	res := apptest.Do(t, app, http.MethodGet, fmt.Sprintf("/api/students/%d", student.ID), nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	data := res.Data()
	assert.Len(t, data["payments"], 2)
	assert.Len(t, data["monthly_payments"], 1)
	assert.Equal(t, "paid", data["payment_status"])
}

func TestImportStudents(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	book, err := spreadsheet.Write([]spreadsheet.Sheet{{
		Name:   "Students",
		Header: []string{"first_name", "last_name", "phone", "grade", "joined_date"},
		Rows: [][]any{
			{"Omar", "Hassan", "+966500000010", "9", "2024-01-05"},
			{"Lina", "Saad", "+966500000011", "14", "2024-01-05"},
			{"Noor", "Adel", "+966500000010", "10", "2024-01-06"},
		},
	}})
	require.NoError(t, err)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "students.xlsx")
	require.NoError(t, err)
	_, err = part.Write(book)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	res := apptest.DoRaw(t, app, http.MethodPost, "/api/students/import", w.FormDataContentType(), body.Bytes(), token)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))

	data := res.Data()
	assert.Equal(t, float64(1), data["imported"])
	assert.Equal(t, float64(2), data["failed"])
	rows := data["errors"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, float64(3), rows[0].(map[string]any)["row"])
	assert.Equal(t, float64(4), rows[1].(map[string]any)["row"])

	var n int64
	require.NoError(t, db.Model(&models.Student{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
