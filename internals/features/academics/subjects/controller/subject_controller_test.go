package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/models"
	"nojom_backend/internals/testutil"
	"nojom_backend/internals/testutil/apptest"
)

func TestDeleteSubjectInUse(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	subject := testutil.Subject(t, db)
	testutil.Class(t, db, func(c *models.ClassModel) { c.SubjectID = subject.ID })

	res := apptest.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/subjects/%d", subject.ID), nil, token)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
	assert.Equal(t, "SUBJECT_IN_USE", res.ErrorCode())

	var n int64
	require.NoError(t, db.Model(&models.Subject{}).Where("id = ?", subject.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestDeleteSubjectDetachesLinks(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	subject := testutil.Subject(t, db)
	student := testutil.Student(t, db)
	testutil.AttachSubjects(t, db, student.ID, subject.ID)

	res := apptest.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/subjects/%d", subject.ID), nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))

	var links int64
	require.NoError(t, db.Model(&models.StudentSubject{}).Where("subject_id = ?", subject.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestCreateSubjectUniqueCode(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	body := map[string]any{
		"name_en":        "Mathematics",
		"name_ar":        "الرياضيات",
		"code":           "math-10",
		"grade_level":    "10",
		"hours_per_week": 4,
		"price_per_hour": 50,
		"fee_amount":     200,
		"status":         "active",
	}
	res := apptest.Do(t, app, http.MethodPost, "/api/subjects", body, token)
	require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "MATH-10", res.Data()["code"])

	res = apptest.Do(t, app, http.MethodPost, "/api/subjects", body, token)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
	assert.Equal(t, "VALIDATION_ERROR", res.ErrorCode())
}

func TestSubjectBlankNamesRejected(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	res := apptest.Do(t, app, http.MethodPost, "/api/subjects", map[string]any{
		"name_en":        "   ",
		"name_ar":        "الفيزياء",
		"code":           " ",
		"grade_level":    "11",
		"hours_per_week": 3,
		"price_per_hour": 40,
		"status":         "active",
	}, token)
	require.Equal(t, http.StatusUnprocessableEntity, res.Status, string(res.Raw))
	details := res.Body["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "name_en")
	assert.Contains(t, details, "code")

	subject := testutil.Subject(t, db)
	res = apptest.Do(t, app, http.MethodPatch, fmt.Sprintf("/api/subjects/%d", subject.ID),
		map[string]any{"name_ar": "  "}, token)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
	details = res.Body["error"].(map[string]any)["details"].(map[string]any)
	assert.Contains(t, details, "name_ar")
}

func TestSubjectsByGrade(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	testutil.Subject(t, db, func(s *models.Subject) { s.GradeLevel = "9"; s.NameEn = "Zoology" })
	testutil.Subject(t, db, func(s *models.Subject) { s.GradeLevel = "9"; s.NameEn = "Algebra" })
	testutil.Subject(t, db, func(s *models.Subject) { s.GradeLevel = "9"; s.Status = models.SubjectStatusInactive })
	testutil.Subject(t, db, func(s *models.Subject) { s.GradeLevel = "11" })

	res := apptest.Do(t, app, http.MethodGet, "/api/subjects/grade/9", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	require.Len(t, res.List(), 2)
	assert.Equal(t, "Algebra", res.List()[0].(map[string]any)["name_en"])

	res = apptest.Do(t, app, http.MethodGet, "/api/subjects/grade/5", nil, token)
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
}

func TestSubjectStatistics(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	subject := testutil.Subject(t, db)
	testutil.Class(t, db, func(c *models.ClassModel) { c.SubjectID = subject.ID })
	testutil.Class(t, db, func(c *models.ClassModel) {
		c.SubjectID = subject.ID
		c.Status = models.ClassStatusCompleted
	})
	testutil.AttachSubjects(t, db, testutil.Student(t, db).ID, subject.ID)
	require.NoError(t, db.Create(&models.TeacherSubject{TeacherID: testutil.Teacher(t, db).ID, SubjectID: subject.ID}).Error)

	res := apptest.Do(t, app, http.MethodGet, fmt.Sprintf("/api/subjects/%d/statistics", subject.ID), nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	stats := res.Data()["statistics"].(map[string]any)
	assert.EqualValues(t, 2, stats["total_classes"])
	assert.EqualValues(t, 1, stats["active_classes"])
	assert.EqualValues(t, 1, stats["total_teachers"])
	assert.EqualValues(t, 1, stats["total_students"])
}
