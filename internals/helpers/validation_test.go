package helper

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nojom_backend/internals/helpers/apperr"
)

type sample struct {
	Grade   string   `json:"grade" validate:"required,grade"`
	Start   string   `json:"start_time" validate:"required,hhmm"`
	Days    []string `json:"schedule_days" validate:"required,min=1,dive,weekday"`
	Method  string   `json:"payment_method" validate:"omitempty,payment_method"`
	Comment string   `query:"comment" validate:"max=5"`
}

func details(t *testing.T, err error) map[string][]string {
	t.Helper()
	ae, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %v", err)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	d, ok := ae.Details.(map[string][]string)
	require.True(t, ok)
	return d
}

func TestValidateStructCustomTags(t *testing.T) {
	ok := sample{Grade: "12", Start: "09:30", Days: []string{"monday"}, Method: "cash"}
	require.NoError(t, ValidateStruct(&ok))

	bad := sample{Grade: "6", Start: "24:00", Days: []string{"monday", "funday"}, Method: "card", Comment: "too long"}
	d := details(t, ValidateStruct(&bad))
	assert.Contains(t, d, "grade")
	assert.Contains(t, d, "start_time")
	assert.Contains(t, d, "schedule_days[1]")
	assert.NotContains(t, d, "schedule_days[0]")
	assert.Contains(t, d, "payment_method")
	assert.Contains(t, d, "comment")
	assert.Equal(t, []string{"grade must be one of 7, 8, 9, 10, 11, 12"}, d["grade"])
}

func TestFieldErrorBag(t *testing.T) {
	bag := FieldErrorBag{}
	assert.NoError(t, bag.Err())

	bag.Add("phone", "phone has already been taken")
	require.NoError(t, bag.Merge(ValidateStruct(&sample{Grade: "12", Start: "10:00"})))
	require.NoError(t, bag.Merge(nil))

	other := errors.New("boom")
	assert.Equal(t, other, bag.Merge(other))

	d := details(t, bag.Err())
	assert.Equal(t, []string{"phone has already been taken"}, d["phone"])
	assert.Contains(t, d, "schedule_days")
}

func TestPatchField(t *testing.T) {
	var body struct {
		Notes   PatchField[string] `json:"notes"`
		Address PatchField[string] `json:"address"`
		Subject PatchField[uint]   `json:"subject_id"`
	}
	require.NoError(t, sonic.Unmarshal([]byte(`{"notes":null,"subject_id":4}`), &body))

	v, present := body.Notes.Get()
	assert.True(t, present)
	assert.Nil(t, v)

	_, present = body.Address.Get()
	assert.False(t, present)

	id, present := body.Subject.Get()
	require.True(t, present)
	assert.Equal(t, uint(4), *id)
}

func TestTrimmedOrNil(t *testing.T) {
	blank := "   "
	word := "  hi "
	assert.Nil(t, TrimmedOrNil(nil))
	assert.Nil(t, TrimmedOrNil(&blank))
	assert.Equal(t, "hi", *TrimmedOrNil(&word))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: students.phone")))
	assert.True(t, IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "uq"`)))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}

type trimmedBody struct {
	Name  string `json:"name" validate:"required,max=10"`
	Email string `json:"email" validate:"required,email"`
}

func (b *trimmedBody) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.ToLower(strings.TrimSpace(b.Email))
}

func TestParseBodyNormalizesBeforeValidating(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
		want   trimmedBody
	}{
		{"padded values pass", `{"name":"  Sara ","email":" Sara@Example.COM "}`, nil, trimmedBody{Name: "Sara", Email: "sara@example.com"}},
		{"blank name fails required", `{"name":"   ","email":"a@b.co"}`, []string{"name"}, trimmedBody{}},
		{"padding does not count toward max", `{"name":"   abcdefghij   ","email":"a@b.co"}`, nil, trimmedBody{Name: "abcdefghij", Email: "a@b.co"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			var got trimmedBody
			app.Post("/", func(c *fiber.Ctx) error {
				if err := ParseBody(c, &got); err != nil {
					return err
				}
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			res, err := app.Test(req)
			require.NoError(t, err)

			if len(tt.fields) == 0 {
				assert.Equal(t, fiber.StatusNoContent, res.StatusCode)
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Equal(t, fiber.StatusUnprocessableEntity, res.StatusCode)
			var env struct {
				Error struct {
					Details map[string][]string `json:"details"`
				} `json:"error"`
			}
			require.NoError(t, sonic.ConfigDefault.NewDecoder(res.Body).Decode(&env))
			for _, f := range tt.fields {
				assert.Contains(t, env.Error.Details, f)
			}
		})
	}
}
