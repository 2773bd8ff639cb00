package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCtx runs fn inside a real request so query helpers see the URL.
func withCtx(t *testing.T, target string, fn func(c *fiber.Ctx)) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		fn(c)
		return nil
	})
	_, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
}

func TestResolvePaging(t *testing.T) {
	tests := []struct {
		query string
		want  Paging
	}{
		{"/", Paging{Page: 1, PerPage: 15, Offset: 0, Limit: 15}},
		{"/?page=3&per_page=10", Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}},
		{"/?page=0&per_page=-5", Paging{Page: 1, PerPage: 15, Offset: 0, Limit: 15}},
		{"/?page=2&limit=5", Paging{Page: 2, PerPage: 5, Offset: 5, Limit: 5}},
		{"/?per_page=1000", Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}},
		{"/?page=abc", Paging{Page: 1, PerPage: 15, Offset: 0, Limit: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			withCtx(t, tt.query, func(c *fiber.Ctx) {
				assert.Equal(t, tt.want, ResolvePaging(c, 0, 0))
			})
		})
	}
}

func TestBuildMeta(t *testing.T) {
	assert.Equal(t, Meta{CurrentPage: 2, LastPage: 3, PerPage: 10, Total: 25},
		BuildMeta(25, Paging{Page: 2, PerPage: 10}))
	assert.Equal(t, Meta{CurrentPage: 1, LastPage: 1, PerPage: 15, Total: 0},
		BuildMeta(0, Paging{Page: 1}))
}

func TestResolveSort(t *testing.T) {
	allowed := map[string]string{"name": "name_en", "created_at": "created_at"}
	tests := []struct {
		query string
		want  string
	}{
		{"/", "id DESC"},
		{"/?sort=name", "name_en ASC"},
		{"/?sort=-name", "name_en DESC"},
		{"/?sort_by=created_at&order=desc", "created_at DESC"},
		{"/?sort=-name&order=asc", "name_en ASC"},
		{"/?sort=password", "id DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			withCtx(t, tt.query, func(c *fiber.Ctx) {
				assert.Equal(t, tt.want, ResolveSort(c, allowed, "id DESC"))
			})
		})
	}
}

func TestILikePattern(t *testing.T) {
	assert.Equal(t, "%ahmed%", ILikePattern("  AHMED "))
}
