// file: internals/helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"nojom_backend/internals/configs"
)

/* ===============================
   Paging resolver (query → page/perPage/offset)
=================================*/

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging reads ?page= and ?per_page= (or the ?limit= alias) and clamps them.
// defaultPerPage/maxPerPage <= 0 fall back to config.yaml pagination settings.
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	if defaultPerPage <= 0 {
		defaultPerPage = configs.App.Pagination.DefaultPerPage
	}
	if maxPerPage <= 0 {
		maxPerPage = configs.App.Pagination.MaxPerPage
	}

	pageStr := strings.TrimSpace(c.Query("page", "1"))

	perPageStr := strings.TrimSpace(c.Query("per_page"))
	if perPageStr == "" {
		perPageStr = strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultPerPage)))
	}

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(perPageStr)
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}
}

/* ===============================
   Meta
=================================*/

type Meta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

// BuildMeta: last_page is at least 1, even for an empty result.
func BuildMeta(total int64, p Paging) Meta {
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = configs.App.Pagination.DefaultPerPage
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return Meta{
		CurrentPage: p.Page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
}

/* ===============================
   Sorting (whitelist)
=================================*/

// ResolveSort reads ?sort=-field (or ?sort_by=&order=) and returns an ORDER BY
// fragment. Keys not present in allowed fall back to fallback.
func ResolveSort(c *fiber.Ctx, allowed map[string]string, fallback string) string {
	key := strings.TrimSpace(c.Query("sort"))
	dir := "ASC"

	if key == "" {
		key = strings.TrimSpace(c.Query("sort_by"))
	}
	if strings.HasPrefix(key, "-") {
		key = strings.TrimPrefix(key, "-")
		dir = "DESC"
	}
	if o := strings.ToLower(strings.TrimSpace(c.Query("order"))); o == "desc" {
		dir = "DESC"
	} else if o == "asc" {
		dir = "ASC"
	}

	col, ok := allowed[key]
	if !ok || key == "" {
		return fallback
	}
	return col + " " + dir
}

/* ===============================
   Query helpers
=================================*/

// ILikePattern builds a LOWER(col) LIKE pattern for case-insensitive search.
func ILikePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// QueryUint returns 0 when the query value is absent or invalid.
func QueryUint(c *fiber.Ctx, key string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(c.Query(key)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}
