// Package apptest drives the full HTTP API in handler tests.
package apptest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"nojom_backend/internals/configs"
	authService "nojom_backend/internals/features/users/auth/service"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/helpers/storage"
	"nojom_backend/internals/middlewares/logger"
	"nojom_backend/internals/models"
	routes "nojom_backend/internals/route"
)

const testSecret = "test-secret-0123456789"

var userSeq atomic.Int64

// NewApp wires the full API on db with the given clock and a temp-dir storage.
func NewApp(t testing.TB, db *gorm.DB, clk clock.Clock) *fiber.App {
	t.Helper()
	if configs.JWTSecret == "" {
		configs.JWTSecret = testSecret
		configs.JWTRefreshSecret = testSecret + "-refresh"
	}
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: helper.ErrorHandler,
	})
	app.Use(logger.RequestID())

	dir := t.TempDir()
	routes.SetupRoutes(app, db, routes.Options{
		Clock:     clk,
		Storage:   storage.NewLocalStorage(dir, "http://test.local/uploads"),
		UploadDir: dir,
	})
	return app
}

// Token creates a user and returns a valid access token for it.
func Token(t testing.TB, db *gorm.DB) string {
	t.Helper()
	n := userSeq.Add(1)
	u := models.User{
		Name:     "Admin",
		Email:    fmt.Sprintf("admin%d@example.com", n),
		Password: "x",
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	pair, err := authService.IssuePair(u, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return pair.AccessToken
}

// Response is a decoded JSON reply.
type Response struct {
	Status int
	Header http.Header
	Raw    []byte
	Body   map[string]any
}

// Data returns body["data"] as an object.
func (r Response) Data() map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

// List returns body["data"] as an array.
func (r Response) List() []any {
	l, _ := r.Body["data"].([]any)
	return l
}

// ErrorCode returns body["error"]["code"].
func (r Response) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

// Do sends a JSON request; body may be nil. token may be empty.
func Do(t testing.TB, app *fiber.App, method, path string, body any, token string) Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return send(t, app, req, token)
}

// DoRaw sends a prepared body with its content type, e.g. multipart.
func DoRaw(t testing.TB, app *fiber.App, method, path, contentType string, body []byte, token string) Response {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, contentType)
	return send(t, app, req, token)
}

func send(t testing.TB, app *fiber.App, req *http.Request, token string) Response {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	out := Response{Status: resp.StatusCode, Header: resp.Header, Raw: raw}
	if len(raw) > 0 && raw[0] == '{' {
		_ = sonic.Unmarshal(raw, &out.Body)
	}
	return out
}
