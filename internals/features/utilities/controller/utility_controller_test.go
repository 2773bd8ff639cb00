package controller_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nojom_backend/internals/helpers/clock"
	"nojom_backend/internals/testutil"
	"nojom_backend/internals/testutil/apptest"
)

func multipartBody(t *testing.T, kind, filename string, content []byte) (string, []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if kind != "" {
		require.NoError(t, w.WriteField("type", kind))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return w.FormDataContentType(), buf.Bytes()
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLookupLists(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	res := apptest.Do(t, app, http.MethodGet, "/api/utilities/grades", nil, token)
	require.Equal(t, http.StatusOK, res.Status, string(res.Raw))
	grades := res.Body["data"].([]any)
	require.Len(t, grades, 6)
	assert.Equal(t, map[string]any{"value": "7", "label": "Grade 7"}, grades[0])

	res = apptest.Do(t, app, http.MethodGet, "/api/utilities/payment-methods", nil, token)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.Body["data"], 4)

	res = apptest.Do(t, app, http.MethodGet, "/api/utilities/week-days", nil, token)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.Body["data"], 7)
}

func TestUpload(t *testing.T) {
	db := testutil.NewDB(t)
	app := apptest.NewApp(t, db, clock.NewFixed(2024, 3, 15))
	token := apptest.Token(t, db)

	t.Run("document keeps its bytes", func(t *testing.T) {
		content := []byte("%PDF-1.4 fake")
		ct, body := multipartBody(t, "document", "Lesson Plan.pdf", content)
		res := apptest.DoRaw(t, app, http.MethodPost, "/api/utilities/upload", ct, body, token)
		require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
		data := res.Data()
		assert.Equal(t, float64(len(content)), data["file_size"])
		assert.True(t, strings.HasPrefix(data["file_url"].(string), "http://test.local/uploads/document/"))
		assert.True(t, strings.HasSuffix(data["file_name"].(string), ".pdf"))
	})

	t.Run("student photo becomes webp", func(t *testing.T) {
		ct, body := multipartBody(t, "student_photo", "face.png", pngBytes(t, 64, 48))
		res := apptest.DoRaw(t, app, http.MethodPost, "/api/utilities/upload", ct, body, token)
		require.Equal(t, http.StatusCreated, res.Status, string(res.Raw))
		assert.True(t, strings.HasSuffix(res.Data()["file_name"].(string), ".webp"))
	})

	tests := []struct {
		name     string
		kind     string
		filename string
		content  []byte
		field    string
	}{
		{"missing type", "", "a.pdf", []byte("x"), "type"},
		{"unknown type", "avatar", "a.pdf", []byte("x"), "type"},
		{"missing file", "document", "", nil, "file"},
		{"photo must be an image", "student_photo", "notes.pdf", []byte("x"), "file"},
		{"corrupt photo", "student_photo", "broken.png", []byte("not an image"), "file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, body := multipartBody(t, tt.kind, tt.filename, tt.content)
			res := apptest.DoRaw(t, app, http.MethodPost, "/api/utilities/upload", ct, body, token)
			assert.Equal(t, http.StatusUnprocessableEntity, res.Status)
			details := res.Body["error"].(map[string]any)["details"].(map[string]any)
			assert.Contains(t, details, tt.field)
		})
	}
}
