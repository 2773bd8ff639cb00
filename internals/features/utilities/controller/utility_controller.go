package controller

import (
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"nojom_backend/internals/configs"
	"nojom_backend/internals/constants"
	helper "nojom_backend/internals/helpers"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/imagex"
	"nojom_backend/internals/helpers/storage"
)

type UtilityController struct {
	Storage storage.Storage
}

func NewUtilityController(s storage.Storage) *UtilityController {
	return &UtilityController{Storage: s}
}

type option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// GET /api/utilities/grades
func (h *UtilityController) Grades(c *fiber.Ctx) error {
	out := make([]option, 0, len(constants.Grades))
	for _, g := range constants.Grades {
		out = append(out, option{Value: g, Label: "Grade " + g})
	}
	return helper.JsonOK(c, out)
}

// GET /api/utilities/payment-methods
func (h *UtilityController) PaymentMethods(c *fiber.Ctx) error {
	out := make([]option, 0, len(constants.PaymentMethods))
	for _, m := range constants.PaymentMethods {
		out = append(out, option{Value: m, Label: constants.PaymentMethodLabel(m)})
	}
	return helper.JsonOK(c, out)
}

// GET /api/utilities/week-days
func (h *UtilityController) WeekDays(c *fiber.Ctx) error {
	return helper.JsonOK(c, constants.WeekDays)
}

type uploadResult struct {
	FileURL  string `json:"file_url"`
	FileName string `json:"file_name"`
	FileSize int    `json:"file_size"`
}

// POST /api/utilities/upload (multipart "file", "type")
func (h *UtilityController) Upload(c *fiber.Ctx) error {
	bag := helper.FieldErrorBag{}
	kind := c.FormValue("type")
	if kind == "" {
		bag.Add("type", "type is required")
	} else if !constants.IsUploadType(kind) {
		bag.Add("type", "type must be one of student_photo, document, other")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		bag.Add("file", "file is required")
	} else if max := int64(configs.App.Upload.MaxSizeMB) << 20; fh.Size > max {
		bag.Add("file", fmt.Sprintf("file may not be greater than %d MB", configs.App.Upload.MaxSizeMB))
	}
	if err := bag.Err(); err != nil {
		return err
	}
	if !constants.UploadAccepts(kind, fh.Filename) {
		return apperr.Field("file", "file type is not allowed for "+kind)
	}

	f, err := fh.Open()
	if err != nil {
		return apperr.Internal(apperr.CodeUpload, "Failed to upload file", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return apperr.Internal(apperr.CodeUpload, "Failed to upload file", err)
	}

	name := path.Base(fh.Filename)
	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if kind == constants.UploadStudentPhoto {
		data, err = imagex.NormalizePhoto(data, imagex.PhotoOptions{
			MaxWidth: configs.App.Upload.PhotoMaxWidth,
			Quality:  float32(configs.App.Upload.PhotoQuality),
		})
		if err != nil {
			return apperr.Field("file", "file is not a readable image")
		}
		name = imagex.WebPName(name)
		contentType = imagex.ContentTypeWebP
	}

	key := storage.GenerateUniqueKey(kind, name)
	url, err := h.Storage.Put(c.UserContext(), key, contentType, data)
	if err != nil {
		return apperr.Internal(apperr.CodeUpload, "Failed to upload file", err)
	}
	log.Info().Str("key", key).Int("size", len(data)).Msg("file uploaded")

	return helper.JsonCreated(c, "File uploaded successfully", uploadResult{
		FileURL:  url,
		FileName: path.Base(key),
		FileSize: len(data),
	})
}
