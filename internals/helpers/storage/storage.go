package storage

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"nojom_backend/internals/configs"
)

// Storage persists uploaded files and returns their public URL.
type Storage interface {
	Put(ctx context.Context, key, contentType string, data []byte) (publicURL string, err error)
	Delete(ctx context.Context, key string) error
}

// FromEnv picks the driver from STORAGE_DRIVER (local|s3).
func FromEnv() (Storage, error) {
	switch strings.ToLower(configs.GetEnv("STORAGE_DRIVER", "local")) {
	case "s3":
		s, err := NewS3StorageFromEnv()
		if err != nil {
			return nil, errors.Wrap(err, "storage: s3")
		}
		return s, nil
	case "local", "":
		return NewLocalStorage(
			configs.GetEnv("UPLOAD_DIR", "./storage/uploads"),
			configs.GetEnv("PUBLIC_BASE_URL", "http://localhost:8080")+"/uploads",
		), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", configs.GetEnv("STORAGE_DRIVER"))
	}
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeName.ReplaceAllString(path.Base(filename), "_")
}

// GenerateUniqueKey builds folder/YYYYMMDD-uuid-name.
func GenerateUniqueKey(folder, originalFilename string) string {
	stamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", strings.Trim(folder, "/"), stamp, uuid.New().String(), sanitizeFilename(originalFilename))
}
