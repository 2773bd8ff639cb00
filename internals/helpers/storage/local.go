package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStorage writes under Root and serves from BaseURL (see the /uploads static route).
type LocalStorage struct {
	Root    string
	BaseURL string
}

func NewLocalStorage(root, baseURL string) *LocalStorage {
	return &LocalStorage{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (l *LocalStorage) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	dst := filepath.Join(l.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.Wrap(err, "local storage: mkdir")
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "local storage: write %s", key)
	}
	return l.BaseURL + "/" + key, nil
}

func (l *LocalStorage) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.Root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "local storage: delete %s", key)
	}
	return nil
}
