package imagex

import (
	"bytes"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

const ContentTypeWebP = "image/webp"

// PhotoOptions control student photo normalisation.
type PhotoOptions struct {
	MaxWidth int
	Quality  float32
}

// NormalizePhoto decodes jpeg/png/gif/webp, applies EXIF orientation, shrinks to
// MaxWidth keeping the aspect ratio and re-encodes as lossy WebP.
func NormalizePhoto(data []byte, opt PhotoOptions) ([]byte, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	if opt.MaxWidth > 0 && img.Bounds().Dx() > opt.MaxWidth {
		img = imaging.Resize(img, opt.MaxWidth, 0, imaging.Lanczos)
	}
	q := opt.Quality
	if q <= 0 || q > 100 {
		q = 80
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, errors.Wrap(err, "encode webp")
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if strings.Contains(http.DetectContentType(head), "webp") {
		img, err := webp.Decode(bytes.NewReader(data))
		return img, errors.Wrap(err, "decode webp")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return img, nil
}

// WebPName swaps the extension of name for .webp.
func WebPName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
}
