package employee

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ImageStore persists profile images. Save returns the path recorded on the
// employee row, relative to the media root.
type ImageStore interface {
	Save(name string, data []byte) (string, error)
	Remove(path string) error
}

var allowedImageExt = map[string]struct{}{
	"jpeg": {},
	"jpg":  {},
	"png":  {},
	"gif":  {},
	"webp": {},
}

var ErrNoImageData = errors.New("no image data received")

type Image struct {
	Ext  string
	Data []byte
}

// ParseImageDataURL accepts data:image/<ext>;base64,<payload>.
func ParseImageDataURL(value string) (Image, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Image{}, ErrNoImageData
	}
	header, payload, ok := strings.Cut(value, ";base64,")
	if !ok {
		return Image{}, errors.New("malformed data url")
	}
	mime, ok := strings.CutPrefix(header, "data:")
	if !ok {
		return Image{}, errors.New("malformed data url")
	}
	kind, ext, ok := strings.Cut(mime, "/")
	if !ok || kind != "image" {
		return Image{}, fmt.Errorf("unsupported media type %q", mime)
	}
	ext = strings.ToLower(ext)
	if _, allowed := allowedImageExt[ext]; !allowed {
		return Image{}, fmt.Errorf("unsupported image type %q", ext)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("decode image: %w", err)
	}
	if len(data) == 0 {
		return Image{}, ErrNoImageData
	}
	return Image{Ext: ext, Data: data}, nil
}
