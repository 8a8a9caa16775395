package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("file exceeds upload limit")
	ErrEmpty    = errors.New("file is empty")
)

// Image describes a validated upload
type Image struct {
	ContentType string
	Extension   string
}

// DetectImage sniffs data and accepts only image/* content up to maxBytes
func DetectImage(data []byte, maxBytes int64) (Image, error) {
	if len(data) == 0 {
		return Image{}, ErrEmpty
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return Image{}, fmt.Errorf("%w: %d bytes", ErrTooLarge, maxBytes)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Image{}, fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}

	ct := mt.String()
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return Image{ContentType: ct, Extension: mt.Extension()}, nil
}

// PhotoName is the object name for a resource photo, e.g. photo_<id>.jpg
func PhotoName(id string, img Image) string {
	return "photo_" + id + img.Extension
}
