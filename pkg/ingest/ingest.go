// Package ingest turns user-supplied image bytes into decoded images
// ready for preprocessing.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxBytes caps uploads at 10 MiB
const DefaultMaxBytes = 10 << 20

var (
	// ErrFileTooLarge is returned when the input exceeds the configured size cap
	ErrFileTooLarge = errors.New("image exceeds maximum upload size")

	// ErrDecode is returned when the input is not a decodable image
	ErrDecode = errors.New("failed to decode image")
)

// Ingestor decodes raw upload bytes into in-memory images. It holds no
// shared state; a decode failure cannot corrupt anything downstream.
type Ingestor struct {
	maxBytes int64
}

// New creates an Ingestor with the default 10 MiB size cap
func New() *Ingestor {
	return &Ingestor{maxBytes: DefaultMaxBytes}
}

// NewWithLimit creates an Ingestor with a custom size cap in bytes
func NewWithLimit(maxBytes int64) *Ingestor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Ingestor{maxBytes: maxBytes}
}

// MaxBytes returns the configured size cap
func (in *Ingestor) MaxBytes() int64 {
	return in.maxBytes
}

// Ingest validates and decodes raw image bytes. The size check runs before
// any decode attempt, so an oversized file never reaches a codec.
func (in *Ingestor) Ingest(data []byte) (image.Image, error) {
	if int64(len(data)) > in.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(data), in.maxBytes)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	// Lossless and extended WebP are not covered by the registered
	// decoders; try the full codec before giving up.
	if img, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
		return img, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrDecode, err)
}
