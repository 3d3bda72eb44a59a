// Package thumbnail produces the derived preview asset for uploaded
// panoramas: a JPEG no wider than 200px, re-encoded at quality 80.
package thumbnail

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	// TargetWidth is the thumbnail width; smaller sources are never upscaled.
	TargetWidth = 200
	jpegQuality = 80
)

// Derive decodes src, resizes it to TargetWidth preserving aspect ratio and
// re-encodes it as JPEG. Output is deterministic for identical input.
func Derive(src []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > TargetWidth {
		img = imaging.Resize(img, TargetWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
