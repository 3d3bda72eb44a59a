package thumbnail

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDeriveResizesWideImages(t *testing.T) {
	src := encodePNG(t, 800, 400)

	out, err := Derive(src)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}

	thumb, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("thumbnail is not a valid JPEG: %v", err)
	}
	if got := thumb.Bounds().Dx(); got != TargetWidth {
		t.Fatalf("expected width %d, got %d", TargetWidth, got)
	}
	if got := thumb.Bounds().Dy(); got != 100 {
		t.Fatalf("expected proportional height 100, got %d", got)
	}
}

func TestDeriveDoesNotUpscaleSmallImages(t *testing.T) {
	src := encodePNG(t, 10, 10)

	out, err := Derive(src)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}

	thumb, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("thumbnail is not a valid JPEG: %v", err)
	}
	if got := thumb.Bounds().Dx(); got > 10 {
		t.Fatalf("small source was upscaled to width %d", got)
	}
}

func TestDeriveAlwaysEmitsJPEG(t *testing.T) {
	src := encodePNG(t, 300, 150)

	out, err := Derive(src)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("PNG source did not re-encode to JPEG: %v", err)
	}
}

func TestDeriveRejectsCorruptInput(t *testing.T) {
	if _, err := Derive([]byte("not an image at all")); err == nil {
		t.Fatalf("expected decode error for corrupt input")
	}
}
