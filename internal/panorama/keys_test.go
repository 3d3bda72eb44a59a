package panorama

import (
	"strings"
	"testing"
)

func TestNewStorageKeyCarriesExtension(t *testing.T) {
	key := newStorageKey("My Holiday Pano.JPG")
	if !strings.HasPrefix(key, "panorama-") {
		t.Fatalf("unexpected key prefix: %s", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Fatalf("expected lowercased extension, got %s", key)
	}
}

func TestNewStorageKeysDoNotCollide(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := newStorageKey("a.png")
		if seen[key] {
			t.Fatalf("duplicate storage key generated: %s", key)
		}
		seen[key] = true
	}
}

func TestThumbnailKeyRoundTrip(t *testing.T) {
	key := "panorama-1717171717171-483920174.jpg"
	thumb := thumbnailKey(key)
	if thumb != "panorama-1717171717171-483920174-thumbnail.jpg" {
		t.Fatalf("unexpected thumbnail key: %s", thumb)
	}
	if got := stripThumbnailSuffix(thumb); got != key {
		t.Fatalf("strip did not restore key: %s", got)
	}
}

func TestThumbnailKeyWithoutExtension(t *testing.T) {
	if got := thumbnailKey("panorama-1-2"); got != "panorama-1-2-thumbnail" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestObjectPathUsesUploadsNamespace(t *testing.T) {
	if got := objectPath("panorama-1-2.jpg"); got != "uploads/panorama-1-2.jpg" {
		t.Fatalf("unexpected object path: %s", got)
	}
}
