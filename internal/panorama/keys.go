package panorama

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

const objectPrefix = "uploads/"

// newStorageKey generates a collision-resistant storage key carrying the
// original file's extension, e.g. "panorama-1717171717171-483920174.jpg".
func newStorageKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("panorama-%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
}

// thumbnailKey derives the thumbnail storage key by inserting "-thumbnail"
// before the extension.
func thumbnailKey(key string) string {
	ext := filepath.Ext(key)
	return strings.TrimSuffix(key, ext) + "-thumbnail" + ext
}

// stripThumbnailSuffix maps a requested thumbnail key back to the record's
// storage key.
func stripThumbnailSuffix(key string) string {
	return strings.Replace(key, "-thumbnail", "", 1)
}

// objectPath places a storage key under the uploads namespace.
func objectPath(key string) string {
	return objectPrefix + key
}
