package panorama

import (
	"time"

	"github.com/google/uuid"
)

// Panorama is the metadata record kept for each uploaded image. Fields other
// than IsBookmarked/UpdatedAt are immutable after creation.
type Panorama struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	SizeBytes    int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	PreviewURL   string    `json:"previewUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	IsBookmarked bool      `json:"isBookmarked"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Filter narrows and paginates catalogue queries.
type Filter struct {
	// Search matches name case-insensitively as a substring.
	Search string
	// IsBookmarked filters by bookmark state when non-nil.
	IsBookmarked *bool
	Limit        int
	Offset       int
}

// Page is one page of results plus the total count before pagination.
type Page struct {
	Items []Panorama `json:"items"`
	Total int        `json:"total"`
}

// Stats summarizes the catalogue, computed at call time.
type Stats struct {
	Total        int `json:"total"`
	Bookmarked   int `json:"bookmarked"`
	Unbookmarked int `json:"unbookmarked"`
}
