package panorama

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/airgo3d/panorama-api/internal/blob"
	"github.com/airgo3d/panorama-api/internal/thumbnail"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxUploadBytes = 100 * 1024 * 1024 // 100MB
	defaultLimit          = 100
	maxLimit              = 1000
)

type metadataStore interface {
	Create(ctx context.Context, p Panorama) (Panorama, error)
	GetByID(ctx context.Context, id uuid.UUID) (Panorama, error)
	GetByFilename(ctx context.Context, filename string) (Panorama, error)
	Search(ctx context.Context, f Filter) ([]Panorama, int, error)
	Stats(ctx context.Context) (Stats, error)
	ToggleBookmark(ctx context.Context, id uuid.UUID) (Panorama, error)
	Delete(ctx context.Context, id uuid.UUID) (Panorama, error)
}

// ServiceOptions tune upload limits and locator generation.
type ServiceOptions struct {
	MaxUploadBytes int64
	// PublicBaseURL prefixes proxy locators; empty yields server-relative paths.
	PublicBaseURL string
	// PresignLocators mints direct object-store URLs instead of proxy paths.
	// Requires a blob store implementing blob.Presigner.
	PresignLocators bool
}

// Service orchestrates the panorama lifecycle: the upload pipeline, catalogue
// queries, bookmark toggling and deletion.
type Service struct {
	repo           metadataStore
	blobs          blob.Store
	maxUploadBytes int64
	publicBaseURL  string
	presign        bool
	logg           *zap.Logger
}

// NewService constructs a panorama service.
func NewService(repo metadataStore, blobs blob.Store, opts ServiceOptions, logg *zap.Logger) *Service {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if logg == nil {
		logg = zap.NewNop()
	}
	return &Service{
		repo:           repo,
		blobs:          blobs,
		maxUploadBytes: opts.MaxUploadBytes,
		publicBaseURL:  strings.TrimRight(opts.PublicBaseURL, "/"),
		presign:        opts.PresignLocators,
		logg:           logg,
	}
}

// Upload runs the full pipeline: validate, buffer the stream, persist the
// original, derive and persist the thumbnail, then insert the record. A record
// only becomes visible once both blobs exist; any later failure removes the
// blobs already written before the error surfaces.
func (s *Service) Upload(ctx context.Context, name string, fileHeader *multipart.FileHeader) (Panorama, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Panorama{}, fmt.Errorf("%w: name is required", ErrInvalidUpload)
	}
	if fileHeader == nil {
		return Panorama{}, fmt.Errorf("%w: file is required", ErrInvalidUpload)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return Panorama{}, fmt.Errorf("%w: only image files are allowed", ErrInvalidUpload)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Panorama{}, fmt.Errorf("open upload file: %w", err)
	}
	defer file.Close()

	// Buffer the stream and count bytes; the client-declared length is not
	// trusted.
	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes+1))
	if err != nil {
		return Panorama{}, fmt.Errorf("read upload stream: %w", err)
	}
	size := int64(len(data))
	if size > s.maxUploadBytes {
		return Panorama{}, ErrFileTooLarge
	}

	key := newStorageKey(fileHeader.Filename)
	originalPath := objectPath(key)

	if err := s.blobs.Put(ctx, originalPath, bytes.NewReader(data), size, contentType); err != nil {
		return Panorama{}, fmt.Errorf("store original: %w", err)
	}

	thumbBytes, err := thumbnail.Derive(data)
	if err != nil {
		s.removeBlobs(ctx, originalPath)
		return Panorama{}, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	thumbPath := objectPath(thumbnailKey(key))
	if err := s.blobs.Put(ctx, thumbPath, bytes.NewReader(thumbBytes), int64(len(thumbBytes)), "image/jpeg"); err != nil {
		s.removeBlobs(ctx, originalPath)
		return Panorama{}, fmt.Errorf("store thumbnail: %w", err)
	}

	previewURL, thumbnailURL, err := s.locators(ctx, key)
	if err != nil {
		s.removeBlobs(ctx, originalPath, thumbPath)
		return Panorama{}, err
	}

	record := Panorama{
		ID:           uuid.New(),
		Name:         name,
		Filename:     key,
		OriginalName: sanitizeFilename(fileHeader.Filename),
		SizeBytes:    size,
		MimeType:     contentType,
		PreviewURL:   previewURL,
		ThumbnailURL: thumbnailURL,
	}

	stored, err := s.repo.Create(ctx, record)
	if err != nil {
		s.removeBlobs(ctx, originalPath, thumbPath)
		return Panorama{}, err
	}
	return stored, nil
}

// List returns one catalogue page, applying pagination defaults.
func (s *Service) List(ctx context.Context, f Filter) (Page, error) {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	items, total, err := s.repo.Search(ctx, f)
	if err != nil {
		return Page{}, err
	}
	if items == nil {
		items = []Panorama{}
	}
	return Page{Items: items, Total: total}, nil
}

// GetStats returns catalogue counts computed at call time.
func (s *Service) GetStats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// ToggleBookmark flips the bookmark flag and returns the updated record.
func (s *Service) ToggleBookmark(ctx context.Context, id uuid.UUID) (Panorama, error) {
	return s.repo.ToggleBookmark(ctx, id)
}

// Delete removes both blobs and then the metadata record. A blob that is
// already absent counts as removed.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	originalPath := objectPath(record.Filename)
	thumbPath := objectPath(thumbnailKey(record.Filename))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.blobs.Remove(gctx, originalPath) })
	g.Go(func() error { return s.blobs.Remove(gctx, thumbPath) })
	if err := g.Wait(); err != nil {
		s.logg.Error("remove panorama blobs",
			zap.String("filename", record.Filename), zap.Error(err))
		return fmt.Errorf("remove blobs: %w", err)
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// OpenOriginal resolves the record for a storage key and opens its original
// blob. A missing record or missing blob both yield ErrPanoramaNotFound.
func (s *Service) OpenOriginal(ctx context.Context, key string) (Panorama, io.ReadCloser, error) {
	record, err := s.repo.GetByFilename(ctx, key)
	if err != nil {
		return Panorama{}, nil, err
	}

	reader, err := s.blobs.Get(ctx, objectPath(record.Filename))
	if err != nil {
		if err == blob.ErrObjectNotFound {
			return Panorama{}, nil, ErrPanoramaNotFound
		}
		return Panorama{}, nil, fmt.Errorf("fetch original: %w", err)
	}
	return record, reader, nil
}

// OpenThumbnail resolves the record addressed by a thumbnail key (the
// "-thumbnail" suffix is stripped before lookup) and opens the thumbnail blob.
func (s *Service) OpenThumbnail(ctx context.Context, key string) (Panorama, io.ReadCloser, error) {
	record, err := s.repo.GetByFilename(ctx, stripThumbnailSuffix(key))
	if err != nil {
		return Panorama{}, nil, err
	}

	reader, err := s.blobs.Get(ctx, objectPath(thumbnailKey(record.Filename)))
	if err != nil {
		if err == blob.ErrObjectNotFound {
			return Panorama{}, nil, ErrPanoramaNotFound
		}
		return Panorama{}, nil, fmt.Errorf("fetch thumbnail: %w", err)
	}
	return record, reader, nil
}

func (s *Service) locators(ctx context.Context, key string) (previewURL, thumbnailURL string, err error) {
	if s.presign {
		presigner, ok := s.blobs.(blob.Presigner)
		if !ok {
			return "", "", fmt.Errorf("blob store does not support presigned locators")
		}
		previewURL, err = presigner.PresignGet(ctx, objectPath(key))
		if err != nil {
			return "", "", err
		}
		thumbnailURL, err = presigner.PresignGet(ctx, objectPath(thumbnailKey(key)))
		if err != nil {
			return "", "", err
		}
		return previewURL, thumbnailURL, nil
	}

	previewURL = s.publicBaseURL + "/api/image-preview/" + key
	thumbnailURL = s.publicBaseURL + "/api/image-thumbnail/" + key
	return previewURL, thumbnailURL, nil
}

// removeBlobs is the compensating cleanup for a failed pipeline step; removal
// errors are logged, the pipeline error wins.
func (s *Service) removeBlobs(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if err := s.blobs.Remove(ctx, p); err != nil {
			s.logg.Error("cleanup orphaned blob", zap.String("path", p), zap.Error(err))
		}
	}
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	return name
}
