package panorama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repoTimeout = 5 * time.Second

const panoramaColumns = "id, name, filename, original_name, size_bytes, mime_type, preview_url, thumbnail_url, is_bookmarked, created_at, updated_at"

// Repository provides access to panorama metadata storage.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds a new panorama repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanPanorama(row pgx.Row) (Panorama, error) {
	var p Panorama
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Filename,
		&p.OriginalName,
		&p.SizeBytes,
		&p.MimeType,
		&p.PreviewURL,
		&p.ThumbnailURL,
		&p.IsBookmarked,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create inserts metadata for a new panorama.
func (r *Repository) Create(ctx context.Context, p Panorama) (Panorama, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
INSERT INTO panoramas (id, name, filename, original_name, size_bytes, mime_type, preview_url, thumbnail_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + panoramaColumns + `;`

	stored, err := scanPanorama(r.pool.QueryRow(ctx, query,
		p.ID,
		p.Name,
		p.Filename,
		p.OriginalName,
		p.SizeBytes,
		p.MimeType,
		p.PreviewURL,
		p.ThumbnailURL,
	))
	if err != nil {
		return Panorama{}, fmt.Errorf("create panorama: %w", err)
	}
	return stored, nil
}

// GetByID fetches a single record.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Panorama, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `SELECT ` + panoramaColumns + ` FROM panoramas WHERE id = $1;`

	p, err := scanPanorama(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return Panorama{}, ErrPanoramaNotFound
		}
		return Panorama{}, fmt.Errorf("get panorama: %w", err)
	}
	return p, nil
}

// GetByFilename fetches the record whose storage key equals filename.
func (r *Repository) GetByFilename(ctx context.Context, filename string) (Panorama, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `SELECT ` + panoramaColumns + ` FROM panoramas WHERE filename = $1;`

	p, err := scanPanorama(r.pool.QueryRow(ctx, query, filename))
	if err != nil {
		if err == pgx.ErrNoRows {
			return Panorama{}, ErrPanoramaNotFound
		}
		return Panorama{}, fmt.Errorf("get panorama by filename: %w", err)
	}
	return p, nil
}

// Search returns records matching the filter, newest first, plus the total
// count matching before pagination.
func (r *Repository) Search(ctx context.Context, f Filter) ([]Panorama, int, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	var clauses []string
	var args []any
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.IsBookmarked != nil {
		args = append(args, *f.IsBookmarked)
		clauses = append(clauses, fmt.Sprintf("is_bookmarked = $%d", len(args)))
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM panoramas` + where + `;`
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count panoramas: %w", err)
	}

	args = append(args, f.Limit)
	limitPos := len(args)
	args = append(args, f.Offset)
	offsetPos := len(args)

	listQuery := fmt.Sprintf(`SELECT %s FROM panoramas%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		panoramaColumns, where, limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list panoramas: %w", err)
	}
	defer rows.Close()

	var items []Panorama
	for rows.Next() {
		p, err := scanPanorama(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan panorama: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate panoramas: %w", err)
	}
	return items, total, nil
}

// Stats counts all records and the bookmarked subset.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_bookmarked) FROM panoramas;`

	var s Stats
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Total, &s.Bookmarked); err != nil {
		return Stats{}, fmt.Errorf("panorama stats: %w", err)
	}
	s.Unbookmarked = s.Total - s.Bookmarked
	return s, nil
}

// ToggleBookmark flips the bookmark flag and bumps updated_at.
func (r *Repository) ToggleBookmark(ctx context.Context, id uuid.UUID) (Panorama, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `
UPDATE panoramas
SET is_bookmarked = NOT is_bookmarked, updated_at = now()
WHERE id = $1
RETURNING ` + panoramaColumns + `;`

	p, err := scanPanorama(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return Panorama{}, ErrPanoramaNotFound
		}
		return Panorama{}, fmt.Errorf("toggle bookmark: %w", err)
	}
	return p, nil
}

// Delete removes metadata and returns the deleted record.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (Panorama, error) {
	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	query := `DELETE FROM panoramas WHERE id = $1 RETURNING ` + panoramaColumns + `;`

	p, err := scanPanorama(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return Panorama{}, ErrPanoramaNotFound
		}
		return Panorama{}, fmt.Errorf("delete panorama: %w", err)
	}
	return p, nil
}
