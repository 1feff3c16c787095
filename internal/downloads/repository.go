// Package downloads manages the program's downloadable materials.
package downloads

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDownloadNotFound is returned for unknown download ids.
var ErrDownloadNotFound = errors.New("download not found")

// Download is a stored downloadable material.
type Download struct {
	ID            uuid.UUID
	FileKey       string
	Name          string
	Description   string
	ContentType   string
	Size          int64
	ExifTakenAt   *time.Time
	Published     bool
	DownloadCount int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repository reads and writes pago_downloads rows.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const downloadColumns = `id, file_key, name, description, content_type, size, exif_taken_at, published, download_count, created_at, updated_at`

// Create inserts an unpublished download record.
func (r *Repository) Create(ctx context.Context, d Download) (*Download, error) {
	query := `
		INSERT INTO pago_downloads (file_key, name, description, content_type, size, exif_taken_at, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + downloadColumns

	return scanDownload(r.pool.QueryRow(ctx, query,
		d.FileKey, d.Name, d.Description, d.ContentType, d.Size, d.ExifTakenAt, d.Published))
}

// GetByID fetches a single download.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Download, error) {
	query := `SELECT ` + downloadColumns + ` FROM pago_downloads WHERE id = $1`
	d, err := scanDownload(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDownloadNotFound
	}
	return d, err
}

// List returns downloads, optionally only the published ones.
func (r *Repository) List(ctx context.Context, publishedOnly bool) ([]Download, error) {
	query := `SELECT ` + downloadColumns + ` FROM pago_downloads`
	if publishedOnly {
		query += ` WHERE published`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Download
	for rows.Next() {
		d, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// Update changes name, description and published state.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, description string, published bool) (*Download, error) {
	query := `
		UPDATE pago_downloads
		SET name = $2, description = $3, published = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + downloadColumns

	d, err := scanDownload(r.pool.QueryRow(ctx, query, id, name, description, published))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDownloadNotFound
	}
	return d, err
}

// Delete removes the record. The object itself is removed by the
// service before this is called.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM pago_downloads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDownloadNotFound
	}
	return nil
}

// IncrementDownloadCount bumps the counter when a URL is handed out.
func (r *Repository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE pago_downloads SET download_count = download_count + 1 WHERE id = $1`, id)
	return err
}

func scanDownload(row pgx.Row) (*Download, error) {
	var d Download
	err := row.Scan(
		&d.ID,
		&d.FileKey,
		&d.Name,
		&d.Description,
		&d.ContentType,
		&d.Size,
		&d.ExifTakenAt,
		&d.Published,
		&d.DownloadCount,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
