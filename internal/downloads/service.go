package downloads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"pago_backend/internal/storage"
	"pago_backend/platform/apperr"
	"pago_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
)

// Service coordinates validation, object storage and metadata.
type Service struct {
	repo    *Repository
	store   *storage.Client
	bucket  string
	baseURL string
	log     *logger.Logger
}

// NewService creates a Service. store may be nil when MinIO is not
// configured, every storage-backed operation then fails cleanly.
func NewService(repo *Repository, store *storage.Client, bucket, baseURL string, log *logger.Logger) *Service {
	return &Service{repo: repo, store: store, bucket: bucket, baseURL: baseURL, log: log}
}

func (s *Service) storageReady() error {
	if s.store == nil {
		return apperr.Unavailable("armazenamento de arquivos não configurado").WithCode("STORAGE_DISABLED")
	}
	return nil
}

// PresignResult carries the upload URL and the key the client must
// confirm with.
type PresignResult struct {
	FileKey   string
	UploadURL string
}

// Presign validates the upload candidate and hands out a PUT URL.
func (s *Service) Presign(ctx context.Context, filename, mimeType string, size int64) (*PresignResult, error) {
	if err := s.storageReady(); err != nil {
		return nil, err
	}

	if result := storage.ValidateUpload(filename, mimeType, size); !result.Valid {
		return nil, apperr.Validation(result.Error)
	}

	key := storage.ObjectKey(filename)
	uploadURL, err := s.store.PresignedPut(ctx, s.bucket, key)
	if err != nil {
		s.log.Error("presign failed", "key", key, "error", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível gerar a URL de upload", err)
	}

	return &PresignResult{FileKey: key, UploadURL: uploadURL}, nil
}

// Confirm registers an object the client uploaded via a presigned URL.
// The object is stat'ed so the stored metadata reflects what actually
// landed in the bucket, and images get their EXIF timestamp captured.
func (s *Service) Confirm(ctx context.Context, fileKey, name, description string) (*Download, error) {
	if err := s.storageReady(); err != nil {
		return nil, err
	}

	info, err := s.store.Stat(ctx, s.bucket, fileKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "arquivo não encontrado no armazenamento", err)
	}

	if result := storage.ValidateUpload(name, info.ContentType, info.Size); !result.Valid {
		// The object slipped past the client-side checks, drop it.
		_ = s.store.Remove(ctx, s.bucket, fileKey)
		return nil, apperr.Validation(result.Error)
	}

	download := Download{
		FileKey:     fileKey,
		Name:        name,
		Description: description,
		ContentType: info.ContentType,
		Size:        info.Size,
		ExifTakenAt: s.exifTakenAt(ctx, fileKey, info.ContentType),
	}

	created, err := s.repo.Create(ctx, download)
	if err != nil {
		s.log.DatabaseError("downloads.create", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível registrar o arquivo", err)
	}
	return created, nil
}

// DirectUpload stores a multipart upload in one round trip.
func (s *Service) DirectUpload(ctx context.Context, filename, mimeType string, size int64, reader io.Reader, name, description string) (*Download, error) {
	if err := s.storageReady(); err != nil {
		return nil, err
	}

	if result := storage.ValidateUpload(filename, mimeType, size); !result.Valid {
		return nil, apperr.Validation(result.Error)
	}

	key := storage.ObjectKey(filename)
	if err := s.store.Put(ctx, s.bucket, key, reader, size, mimeType); err != nil {
		s.log.Error("direct upload failed", "key", key, "error", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível armazenar o arquivo", err)
	}

	if name == "" {
		name = filename
	}

	download := Download{
		FileKey:     key,
		Name:        name,
		Description: description,
		ContentType: mimeType,
		Size:        size,
		ExifTakenAt: s.exifTakenAt(ctx, key, mimeType),
	}

	created, err := s.repo.Create(ctx, download)
	if err != nil {
		s.log.DatabaseError("downloads.create", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível registrar o arquivo", err)
	}
	return created, nil
}

// exifTakenAt reads the original capture timestamp from JPEG uploads.
// Missing or unreadable EXIF data is not an error.
func (s *Service) exifTakenAt(ctx context.Context, key, contentType string) *time.Time {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/jpeg") {
		return nil
	}

	obj, err := s.store.Get(ctx, s.bucket, key)
	if err != nil {
		return nil
	}
	defer obj.Close()

	meta, err := exif.Decode(obj)
	if err != nil {
		return nil
	}
	taken, err := meta.DateTime()
	if err != nil {
		return nil
	}
	return &taken
}

// ListPublished returns the public catalog with fresh download URLs.
func (s *Service) ListPublished(ctx context.Context) ([]PublicDownload, error) {
	items, err := s.repo.List(ctx, true)
	if err != nil {
		s.log.DatabaseError("downloads.list", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível listar os materiais", err)
	}

	out := make([]PublicDownload, 0, len(items))
	for i := range items {
		item := &items[i]
		entry := PublicDownload{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			ContentType: item.ContentType,
			Size:        item.Size,
		}
		if s.store != nil {
			if url, err := s.store.PresignedGet(ctx, s.bucket, item.FileKey, item.Name); err == nil {
				entry.DownloadURL = url
				_ = s.repo.IncrementDownloadCount(ctx, item.ID)
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

// PublicDownload is the catalog entry shown on the site.
type PublicDownload struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
}

// ListAll returns every download for the admin view.
func (s *Service) ListAll(ctx context.Context) ([]Download, error) {
	items, err := s.repo.List(ctx, false)
	if err != nil {
		s.log.DatabaseError("downloads.list_all", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível listar os materiais", err)
	}
	return items, nil
}

// Update renames, describes or (un)publishes a download.
func (s *Service) Update(ctx context.Context, id uuid.UUID, name, description string, published bool) (*Download, error) {
	updated, err := s.repo.Update(ctx, id, name, description, published)
	if errors.Is(err, ErrDownloadNotFound) {
		return nil, apperr.NotFound("material não encontrado")
	}
	if err != nil {
		s.log.DatabaseError("downloads.update", err)
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível atualizar o material", err)
	}
	return updated, nil
}

// Delete removes both the object and its record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	download, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrDownloadNotFound) {
		return apperr.NotFound("material não encontrado")
	}
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "não foi possível carregar o material", err)
	}

	if s.store != nil {
		if err := s.store.Remove(ctx, s.bucket, download.FileKey); err != nil {
			s.log.Error("object removal failed", "key", download.FileKey, "error", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.DatabaseError("downloads.delete", err)
		return apperr.Wrap(apperr.KindInternal, "não foi possível remover o material", err)
	}
	return nil
}

// ShareLink is the public page for a download, the QR target.
func (s *Service) ShareLink(id uuid.UUID) string {
	return fmt.Sprintf("%s/downloads/%s", s.baseURL, id)
}

// Get returns a single download for QR generation.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Download, error) {
	download, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrDownloadNotFound) {
		return nil, apperr.NotFound("material não encontrado")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "não foi possível carregar o material", err)
	}
	return download, nil
}
