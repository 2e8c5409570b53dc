package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/storage"
)

type FileService interface {
	// Clarification evidence uploads
	UploadEvidence(ctx context.Context, nip string, file io.Reader, filename string) (string, error)

	// Leave letter uploads
	UploadLeaveLetter(ctx context.Context, nip string, startDate time.Time, file io.Reader, filename string) (string, error)

	// Generic operations
	OpenFile(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
	FileExists(ctx context.Context, path string) (bool, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var allowedEvidenceExts = []string{".jpg", ".jpeg", ".png", ".pdf"}

func validateExt(filename string, allowed []string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("invalid file type %q, allowed types: %s", ext, strings.Join(allowed, ", "))
}

// sanitize strips path separators from a client-supplied filename.
func sanitize(filename string) string {
	name := filepath.Base(filename)
	return strings.ReplaceAll(name, " ", "_")
}

// UploadEvidence stores a clarification evidence file under
// evidence/bukti-{nip}-{timestamp}-{original}.
func (s *fileServiceImpl) UploadEvidence(ctx context.Context, nip string, file io.Reader, filename string) (string, error) {
	if err := validateExt(filename, allowedEvidenceExts); err != nil {
		return "", err
	}

	path := fmt.Sprintf("evidence/bukti-%s-%d-%s", nip, time.Now().Unix(), sanitize(filename))

	stored, err := s.storage.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to upload evidence file: %w", err)
	}

	return stored, nil
}

// UploadLeaveLetter stores a leave letter under
// leave/cuti-{nip}-{startdate}-{original}.
func (s *fileServiceImpl) UploadLeaveLetter(ctx context.Context, nip string, startDate time.Time, file io.Reader, filename string) (string, error) {
	if err := validateExt(filename, allowedEvidenceExts); err != nil {
		return "", err
	}

	path := fmt.Sprintf("leave/cuti-%s-%s-%s", nip, startDate.Format("2006-01-02"), sanitize(filename))

	stored, err := s.storage.Upload(ctx, file, path)
	if err != nil {
		return "", fmt.Errorf("failed to upload leave letter: %w", err)
	}

	return stored, nil
}

func (s *fileServiceImpl) OpenFile(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) FileExists(ctx context.Context, path string) (bool, error) {
	return s.storage.Exists(ctx, path)
}
