package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/theopendraft/rule-clarifier/server/data"
)

// Validation errors surfaced to the caller as user-correctable input
// problems.
var (
	ErrTooManyFiles = errors.New("only one file may be uploaded per operation")
	ErrNotPDF       = errors.New("only PDF files are accepted")
	ErrTooLarge     = errors.New("file exceeds the maximum upload size")
)

// Store enforces the upload policy (one PDF, size-bounded) and writes
// accepted files to disk under uuid-prefixed names.
type Store struct {
	dir          string
	maxSizeBytes int64
	maxFiles     int
}

// NewStore creates the upload directory if needed.
func NewStore(dir string, maxSizeBytes int64, maxFiles int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload directory %s: %w", dir, err)
	}

	return &Store{
		dir:          dir,
		maxSizeBytes: maxSizeBytes,
		maxFiles:     maxFiles,
	}, nil
}

// ValidateCount rejects multi-file operations.
func (s *Store) ValidateCount(count int) error {
	if count > s.maxFiles {
		return ErrTooManyFiles
	}
	return nil
}

// Save validates and stores one uploaded file, returning its metadata.
// The returned Url is the path the server serves the file back from.
func (s *Store) Save(header *multipart.FileHeader) (*data.UploadedFile, error) {
	if header.Size > s.maxSizeBytes {
		return nil, ErrTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	if !isPDF(header.Filename, contentType) {
		return nil, ErrNotPDF
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening uploaded file: %w", err)
	}
	defer src.Close()

	storedName := uuid.New().String() + "_" + filepath.Base(header.Filename)
	dstPath := filepath.Join(s.dir, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("error creating stored file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, s.maxSizeBytes+1))
	if err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("error writing stored file: %w", err)
	}
	if written > s.maxSizeBytes {
		os.Remove(dstPath)
		return nil, ErrTooLarge
	}

	return &data.UploadedFile{
		Name: header.Filename,
		Url:  "/uploads/" + storedName,
		Size: written,
		Type: "application/pdf",
	}, nil
}

// Dir returns the directory stored files live in.
func (s *Store) Dir() string {
	return s.dir
}

func isPDF(filename string, contentType string) bool {
	if contentType == "application/pdf" {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}
