package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "diabcar/internal/errors"
)

// MaxImageSize bounds uploaded vehicle images at 5 MB.
const MaxImageSize = 5 << 20

// URLPrefix is the path prefix under which stored images are served.
const URLPrefix = "/uploads/"

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Store saves vehicle images on local disk. Files are written to a
// temporary name and renamed into place so a rejected upload never
// leaves a partial file behind.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save validates the size and content type of the uploaded file and
// stores it under a unique name. It returns the public URL path.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxImageSize {
		return "", apperrors.Validation(apperrors.FieldError{
			Field:   "image",
			Message: "file size exceeds the 5MB limit",
		})
	}

	// Sniff the real content type rather than trusting the client header.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	ext, ok := allowedTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", apperrors.Validation(apperrors.FieldError{
			Field:   "image",
			Message: "invalid file type, only JPEG, PNG and GIF are allowed",
		})
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewinding upload: %w", err)
	}

	name := uuid.NewString() + ext
	tmpPath := filepath.Join(s.dir, name+".tmp")
	dst, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}

	if _, err := io.Copy(dst, io.LimitReader(file, MaxImageSize+1)); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing upload file: %w", err)
	}

	finalPath := filepath.Join(s.dir, name)
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("storing upload file: %w", err)
	}
	return URLPrefix + name, nil
}

// Remove deletes a previously stored image given its public URL path.
// Missing files are not an error.
func (s *Store) Remove(urlPath string) error {
	if urlPath == "" {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(urlPath, URLPrefix))
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing image %s: %w", name, err)
	}
	return nil
}
