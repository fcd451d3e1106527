package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"cafe-menu-api/apperr"
	"cafe-menu-api/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// AllowedExtensions lists the image types accepted for upload.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// ImageService owns the managed upload directory.
type ImageService struct {
	dir string
}

func NewImageService(dir string) (*ImageService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create upload directory %s", dir)
	}
	return &ImageService{dir: dir}, nil
}

func (s *ImageService) Dir() string { return s.dir }

// Save validates and stores an uploaded file, returning the stored file name.
func (s *ImageService) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", apperr.BadRequest("no file was uploaded")
	}
	if fh.Filename == "" {
		return "", apperr.BadRequest("file name is empty")
	}
	if !AllowedFile(fh.Filename) {
		return "", apperr.BadRequest("file type is not allowed")
	}

	safe := SecureFilename(fh.Filename)
	if !AllowedFile(safe) {
		safe = "image." + extension(fh.Filename)
	}
	name := randomPrefix() + "_" + safe

	src, err := fh.Open()
	if err != nil {
		return "", apperr.Internal(err, "failed to read upload")
	}
	defer src.Close()

	path := filepath.Join(s.dir, name)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperr.Internal(err, "failed to store upload")
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", apperr.Internal(err, "failed to store upload")
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", apperr.Internal(err, "failed to store upload")
	}
	return name, nil
}

// Lookup resolves a bare file name to a regular file inside the upload directory.
func (s *ImageService) Lookup(name string) (string, bool) {
	if !isBareName(name) {
		return "", false
	}
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// Remove deletes a managed image. A missing file is not an error.
func (s *ImageService) Remove(name string) error {
	if !isBareName(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return apperr.Internal(err, "failed to remove image")
	}
	return nil
}

// PublicURL is the path clients use to fetch a stored image.
func PublicURL(name string) string {
	return models.ImagePathPrefix + name
}

// AllowedFile reports whether the file name carries an allowed image extension.
func AllowedFile(name string) bool {
	return strings.Contains(name, ".") && AllowedExtensions[extension(name)]
}

func extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// SecureFilename reduces a client supplied name to ASCII letters, digits, '.', '_' and '-'
// so it cannot climb out of the upload directory.
func SecureFilename(name string) string {
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

func isBareName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func randomPrefix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
