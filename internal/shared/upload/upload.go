// Package upload stores user files on local disk under a public prefix.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MuleAlemuB/project1-sub002/internal/shared/apperror"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix the upload root is served under.
const PublicPrefix = "uploads"

const (
	DirPhotos      = "photos"
	DirAttachments = "attachments"
	DirResumes     = "resumes"
	DirLetters     = "letters"
)

var (
	ImageExts      = []string{".jpg", ".jpeg", ".png"}
	DocumentExts   = []string{".pdf", ".doc", ".docx"}
	AttachmentExts = []string{".pdf", ".jpg", ".jpeg", ".png", ".doc", ".docx"}
)

var (
	ErrExtensionNotAllowed = apperror.New(apperror.CodeInvalidInput, "File type is not allowed", http.StatusBadRequest)
	ErrFileNotFound        = apperror.New(apperror.CodeNotFound, "File not found", http.StatusNotFound)
	ErrInvalidPath         = apperror.New(apperror.CodeInvalidInput, "Invalid file path", http.StatusBadRequest)
)

//go:generate mockgen -destination=mock/upload_storage_mock.go -package=mock . Storage
type Storage interface {
	Save(fh *multipart.FileHeader, dir string, allowed []string) (string, error)
	WriteBytes(dir, ext string, data []byte) (string, error)
	Resolve(publicPath string) (string, error)
}

type Store struct {
	root string
}

func NewStore(root string) *Store {
	if root == "" {
		root = PublicPrefix
	}
	return &Store{root: root}
}

func (s *Store) Root() string {
	return s.root
}

// Save copies a multipart file into dir with a random name and returns its
// public path, e.g. "uploads/resumes/<uuid>.pdf".
func (s *Store) Save(fh *multipart.FileHeader, dir string, allowed []string) (string, error) {
	if fh == nil {
		return "", apperror.RequiredField("file")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !slices.Contains(allowed, ext) {
		return "", ErrExtensionNotAllowed
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name, dst, err := s.create(dir, ext)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path.Join(PublicPrefix, dir, name), nil
}

// WriteBytes stores generated content such as rendered letters.
func (s *Store) WriteBytes(dir, ext string, data []byte) (string, error) {
	name, dst, err := s.create(dir, strings.ToLower(ext))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := dst.Write(data); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join(PublicPrefix, dir, name), nil
}

// Resolve maps a public path back to a file on disk. Paths escaping the
// root are rejected.
func (s *Store) Resolve(publicPath string) (string, error) {
	rel := strings.TrimPrefix(path.Clean("/"+publicPath), "/")
	rel = strings.TrimPrefix(rel, PublicPrefix+"/")
	if rel == "" || rel == PublicPrefix {
		return "", ErrInvalidPath
	}

	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	return full, nil
}

func (s *Store) create(dir, ext string) (string, *os.File, error) {
	target := filepath.Join(s.root, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", nil, fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return "", nil, fmt.Errorf("create file: %w", err)
	}
	return name, f, nil
}
