package postservice

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

const coverURLPath = "/imagens/cover/"

var ErrCoverNotAllowed = errors.New("cover file type not allowed")

var allowedCoverTypes = []string{"image/jpeg", "image/jpg", "image/png"}

// CoverStore keeps uploaded post covers in a directory served under coverURLPath.
type CoverStore struct {
	dir     string
	baseURL string
}

func NewCoverStore(dir, baseURL string) *CoverStore {
	return &CoverStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (cs *CoverStore) Dir() string {
	return cs.dir
}

// Ingest moves an uploaded image into the store under a random name and returns that name.
// The name always ends in ".jpg". Files whose declared type is not an accepted image type get
// ErrCoverNotAllowed; any other error means the file could not be stored. Either way no cover was set.
func (cs *CoverStore) Ingest(fh *multipart.FileHeader) (string, error) {
	if fh == nil || !allowedCoverType(fh.Header.Get("Content-Type")) {
		return "", ErrCoverNotAllowed
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("could not open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(cs.dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create cover directory: %w", err)
	}

	tmp, err := os.CreateTemp(cs.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("could not create temp file: %w", err)
	}

	name := uuid.NewString() + ".jpg"

	_, err = io.Copy(tmp, src)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), filepath.Join(cs.dir, name))
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("could not store cover: %w", err)
	}

	return name, nil
}

// Remove deletes a stored cover. Removing an empty or missing name is not an error.
func (cs *CoverStore) Remove(name string) error {
	if name == "" {
		return nil
	}

	err := os.Remove(filepath.Join(cs.dir, filepath.Base(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

// URL returns the public address of a cover, or "" when the post has none.
func (cs *CoverStore) URL(name string) string {
	if name == "" {
		return ""
	}

	return cs.baseURL + coverURLPath + name
}

func allowedCoverType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return slices.Contains(allowedCoverTypes, strings.ToLower(mediaType))
}
