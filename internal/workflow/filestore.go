package workflow

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownFile is returned for a FileID that isn't in the store
var ErrUnknownFile = errors.New("no such file in the store")

// FileID names a file in the FileStore
type FileID string

// FileStore keeps the files passed between jobs. Global files are immutable
// once written. Local temp files and dirs are scratch space for a single job
type FileStore struct {
	dir string
}

// NewFileStore creates a store under dir, creating dir if needed
func NewFileStore(dir string) (*FileStore, error) {
	for _, sub := range []string{"global", "tmp"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("failed to create file store: %w", err)
		}
	}
	return &FileStore{dir: dir}, nil
}

// Dir is the store's root directory
func (s *FileStore) Dir() string {
	return s.dir
}

// WriteGlobalFile copies the file at localPath into the store
func (s *FileStore) WriteGlobalFile(localPath string) (FileID, error) {
	id := FileID(uuid.NewString())
	if err := copyFile(localPath, s.globalPath(id)); err != nil {
		return "", fmt.Errorf("failed to write %s to the file store: %w", localPath, err)
	}
	return id, nil
}

// ReadGlobalFile returns a local path to the file with id. The file must not
// be modified
func (s *FileStore) ReadGlobalFile(id FileID) (string, error) {
	path := s.globalPath(id)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownFile, id)
	}
	return path, nil
}

// LocalTempFile creates an empty scratch file and returns its path
func (s *FileStore) LocalTempFile() (string, error) {
	f, err := os.CreateTemp(filepath.Join(s.dir, "tmp"), "file-*")
	if err != nil {
		return "", err
	}
	return f.Name(), f.Close()
}

// LocalTempDir creates an empty scratch directory and returns its path
func (s *FileStore) LocalTempDir() (string, error) {
	return os.MkdirTemp(filepath.Join(s.dir, "tmp"), "dir-*")
}

// ImportFile copies a file into the store from a local path or a file://
// URL. Other URL schemes aren't supported
func (s *FileStore) ImportFile(src string) (FileID, error) {
	path, err := localPath(src)
	if err != nil {
		return "", err
	}
	return s.WriteGlobalFile(path)
}

// ExportFile copies the file with id out of the store to dest, a local path
// or file:// URL
func (s *FileStore) ExportFile(id FileID, dest string) error {
	src, err := s.ReadGlobalFile(id)
	if err != nil {
		return err
	}

	path, err := localPath(dest)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return copyFile(src, path)
}

// Clean deletes the store and everything in it
func (s *FileStore) Clean() error {
	return os.RemoveAll(s.dir)
}

func (s *FileStore) globalPath(id FileID) string {
	return filepath.Join(s.dir, "global", filepath.Base(string(id)))
}

// ToURL leaves http(s) URLs alone and turns anything else into an absolute
// file:// URL, escaping the path so localPath gets it back unchanged
func ToURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, "file://") {
		return path
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

// localPath gets a filesystem path from a path or file:// URL
func localPath(src string) (string, error) {
	if !strings.Contains(src, "://") {
		return src, nil
	}

	u, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", src, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URL scheme %q in %s", u.Scheme, src)
	}
	return u.Path, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
