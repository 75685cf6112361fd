package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const ProfileImagesDir = "profile_images"

// FileStore writes uploaded images below Root. Returned paths are slash
// separated and relative to Root so they can be served under /media/.
type FileStore struct {
	Root string
	Dir  string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{Root: root, Dir: ProfileImagesDir}
}

func (s *FileStore) Save(name string, data []byte) (string, error) {
	base := filepath.Base(name)
	if base != name || base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	dir := filepath.Join(s.Root, s.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, base), data, 0o644); err != nil {
		return "", err
	}
	return path.Join(s.Dir, base), nil
}

// Remove deletes a previously saved file. Missing files are ignored.
func (s *FileStore) Remove(rel string) error {
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) resolve(rel string) (string, error) {
	clean := path.Clean("/" + rel)
	if strings.Contains(rel, "..") {
		return "", fmt.Errorf("invalid media path %q", rel)
	}
	return filepath.Join(s.Root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
