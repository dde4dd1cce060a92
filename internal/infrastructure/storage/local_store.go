package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore keeps uploaded files on disk; the directory is served statically under URLPrefix.
type LocalStore struct {
	Dir       string
	URLPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir, URLPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Save writes r to Dir/name and returns the public path of the file.
func (s *LocalStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	name = filepath.Base(name)
	f, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, filepath.Join(s.Dir, name)); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return path.Join(s.URLPrefix, name), nil
}
