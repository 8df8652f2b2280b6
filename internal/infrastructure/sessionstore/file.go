package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hireboard/job-portal/internal/core/domain"
)

// File keeps the record as a JSON document on disk.
type File struct {
	path string
}

// NewFile stores the record at path. The parent directory is created on Save.
func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultFilePath is $HOME/.jobboard/currentUser.json, or a relative path when
// the home directory is unknown.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".jobboard", DefaultKey+".json")
	}
	return filepath.Join(home, ".jobboard", DefaultKey+".json")
}

func (f *File) Load(_ context.Context) (*domain.Session, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	s, ok := decode(raw)
	if !ok {
		_ = os.Remove(f.path)
		return nil, domain.ErrNoSession
	}
	return s, nil
}

func (f *File) Save(_ context.Context, s *domain.Session) error {
	raw, err := encode(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (f *File) Delete(_ context.Context) error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
