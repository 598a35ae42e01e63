// Package workspace manages the on-disk directory kept for each problem:
// the rendered description plus any solution files the user creates.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DescriptionFile = "README.md"

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrExists      = errors.New("file already exists")
)

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string { return s.root }

// Dir is the workspace directory of a problem. It is not created.
func (s *Store) Dir(slug string) string {
	return filepath.Join(s.root, slug)
}

func (s *Store) Path(slug, name string) string {
	return filepath.Join(s.Dir(slug), name)
}

func (s *Store) Ensure(slug string) (string, error) {
	if err := validName(slug); err != nil {
		return "", fmt.Errorf("workspace %q: %w", slug, err)
	}
	dir := s.Dir(slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	return dir, nil
}

// List returns the solution files of a problem in name order. The
// description and hidden files are left out; a missing directory is empty.
func (s *Store) List(slug string) ([]string, error) {
	entries, err := os.ReadDir(s.Dir(slug))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list workspace: %w", err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || name == DescriptionFile || strings.HasPrefix(name, ".") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// Create writes a new solution file, refusing to replace an existing one.
func (s *Store) Create(slug, name string, data []byte) error {
	if err := validName(name); err != nil {
		return fmt.Errorf("create %q: %w", name, err)
	}
	if name == DescriptionFile {
		return fmt.Errorf("create %q: %w", name, ErrExists)
	}
	if _, err := s.Ensure(slug); err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path(slug, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create %q: %w", name, ErrExists)
	}
	if err != nil {
		return fmt.Errorf("create %q: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %q: %w", name, err)
	}
	return f.Close()
}

// WriteDescription replaces README.md with the rendered problem statement.
func (s *Store) WriteDescription(slug, markdown string) error {
	if _, err := s.Ensure(slug); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(slug, DescriptionFile), []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write description: %w", err)
	}
	return nil
}

func (s *Store) Read(slug, name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	b, err := os.ReadFile(s.Path(slug, name))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return b, nil
}

func validName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}
