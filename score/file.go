package score

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
)

// File keeps the high score as a single integer on the first line of a text
// file. A missing or empty file reads as 0.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) *File { return &File{path: path} }

func (f *File) Read(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *File) read() (int, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	defer file.Close()

	s := bufio.NewScanner(file)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", f.path, err)
		}
		return 0, nil
	}
	line := strings.TrimSpace(s.Text())
	if line == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("malformed high score in %s: %w", f.path, err)
	}
	return v, nil
}

// Write stores v if it beats the stored score. A malformed file is
// overwritten.
func (f *File) Write(_ context.Context, v int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, err := f.read()
	var numErr *strconv.NumError
	switch {
	case errors.As(err, &numErr):
	case err != nil:
		return err
	case v <= cur:
		return nil
	}
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(v)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
