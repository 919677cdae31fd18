package generator

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categoryAsset    writeCategory = "asset"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryManifest writeCategory = "manifest"
)

// WriteRequest describes a single artifact write routed through the writer.
type WriteRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    writeCategory
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// ArtifactWriter abstracts where build outputs land so dry runs and tests can
// swap the filesystem out.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req WriteRequest) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	RemoveAll(ctx context.Context, path string) error
}

// OSWriter writes artifacts beneath a root directory on the local filesystem.
type OSWriter struct {
	root string
}

// NewOSWriter returns a writer rooted at dir.
func NewOSWriter(dir string) (*OSWriter, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, errors.New("generator: writer root directory required")
	}
	return &OSWriter{root: filepath.Clean(trimmed)}, nil
}

func (w *OSWriter) resolve(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(strings.TrimLeft(rel, "/")))
}

func (w *OSWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" || dir == "." {
		return os.MkdirAll(w.root, 0o755)
	}
	return os.MkdirAll(w.resolve(dir), 0o755)
}

func (w *OSWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	target := w.resolve(req.Path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

func (w *OSWriter) ReadFile(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(w.resolve(rel))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (w *OSWriter) RemoveAll(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(rel) == "" || rel == "." {
		entries, err := os.ReadDir(w.root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(w.root, entry.Name())); err != nil {
				return err
			}
		}
		return nil
	}
	return os.RemoveAll(w.resolve(rel))
}

// MemoryWriter collects artifacts in memory. Tests and dry runs use it in
// place of the filesystem.
type MemoryWriter struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
}

// NewMemoryWriter constructs an empty in-memory artifact writer.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
}

func (w *MemoryWriter) EnsureDir(_ context.Context, dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs[strings.Trim(dir, "/")] = struct{}{}
	return nil
}

func (w *MemoryWriter) WriteFile(_ context.Context, req WriteRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[strings.TrimLeft(req.Path, "/")] = data
	return nil
}

func (w *MemoryWriter) ReadFile(_ context.Context, rel string) ([]byte, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	data, ok := w.files[strings.TrimLeft(rel, "/")]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (w *MemoryWriter) RemoveAll(_ context.Context, rel string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	prefix := strings.Trim(rel, "/")
	if prefix == "" || prefix == "." {
		w.files = make(map[string][]byte)
		w.dirs = make(map[string]struct{})
		return nil
	}
	for key := range w.files {
		if key == prefix || strings.HasPrefix(key, prefix+"/") {
			delete(w.files, key)
		}
	}
	return nil
}

// Files returns a snapshot of everything written so far.
func (w *MemoryWriter) Files() map[string][]byte {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[string][]byte, len(w.files))
	for key, value := range w.files {
		out[key] = append([]byte(nil), value...)
	}
	return out
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, WriteRequest) error { return nil }

func (noopWriter) ReadFile(context.Context, string) ([]byte, error) { return nil, nil }

func (noopWriter) RemoveAll(context.Context, string) error { return nil }
