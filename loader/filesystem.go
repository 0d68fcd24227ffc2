package loader

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FileSystem is where scripts and the file natives read and write.  It can
// be backed by local disk, memory or HTTP.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	ListFiles(dir string) ([]string, error)
	Exists(path string) bool
}

// NewDefaultFS serves http(s) URLs over HTTP and everything else from the
// local disk relative to the working directory.
func NewDefaultFS() *CompositeFS {
	fs := NewCompositeFS()
	fs.SetFallback(NewLocalFS(""))
	web := NewHTTPFileSystem("")
	fs.Mount("http://", web)
	fs.Mount("https://", web)
	return fs
}

// CompositeFS routes each path to the file system mounted at its longest
// matching prefix, or to the fallback.
type CompositeFS struct {
	mu       sync.RWMutex
	mounts   map[string]FileSystem
	fallback FileSystem
}

func NewCompositeFS() *CompositeFS {
	return &CompositeFS{mounts: make(map[string]FileSystem)}
}

func (c *CompositeFS) SetFallback(fs FileSystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallback = fs
}

func (c *CompositeFS) Mount(prefix string, fs FileSystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mounts[prefix] = fs
}

func (c *CompositeFS) route(path string) (FileSystem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var best string
	var found FileSystem
	for prefix, fs := range c.mounts {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(best) {
			best, found = prefix, fs
		}
	}
	if found == nil {
		found = c.fallback
	}
	if found == nil {
		return nil, fmt.Errorf("%w: no file system mounted for %s", ErrNotFound, path)
	}
	return found, nil
}

func (c *CompositeFS) ReadFile(path string) ([]byte, error) {
	fs, err := c.route(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(path)
}

func (c *CompositeFS) WriteFile(path string, data []byte) error {
	fs, err := c.route(path)
	if err != nil {
		return err
	}
	return fs.WriteFile(path, data)
}

func (c *CompositeFS) ListFiles(dir string) ([]string, error) {
	fs, err := c.route(dir)
	if err != nil {
		return nil, err
	}
	return fs.ListFiles(dir)
}

func (c *CompositeFS) Exists(path string) bool {
	fs, err := c.route(path)
	return err == nil && fs.Exists(path)
}

// LocalFS reads and writes the local disk.  Relative paths are joined to
// basePath.
type LocalFS struct {
	basePath string
}

func NewLocalFS(basePath string) *LocalFS {
	return &LocalFS{basePath: basePath}
}

func (l *LocalFS) resolve(path string) string {
	if filepath.IsAbs(path) || l.basePath == "" {
		return path
	}
	return filepath.Join(l.basePath, path)
}

func (l *LocalFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(l.resolve(path))
}

func (l *LocalFS) WriteFile(path string, data []byte) error {
	full := l.resolve(path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0644)
}

func (l *LocalFS) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(l.resolve(dir))
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

func (l *LocalFS) Exists(path string) bool {
	_, err := os.Stat(l.resolve(path))
	return err == nil
}

// MemoryFS keeps files in a map.  Reads and writes copy the data.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryFS(files map[string]string) *MemoryFS {
	m := &MemoryFS{files: make(map[string][]byte)}
	for path, content := range files {
		m.files[path] = []byte(content)
	}
	return m
}

func (m *MemoryFS) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryFS) ListFiles(dir string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var files []string
	for path := range m.files {
		if strings.HasPrefix(path, dir) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *MemoryFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[path]
	return ok
}

// HTTPFileSystem fetches scripts over HTTP and caches them.  It is read only.
type HTTPFileSystem struct {
	baseURL string
	client  *http.Client
	cache   sync.Map
}

func NewHTTPFileSystem(baseURL string) *HTTPFileSystem {
	return &HTTPFileSystem{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
	}
}

func (h *HTTPFileSystem) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return h.baseURL + "/" + strings.TrimPrefix(path, "/")
}

func (h *HTTPFileSystem) ReadFile(path string) ([]byte, error) {
	if cached, ok := h.cache.Load(path); ok {
		return cached.([]byte), nil
	}
	url := h.url(path)
	resp, err := h.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrNotFound, url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	h.cache.Store(path, data)
	return data, nil
}

func (h *HTTPFileSystem) WriteFile(path string, data []byte) error {
	return fmt.Errorf("%w: http file system", ErrReadOnly)
}

func (h *HTTPFileSystem) ListFiles(dir string) ([]string, error) {
	return nil, fmt.Errorf("%w: listing over http", ErrReadOnly)
}

func (h *HTTPFileSystem) Exists(path string) bool {
	_, err := h.ReadFile(path)
	return err == nil
}
