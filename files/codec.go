package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// UnsupportedFormatError is returned by Load and Save for an extension with no
// registered codec.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no codec registered for %q (extension %q)", e.Path, e.Ext)
}

func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Codec converts between bytes and Go values for one file format.
type Codec struct {
	Marshal   func(v any) ([]byte, error)
	Unmarshal func(data []byte, v any) error
}

var (
	JSON = Codec{
		Marshal: func(v any) ([]byte, error) {
			return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
		},
		Unmarshal: jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
	}
	YAML = Codec{
		Marshal:   yaml.Marshal,
		Unmarshal: yaml.Unmarshal,
	}
)

// Registry maps file extensions (without the dot, lower case) to codecs.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry returns a registry knowing json, yaml and yml.
func NewRegistry() *Registry {
	r := &Registry{codecs: make(map[string]Codec)}
	r.Register("json", JSON)
	r.Register("yaml", YAML)
	r.Register("yml", YAML)
	return r
}

func (r *Registry) Register(ext string, c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[normalizeExt(ext)] = c
}

func (r *Registry) lookup(path string) (Codec, error) {
	ext := normalizeExt(filepath.Ext(path))
	r.mu.RLock()
	c, ok := r.codecs[ext]
	r.mu.RUnlock()
	if !ok {
		return Codec{}, &UnsupportedFormatError{Path: path, Ext: ext}
	}
	return c, nil
}

// Load decodes the file at path into v.
func (r *Registry) Load(path string, v any) error {
	c, err := r.lookup(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := c.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Save encodes v into path, creating parent directories as needed.
func (r *Registry) Save(path string, v any) error {
	c, err := r.lookup(path)
	if err != nil {
		return err
	}
	data, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return WriteFileAtomic(path, data)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

var defaultRegistry = NewRegistry()

func Load(path string, v any) error {
	return defaultRegistry.Load(path, v)
}

func Save(path string, v any) error {
	return defaultRegistry.Save(path, v)
}
