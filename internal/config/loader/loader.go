// Package loader provides configuration file loading for glyphmenu.
//
// The loader package handles decoding configuration files in YAML or TOML
// into a caller-supplied struct, and reading environment variables into
// setting key and value pairs.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format identifies a configuration file syntax.
type Format uint8

const (
	// FormatYAML is YAML (.yaml, .yml).
	FormatYAML Format = iota + 1
	// FormatTOML is TOML (.toml).
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "unknown"
	}
}

// FormatFor returns the format implied by the path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Decoder decodes configuration data into v. Unknown keys are errors.
type Decoder interface {
	Decode(source string, data []byte, v any) error
}

// DecoderFor returns the decoder for a format.
func DecoderFor(f Format) (Decoder, error) {
	switch f {
	case FormatYAML:
		return YAMLDecoder{}, nil
	case FormatTOML:
		return TOMLDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// FileLoader reads and decodes configuration files.
type FileLoader struct {
	fs FileSystem
}

// NewFileLoader creates a loader over the OS file system.
func NewFileLoader() *FileLoader {
	return &FileLoader{fs: DefaultFS()}
}

// NewFileLoaderWithFS creates a loader with a custom file system.
func NewFileLoaderWithFS(fsys FileSystem) *FileLoader {
	return &FileLoader{fs: fsys}
}

// LoadInto reads path and decodes it into v, choosing the format by
// extension. A missing file returns an error wrapping fs.ErrNotExist.
func (l *FileLoader) LoadInto(path string, v any) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	dec, err := DecoderFor(format)
	if err != nil {
		return err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading config file %s: %w", path, fs.ErrNotExist)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return dec.Decode(path, data, v)
}
