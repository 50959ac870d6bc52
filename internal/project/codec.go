package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gochimney/internal/config"
)

// Format is a project file encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension, defaulting to JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// LoadError reports a project that could not be read or does not match the schema
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid project: %v", e.Err)
	}
	return fmt.Sprintf("invalid project %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrMissingGrid is returned for documents without a grid key
var ErrMissingGrid = errors.New("missing \"grid\" key")

// wireDocument distinguishes an absent grid from an empty one
type wireDocument struct {
	Meta *Meta     `json:"meta" yaml:"meta" toml:"meta"`
	Grid *[]Record `json:"grid" yaml:"grid" toml:"grid"`
}

// LoadFromFile reads a project file. Nothing is returned unless the whole
// document parses and validates.
func LoadFromFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	doc, err := Decode(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Decode parses and validates a project document.
// Meta keys absent from the document keep their default values.
func Decode(r io.Reader, format Format) (*Document, error) {
	wire := wireDocument{Meta: &Meta{Params: config.Default()}}

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&wire); err != nil {
			return nil, &LoadError{Err: err}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&wire); err != nil {
			return nil, &LoadError{Err: err}
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&wire)
		if err != nil {
			return nil, &LoadError{Err: err}
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, &LoadError{Err: fmt.Errorf("unknown key %q", undecoded[0].String())}
		}
	default:
		return nil, &LoadError{Err: fmt.Errorf("unsupported format %q", format)}
	}

	if wire.Grid == nil {
		return nil, &LoadError{Err: ErrMissingGrid}
	}
	if wire.Meta == nil {
		wire.Meta = &Meta{Params: config.Default()}
	}

	doc := &Document{Meta: *wire.Meta, Grid: *wire.Grid}
	if err := doc.Validate(); err != nil {
		return nil, &LoadError{Err: err}
	}
	return doc, nil
}

// Encode writes a project document
func Encode(w io.Writer, d *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(d)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// SaveToFile writes a project document in the format of its extension
func SaveToFile(path string, d *Document) error {
	var buf bytes.Buffer
	if err := Encode(&buf, d, FormatFromPath(path)); err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
