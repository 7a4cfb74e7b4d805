package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arrxxhh/walmart/internal/domain"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Source kinds accepted by NewSource
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
)

//go:embed seed/catalog.json
var seedCatalog []byte

// EmbeddedSource serves the seed catalog compiled into the binary
type EmbeddedSource struct{}

// Load decodes the seed catalog
func (EmbeddedSource) Load(ctx context.Context) (*domain.CatalogData, error) {
	return decodeJSON(seedCatalog)
}

// FileSource reads a JSON or YAML catalog file; the format follows the extension
type FileSource struct {
	Path string
}

// Load reads and decodes the catalog file
func (s FileSource) Load(ctx context.Context) (*domain.CatalogData, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("could not read catalog file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".json":
		return decodeJSON(raw)
	case ".yaml", ".yml":
		return decodeYAML(raw)
	default:
		return nil, fmt.Errorf("%w: unsupported catalog file extension %q", domain.ErrInvalidCatalog, filepath.Ext(s.Path))
	}
}

// NewSource returns the catalog source for a configured kind
func NewSource(kind, path string) (domain.CatalogSource, error) {
	switch kind {
	case SourceEmbedded, "":
		return EmbeddedSource{}, nil
	case SourceFile:
		return FileSource{Path: path}, nil
	case SourceSQLite:
		return SQLiteSource{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", kind)
	}
}

// Load performs the one-shot startup load from src into an immutable Catalog
func Load(ctx context.Context, src domain.CatalogSource, logger zerolog.Logger) (*Catalog, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	c, err := New(data)
	if err != nil {
		return nil, err
	}

	products, profiles := c.Stats()
	logger.Info().
		Str("component", "catalog").
		Str("source", fmt.Sprintf("%T", src)).
		Int("products", products).
		Int("profiles", profiles).
		Msg("catalog loaded")

	return c, nil
}

func decodeJSON(raw []byte) (*domain.CatalogData, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var data domain.CatalogData
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return &data, nil
}

// decodeYAML accepts the same document shape as the JSON format.
// The tree is re-encoded as JSON so both formats share one schema.
func decodeYAML(raw []byte) (*domain.CatalogData, error) {
	var tree map[string]interface{}
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	asJSON, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	return decodeJSON(asJSON)
}
