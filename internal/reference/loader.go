package reference

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Loader defines the interface for loading a reference table document.
type Loader interface {
	// Load reads a JSON table document (gzipped when the name ends in .gz).
	Load(ctx context.Context, path string) (*Table, error)
}

// Document is the serialised form of a Table.
type Document struct {
	Harmful   []HarmfulIngredient `json:"harmful"`
	Allergens []string            `json:"allergens"`
}

// ToDocument converts a table into its serialisable form.
func ToDocument(t *Table) Document {
	return Document{
		Harmful:   t.Harmful(),
		Allergens: t.Allergens(),
	}
}

// fileLoader implements Loader for local files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based reference table loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "reference-loader").Logger(),
	}
}

// Load reads the table document at filePath.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Table, error) {
	l.logger.Info().Str("file", filePath).Msg("loading reference table")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open reference table")
		return nil, fmt.Errorf("failed to open reference table %s: %w", filePath, err)
	}
	defer file.Close()

	table, err := decodeTable(ctx, file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to decode reference table")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("harmful_entries", len(table.harmful)).
		Int("allergens", len(table.allergens)).
		Msg("reference table loaded successfully")

	return table, nil
}

func decodeTable(ctx context.Context, r io.Reader, name string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse reference table %s: %w", name, err)
	}
	if len(doc.Harmful) == 0 && len(doc.Allergens) == 0 {
		return nil, fmt.Errorf("reference table %s is empty", name)
	}

	table, err := NewTable(doc.Harmful, doc.Allergens)
	if err != nil {
		return nil, fmt.Errorf("invalid reference table %s: %w", name, err)
	}
	return table, nil
}
