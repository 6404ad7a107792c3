// Command reftable writes the built-in ingredient reference table as a JSON
// document, gzipped when the output name ends in .gz. The result can be used
// as REFERENCE_TABLE_PATH locally or uploaded under S3_PREFIX.
package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"grocery-detective/internal/reference"

	"github.com/rs/zerolog"
)

func main() {
	out := flag.String("out", "data/reference/ingredients.json.gz", "output file (.json or .json.gz)")
	flag.Parse()

	doc := reference.ToDocument(reference.DefaultTable())

	if err := writeDocument(*out, doc); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	// Read the file back through the loader the server uses
	table, err := reference.NewFileLoader(zerolog.Nop()).Load(context.Background(), *out)
	if err != nil {
		log.Fatalf("Written file does not load: %v", err)
	}

	fmt.Printf("Created %s with %d harmful ingredients and %d allergens\n",
		*out, len(table.Harmful()), len(table.Allergens()))
}

func writeDocument(filePath string, doc reference.Document) (err error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	var w io.Writer = file
	if strings.HasSuffix(filePath, ".gz") {
		gzipWriter := gzip.NewWriter(file)
		defer func() {
			if closeErr := gzipWriter.Close(); err == nil {
				err = closeErr
			}
		}()
		w = gzipWriter
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode reference table: %w", err)
	}

	return nil
}
