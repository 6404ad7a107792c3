package main

import (
	"context"
	"path/filepath"
	"testing"

	"grocery-detective/internal/reference"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDocument(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{name: "Plain JSON", filename: "ingredients.json"},
		{name: "Gzipped JSON", filename: "ingredients.json.gz"},
	}

	want := reference.DefaultTable()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", tt.filename)

			require.NoError(t, writeDocument(path, reference.ToDocument(want)))

			got, err := reference.NewFileLoader(zerolog.Nop()).Load(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, want.Harmful(), got.Harmful())
			assert.Equal(t, want.Allergens(), got.Allergens())
		})
	}
}
