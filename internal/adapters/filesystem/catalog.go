// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/secondary"
)

// CatalogReader implements secondary.CatalogReader for YAML catalog files.
//
// File format:
//
//	species:
//	  - id: dorado
//	    name: Dorado
//	    category: de_ley
//	    pieces:
//	      - points: 100
//	        min_size_cm: 55
//	        mandatory: true
type CatalogReader struct{}

// NewCatalogReader creates a new YAML catalog reader.
func NewCatalogReader() *CatalogReader {
	return &CatalogReader{}
}

type catalogFile struct {
	Species []catalogSpecies `yaml:"species"`
}

type catalogSpecies struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Category string         `yaml:"category"`
	Pieces   []catalogPiece `yaml:"pieces"`
}

type catalogPiece struct {
	Points    int     `yaml:"points"`
	MinSizeCm float64 `yaml:"min_size_cm"`
	Mandatory bool    `yaml:"mandatory"`
}

// ReadCatalog parses the catalog at path. Unknown keys are rejected so a typo
// in a rule does not silently score zero.
func (r *CatalogReader) ReadCatalog(ctx context.Context, path string) ([]*secondary.SpeciesRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, apperrors.Invalid(fmt.Sprintf("catalog file %s does not exist", path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) ([]*secondary.SpeciesRecord, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.Invalid(fmt.Sprintf("invalid catalog: %v", err))
	}

	records := make([]*secondary.SpeciesRecord, 0, len(file.Species))
	for _, s := range file.Species {
		record := &secondary.SpeciesRecord{
			ID:       s.ID,
			Name:     s.Name,
			Category: s.Category,
		}
		for _, p := range s.Pieces {
			record.Rules = append(record.Rules, secondary.PieceRuleRecord{
				Points:    p.Points,
				MinSizeCm: p.MinSizeCm,
				Mandatory: p.Mandatory,
			})
		}
		records = append(records, record)
	}
	return records, nil
}

// Ensure CatalogReader implements the interface
var _ secondary.CatalogReader = (*CatalogReader)(nil)
