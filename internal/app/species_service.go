package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/tourney/internal/core/score"
	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/primary"
	"github.com/example/tourney/internal/ports/secondary"
)

// Species categories.
const (
	SpeciesCategoryDeLey   = "de_ley"
	SpeciesCategoryGeneral = "general"
)

// SpeciesServiceImpl implements the SpeciesService interface.
type SpeciesServiceImpl struct {
	transactor    secondary.Transactor
	speciesRepo   secondary.SpeciesRepository
	catalogReader secondary.CatalogReader
}

// NewSpeciesService creates a new SpeciesService with injected dependencies.
func NewSpeciesService(
	transactor secondary.Transactor,
	speciesRepo secondary.SpeciesRepository,
	catalogReader secondary.CatalogReader,
) *SpeciesServiceImpl {
	return &SpeciesServiceImpl{
		transactor:    transactor,
		speciesRepo:   speciesRepo,
		catalogReader: catalogReader,
	}
}

// SaveSpecies creates or replaces a species.
func (s *SpeciesServiceImpl) SaveSpecies(ctx context.Context, species primary.Species) (*primary.Species, error) {
	record := speciesToRecord(&species)
	if err := validateSpecies(record); err != nil {
		return nil, err
	}

	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.speciesRepo.Save(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return recordToSpecies(record), nil
}

// GetSpecies retrieves a species by ID.
func (s *SpeciesServiceImpl) GetSpecies(ctx context.Context, speciesID string) (*primary.Species, error) {
	record, err := s.speciesRepo.GetByID(ctx, normalizeSpeciesID(speciesID))
	if err != nil {
		return nil, err
	}
	return recordToSpecies(record), nil
}

// ListSpecies retrieves the catalog ordered by name.
func (s *SpeciesServiceImpl) ListSpecies(ctx context.Context) ([]*primary.Species, error) {
	records, err := s.speciesRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*primary.Species, len(records))
	for i, r := range records {
		list[i] = recordToSpecies(r)
	}
	return list, nil
}

// DeleteSpecies removes a species. Existing catches keep their points.
func (s *SpeciesServiceImpl) DeleteSpecies(ctx context.Context, speciesID string) error {
	return s.speciesRepo.Delete(ctx, normalizeSpeciesID(speciesID))
}

// ImportCatalog reads a catalog file and saves every species in one transaction.
// Nothing is saved when any entry is invalid.
func (s *SpeciesServiceImpl) ImportCatalog(ctx context.Context, path string) (*primary.ImportCatalogResponse, error) {
	records, err := s.catalogReader.ReadCatalog(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.Invalid(fmt.Sprintf("catalog %s has no species", path))
	}

	seen := make(map[string]bool, len(records))
	for _, r := range records {
		r.ID = normalizeSpeciesID(r.ID)
		if err := validateSpecies(r); err != nil {
			return nil, err
		}
		if seen[r.ID] {
			return nil, apperrors.Invalid(fmt.Sprintf("species %s appears twice in the catalog", r.ID))
		}
		seen[r.ID] = true
	}

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, r := range records {
			if err := s.speciesRepo.Save(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &primary.ImportCatalogResponse{Imported: len(records)}
	for _, r := range records {
		resp.Species = append(resp.Species, recordToSpecies(r))
	}
	return resp, nil
}

// Helper methods

func validateSpecies(r *secondary.SpeciesRecord) error {
	if r.ID == "" {
		return apperrors.Invalid("species id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.Invalid(fmt.Sprintf("species %s: name is required", r.ID))
	}
	switch r.Category {
	case "":
		r.Category = SpeciesCategoryGeneral
	case SpeciesCategoryDeLey, SpeciesCategoryGeneral:
	default:
		return apperrors.Invalid(fmt.Sprintf("species %s: unknown category %q (want %s or %s)",
			r.ID, r.Category, SpeciesCategoryDeLey, SpeciesCategoryGeneral))
	}
	if err := score.ValidateRules(recordsToRules(r.Rules)); err != nil {
		return apperrors.Invalid(fmt.Sprintf("species %s: %v", r.ID, err))
	}
	return nil
}

func normalizeSpeciesID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func speciesToRecord(s *primary.Species) *secondary.SpeciesRecord {
	record := &secondary.SpeciesRecord{
		ID:       normalizeSpeciesID(s.ID),
		Name:     strings.TrimSpace(s.Name),
		Category: s.Category,
	}
	for _, r := range s.Rules {
		record.Rules = append(record.Rules, secondary.PieceRuleRecord{
			Points:    r.Points,
			MinSizeCm: r.MinSizeCm,
			Mandatory: r.Mandatory,
		})
	}
	return record
}

func recordToSpecies(r *secondary.SpeciesRecord) *primary.Species {
	species := &primary.Species{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
	}
	for _, rule := range r.Rules {
		species.Rules = append(species.Rules, primary.PieceRule{
			Points:    rule.Points,
			MinSizeCm: rule.MinSizeCm,
			Mandatory: rule.Mandatory,
		})
	}
	return species
}

// Ensure SpeciesServiceImpl implements the interface
var _ primary.SpeciesService = (*SpeciesServiceImpl)(nil)
