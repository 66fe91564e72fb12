package primary

import "context"

// SpeciesService defines the primary port for the species catalog.
type SpeciesService interface {
	// SaveSpecies creates or replaces a species.
	SaveSpecies(ctx context.Context, species Species) (*Species, error)

	// GetSpecies retrieves a species by ID.
	GetSpecies(ctx context.Context, speciesID string) (*Species, error)

	// ListSpecies retrieves the catalog ordered by name.
	ListSpecies(ctx context.Context) ([]*Species, error)

	// DeleteSpecies removes a species.
	DeleteSpecies(ctx context.Context, speciesID string) error

	// ImportCatalog reads a catalog file and saves every species in one transaction.
	ImportCatalog(ctx context.Context, path string) (*ImportCatalogResponse, error)
}

// Species represents a species at the port boundary.
type Species struct {
	ID       string
	Name     string
	Category string
	Rules    []PieceRule
}

// PieceRule is the scoring rule for one piece.
type PieceRule struct {
	Points    int
	MinSizeCm float64
	Mandatory bool
}

// ImportCatalogResponse summarises a catalog import.
type ImportCatalogResponse struct {
	Imported int
	Species  []*Species
}
