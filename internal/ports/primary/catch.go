package primary

import "context"

// CatchService registers catches from raw measurements, computing points from
// the species rules before handing them to the ledger.
type CatchService interface {
	// RegisterCatch validates the member and size, scores the piece and records
	// it through the ledger, all in one transaction.
	RegisterCatch(ctx context.Context, req RegisterCatchRequest) (*RecordCatchResponse, error)

	// ListCatches lists catches, newest first.
	ListCatches(ctx context.Context, filters CatchFilters) ([]*Catch, error)

	// GetCatch retrieves a single catch.
	GetCatch(ctx context.Context, catchID string) (*Catch, error)
}

// RegisterCatchRequest contains the raw data of a catch.
type RegisterCatchRequest struct {
	TeamID    string
	Member    string
	SpeciesID string
	SizeCm    float64
}

// CatchFilters contains filter options for listing catches.
type CatchFilters struct {
	TeamID    string
	SpeciesID string
	Limit     int
}
