package domain

import "context"

// ReaderPort serves reference population lookups
type ReaderPort interface {
	// List returns all state rows ordered by state name
	List(ctx context.Context) ([]StateDemographics, error)

	// RegisteredVoters returns the registered voter count for one state,
	// 0 with no error when the state is unknown
	RegisteredVoters(ctx context.Context, state string) (int64, error)

	// NationalRegisteredVoters sums registered voters across all states
	NationalRegisteredVoters(ctx context.Context) (int64, error)
}

// LoaderPort replaces the demographics table from a CSV file
type LoaderPort interface {
	// LoadCSV parses path and replaces all rows in one transaction.
	// Returns the number of rows loaded
	LoadCSV(ctx context.Context, path string) (int, error)
}

// StorageRepo is the persistence surface for demographics
type StorageRepo interface {
	List(ctx context.Context) ([]StateDemographics, error)
	RegisteredVoters(ctx context.Context, state string) (int64, error)
	NationalRegisteredVoters(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
	InsertBatch(ctx context.Context, rows []StateDemographics) error
}
