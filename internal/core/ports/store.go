package ports

import "go.trai.ch/envy/internal/core/domain"

// RunRecordStore persists the summary of the last run.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RunRecordStore interface {
	// Get retrieves the record stored under the project root.
	// Returns nil, nil if not found.
	Get(root string) (*domain.RunRecord, error)

	// Put stores the record under the project root.
	Put(root string, record domain.RunRecord) error
}
