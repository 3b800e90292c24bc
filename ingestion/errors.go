package ingestion

import "errors"

var (
	// ErrItemRepositoryRequired is returned when an item repository is not provided.
	ErrItemRepositoryRequired = errors.New("item repository required")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrInvalidBatchSize is returned when the write batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrShortDescription is recorded for items whose description is below the minimum length.
	ErrShortDescription = errors.New("description too short")

	// ErrDuplicateTitle is recorded for items repeating an earlier title in the same run.
	ErrDuplicateTitle = errors.New("duplicate title")
)
