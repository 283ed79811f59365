package dataset

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrMissingDataset = errors.New("required dataset missing")
	ErrNotLoaded      = errors.New("datasets not loaded")
)
