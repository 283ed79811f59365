package savegame

import "errors"

// Sentinel kinds for save-slot errors.
var (
	ErrNotFound    = errors.New("save not found")
	ErrInvalidSave = errors.New("invalid save payload")
)
