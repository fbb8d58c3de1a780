package state

import "errors"

var (
	// ErrBusy is returned when an action is already in flight for the same target
	ErrBusy = errors.New("operation already in progress")

	// ErrUnknownFilter is returned for a category filter that is neither "all" nor registered
	ErrUnknownFilter = errors.New("unknown category filter")
)
