package facts

import "errors"

var (
	ErrFactNotFound    = errors.New("fact not found")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidCounter  = errors.New("invalid vote counter")
	ErrInvalidVotes    = errors.New("vote counters cannot be negative")
)
