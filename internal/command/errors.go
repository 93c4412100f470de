package command

import "errors"

// Parsing errors surfaced to the user as chat replies. They are never fatal
// and never retried.
var (
	ErrEmptyEvent = errors.New("event text is empty")
	ErrNoTime     = errors.New("no time given (expected: title / when / minutes)")
)
