package timeparse

import "fmt"

// ParseError means the phrase could not be understood as a time.
// It is user-facing: the message is shown directly in the chat reply.
type ParseError struct {
	Phrase string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not understand time in %q: %s", e.Phrase, e.Reason)
}

// ValidationError means a time was found but its components are out of range.
type ValidationError struct {
	Phrase string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid time in %q: %s", e.Phrase, e.Reason)
}
