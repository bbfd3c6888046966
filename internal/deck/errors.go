package deck

import (
	"errors"
	"strings"
)

// ErrMalformedDeck is returned when the persisted deck cannot be decoded.
var ErrMalformedDeck = errors.New("deck: persisted deck is malformed")

// ValidationError reports card fields that were empty after trimming.
// Nothing is mutated or persisted when it is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "deck: required field(s) empty: " + strings.Join(e.Fields, ", ")
}
