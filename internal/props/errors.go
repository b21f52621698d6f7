package props

import (
	"errors"
	"fmt"
)

// ErrUnknownToken is wrapped by every enum parse failure.
var ErrUnknownToken = errors.New("unknown token")

// PropError reports why a <prop> element was skipped.
type PropError struct {
	Index     int // zero-based position of the <prop> element
	ModelName string
	Field     string
	Err       error
}

func (e *PropError) Error() string {
	return fmt.Sprintf("prop #%d (%q) field %s: %v", e.Index, e.ModelName, e.Field, e.Err)
}

func (e *PropError) Unwrap() error {
	return e.Err
}
