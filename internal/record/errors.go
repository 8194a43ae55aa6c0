package record

import "fmt"

// ValidationError reports caller-supplied input that cannot form a valid
// record: a display value that matches neither key nor label, a missing
// required field, or a mutation on a record without a record id. Always
// recoverable by fixing the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}
