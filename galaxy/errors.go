package galaxy

import "fmt"

// DecodeError reports a malformed upstream payload field. It is fatal to the
// single entity being constructed; decoding of sibling entities in the same
// collection fetch continues.
type DecodeError struct {
	Entity string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Entity, e.Reason)
}
