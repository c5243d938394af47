package schema

import (
	"errors"
	"fmt"
)

// ErrDecode matches every *DecodeError via errors.Is.
var ErrDecode = errors.New("schema decode failed")

// DecodeError reports a malformed or ambiguous schema.
// Path locates the enclosing object ("$[0].attributes.normal"), Key names the
// offending key within it when there is one.
type DecodeError struct {
	Path   string
	Key    string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	loc := e.Path
	if e.Key != "" {
		loc = e.Path + "." + e.Key
	}
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", loc, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", loc, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDecode) true for every DecodeError.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
