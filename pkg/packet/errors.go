package packet

import (
	"errors"
	"fmt"
)

// InvalidTypeError reports a packet type identifier that could not be
// resolved, or a reply request the source type does not permit.
type InvalidTypeError struct {
	Type   string
	Reason string
}

func (e *InvalidTypeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("packet: %s", e.Reason)
	}
	return fmt.Sprintf("packet: type %q: %s", e.Type, e.Reason)
}

// InvalidDataError reports a field whose value is missing or malformed.
type InvalidDataError struct {
	Field  string
	Reason string
}

func (e *InvalidDataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("packet: %s", e.Reason)
	}
	return fmt.Sprintf("packet: field %q: %s", e.Field, e.Reason)
}

// IsInvalidType reports whether err is an InvalidTypeError.
func IsInvalidType(err error) bool {
	var e *InvalidTypeError
	return errors.As(err, &e)
}

// IsInvalidData reports whether err is an InvalidDataError.
func IsInvalidData(err error) bool {
	var e *InvalidDataError
	return errors.As(err, &e)
}
