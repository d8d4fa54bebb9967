package serializer

import "errors"

var (
	// ErrModelNotRegistered is returned when serializing an instance whose
	// model type never went through Register.
	ErrModelNotRegistered = errors.New("model not registered")

	// ErrMalformedOptions is returned when an options layer has a value of the
	// wrong shape, e.g. exclude_attrs given as a string.
	ErrMalformedOptions = errors.New("malformed serialization options")

	// ErrUnknownAttribute is returned by Record.Attr for a column the record
	// holds no value for.
	ErrUnknownAttribute = errors.New("unknown attribute")
)
