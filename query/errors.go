package query

import "errors"

var (
	// ErrUnknownKind is returned when decoding a node with an unrecognized kind.
	ErrUnknownKind = errors.New("unknown node kind")

	// ErrIndexOutOfRange is returned when a child index is outside a composite.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrNilNode is returned when a nil node is used where a node is required.
	ErrNilNode = errors.New("nil node")
)
