package schema

import "errors"

var (
	// ErrFileNotFound is returned when a requested file is absent from the descriptor set
	ErrFileNotFound = errors.New("file not found in descriptor set")

	// ErrMissingSourceInfo is returned when a requested file carries no source code info
	ErrMissingSourceInfo = errors.New("descriptor has no source code info")

	// ErrUnresolvedTypeReference is returned when a referenced type is not present in the index
	ErrUnresolvedTypeReference = errors.New("unresolved type reference")

	// ErrMalformedTypeReference is returned when a type reference cannot be split into package and name
	ErrMalformedTypeReference = errors.New("malformed type reference")
)
