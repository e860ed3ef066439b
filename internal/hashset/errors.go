package hashset

import "errors"

var (
	// ErrInvalidConfig is returned by New for a non-positive bucket count or load factor limit.
	ErrInvalidConfig = errors.New("invalid set configuration")
	// ErrInvalidElement is returned when an element cannot be hashed (nil, or Hash panicked).
	ErrInvalidElement = errors.New("invalid element")
	// ErrInvalidArgument is returned by Rehash for a target that does not grow the bucket array.
	ErrInvalidArgument = errors.New("invalid argument")
)
