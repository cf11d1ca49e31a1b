package config

import "errors"

var (
	// ErrParsingConfig indicates environment variables could not be
	// parsed into the config struct.
	ErrParsingConfig = errors.New("config: failed to parse environment")

	// ErrNilPointer indicates a nil pointer was passed to Load.
	ErrNilPointer = errors.New("config: nil pointer")
)
