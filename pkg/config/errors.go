package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the config struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrEnvironmentsFile is returned when the environments registry
	// cannot be read or parsed.
	ErrEnvironmentsFile = errors.New("failed to load environments file")

	// ErrUnknownEnvironment is returned when a requested environment label
	// is not present in the registry.
	ErrUnknownEnvironment = errors.New("unknown environment")

	// ErrInvalidEnvironment is returned when an environment entry is
	// missing required fields.
	ErrInvalidEnvironment = errors.New("invalid environment entry")
)
