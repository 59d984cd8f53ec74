package measurement

import "errors"

// Domain-specific errors for the measurement core.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNodeNotFound is returned when an operation references a node
	// that has not been registered.
	ErrNodeNotFound = errors.New("measurement: node not found")

	// ErrNodeExists is returned when registering a node ID twice.
	ErrNodeExists = errors.New("measurement: node already registered")

	// ErrKeyFiltered is returned when a filtered key is observed
	// directly; filter keys never become registry entries.
	ErrKeyFiltered = errors.New("measurement: key is filtered")

	// ErrInvalidNodeConfig is returned for a node configuration that
	// cannot be registered.
	ErrInvalidNodeConfig = errors.New("measurement: invalid node configuration")
)
