package discovery

import "errors"

// ErrAmbiguousClass indicates a unit is registered under more than one
// device class, so no class can be picked without guessing. Synthesis of
// the affected descriptor is aborted, never silently resolved.
var ErrAmbiguousClass = errors.New("discovery: ambiguous device class")
