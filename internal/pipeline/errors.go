package pipeline

import "errors"

// ErrUnknownVersion indicates a request for a firmware version that was
// never discovered in the loaded export.
var ErrUnknownVersion = errors.New("pipeline: unknown firmware version")
