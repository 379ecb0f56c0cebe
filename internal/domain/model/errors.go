package model

import "errors"

// ErrValidation marks domain construction or input failures. Callers match it
// with errors.Is to map onto client-error responses.
var ErrValidation = errors.New("validation failed")
