package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates an attempt to register something that already
// exists; callers treat it as a no-op success, not a failure.
var ErrDuplicate = errors.New("resource already exists")

// ErrNoTransaction indicates that operator bulk-entry text carried no
// recognizable transaction grammar.
var ErrNoTransaction = errors.New("no transaction details found")
