package service

import "errors"

// Service-level error taxonomy. Handlers translate these into HTTP results;
// validation failures carry their field map as a domain.ValidationErrors
// value and are matched with errors.As.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrDuplicateName = errors.New("an entry with this name already exists")
	ErrNoChanges     = errors.New("no changes were made")
)
