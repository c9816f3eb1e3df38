package interfaces

import "errors"

var (
	// ErrNotFound means no document matched the id.
	ErrNotFound = errors.New("document not found")

	// ErrPreconditionFailed means the document exists but its current state no
	// longer matches the expected status of a conditional update. The caller
	// can distinguish "someone else already moved it" from "not found".
	ErrPreconditionFailed = errors.New("precondition failed")
)
