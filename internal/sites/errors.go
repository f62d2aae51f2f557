package sites

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a chapter index beyond what the site currently has.
// It ends a run successfully rather than failing it.
var ErrNotFound = errors.New("chapter not found")

// TransientError covers network and render timeouts. Worth one retry.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient: %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func transient(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// StructuralError means the page loaded but the DOM the adapter expects
// is missing, usually a sign the site changed its markup.
type StructuralError struct {
	Site   string
	Detail string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: page structure mismatch: %s", e.Site, e.Detail)
}

func structural(site, detail string) error {
	return &StructuralError{Site: site, Detail: detail}
}
