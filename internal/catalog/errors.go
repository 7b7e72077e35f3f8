package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the catalog, graph, view and selection packages.
var (
	ErrDuplicateEntity = errors.New("duplicate entity")
	ErrInvalidAsset    = errors.New("invalid asset")
	ErrNotFound        = errors.New("not found")
	ErrUnknownAsset    = errors.New("unknown asset")
	ErrUnknownArea     = errors.New("unknown area")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// LookupError records which identifier a lookup failed on.
type LookupError struct {
	Kind    string // "asset" or "area"
	ID      string
	Wrapped error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Kind, e.ID, e.Wrapped)
}

func (e *LookupError) Unwrap() error { return e.Wrapped }

// NotFound returns an ErrNotFound lookup error for an asset id.
func NotFound(id string) error {
	return &LookupError{Kind: "asset", ID: id, Wrapped: ErrNotFound}
}

// UnknownAsset returns an ErrUnknownAsset lookup error.
func UnknownAsset(id string) error {
	return &LookupError{Kind: "asset", ID: id, Wrapped: ErrUnknownAsset}
}

// UnknownArea returns an ErrUnknownArea lookup error.
func UnknownArea(name string) error {
	return &LookupError{Kind: "area", ID: name, Wrapped: ErrUnknownArea}
}
