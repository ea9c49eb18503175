package classifier

import "fmt"

// LoadErrorKind tells a missing artifact apart from a broken one.
type LoadErrorKind string

const (
	// LoadMissing means the artifact file could not be located or read.
	LoadMissing LoadErrorKind = "missing"
	// LoadCorrupt means the file could not be decoded.
	LoadCorrupt LoadErrorKind = "corrupt"
	// LoadIncompatible means the file decoded but does not describe a usable model.
	LoadIncompatible LoadErrorKind = "incompatible"
)

// LoadError is returned when an artifact cannot be loaded at startup.
type LoadError struct {
	Path string
	Kind LoadErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load model artifact %s (%s): %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ScoringError is returned when a model rejects the record it is given.
type ScoringError struct {
	Model string
	Err   error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("model %s rejected record: %v", e.Model, e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }
