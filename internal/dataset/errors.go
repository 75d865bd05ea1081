package dataset

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Load failures. They abort startup and are never retried.
var (
	// ErrFileNotFound indicates the dataset file does not exist.
	ErrFileNotFound = constError("dataset file not found")

	// ErrMissingSection indicates a required table is absent from the file.
	ErrMissingSection = constError("missing required section")

	// ErrUnsupportedVersion indicates a dataset schema version this build
	// cannot read.
	ErrUnsupportedVersion = constError("unsupported dataset version")

	// ErrMalformed indicates the file is not a valid dataset document.
	ErrMalformed = constError("malformed dataset")
)

// LoadError wraps a load failure with the source it came from.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
