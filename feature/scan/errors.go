package scan

import (
	"errors"
	"fmt"
)

// ErrScanNotFound reports that no report exists for a scan id.
// It is terminal: no operation has partial effect after it.
var ErrScanNotFound = errors.New("scan not found")

// ErrItemNotFound reports that a referenced item key is not in the gallery.
var ErrItemNotFound = errors.New("item not found")

// ValidationError rejects an operation before any mutation is applied.
// The message always names the offending values.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a missing-scan or missing-item error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScanNotFound) || errors.Is(err, ErrItemNotFound)
}
