package manifest

import (
	"fmt"
	"strings"
)

// ValidationErrors accumulates every field-level validation failure instead
// of stopping at the first, grounded on the teacher's ErrorHandler
// (internal/search/errors.go) which collects rather than short-circuits.
type ValidationErrors []error

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	parts := make([]string, len(ve))
	for i, err := range ve {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(ve), strings.Join(parts, "; "))
}

func (ve *ValidationErrors) add(format string, args ...any) {
	*ve = append(*ve, fmt.Errorf(format, args...))
}
