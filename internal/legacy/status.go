// Package legacy defines the response shapes and status codes of the
// mapping API this service stays wire-compatible with. Translation
// components produce these shapes; handlers serialize them unchanged.
package legacy

// Status mirrors the legacy API's status enumeration.
type Status string

const (
	StatusOK             Status = "OK"
	StatusZeroResults    Status = "ZERO_RESULTS"
	StatusInvalidRequest Status = "INVALID_REQUEST"
	StatusNotFound       Status = "NOT_FOUND"
	StatusUnknownError   Status = "UNKNOWN_ERROR"
)
