package qaps

import (
	"errors"
	"net/http"
)

// Domain errors for QAP operations.
var (
	ErrNotFound        = errors.New("qap not found")
	ErrDuplicate       = errors.New("qap already exists")
	ErrSessionNotFound = errors.New("editing session not found")

	// ErrInvalidStage signals an operation attempted outside its lifecycle
	// stage, e.g. toggling a department flag before entering the assignment
	// stage. This is a contract violation and is never silently ignored.
	ErrInvalidStage = errors.New("operation not valid in current stage")

	// ErrUnknownSequence signals a sequence number missing from the item
	// list or assignment map. The two collections are kept in agreement by
	// construction, so this indicates a data-consistency bug.
	ErrUnknownSequence = errors.New("unknown sequence number")

	ErrUnknownDepartment = errors.New("unknown department")
	ErrInvalidDecision   = errors.New("invalid match decision")

	// ErrIncompleteHeader is recoverable: submission is refused but the
	// plan can still be saved as a draft.
	ErrIncompleteHeader = errors.New("incomplete header")

	ErrInvalidRequest = errors.New("invalid request")
)

// MapHTTPStatus maps QAP domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrInvalidStage):
		return http.StatusConflict
	case errors.Is(err, ErrIncompleteHeader):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnknownDepartment),
		errors.Is(err, ErrInvalidDecision),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownSequence):
		// Item list and assignment map out of agreement: internal bug,
		// not a client error.
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
