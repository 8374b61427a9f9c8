package locationedit

import (
	"errors"

	"github.com/FACorreiaa/go-activity-locations/internal/api/editsession"
	"github.com/FACorreiaa/go-activity-locations/internal/api/gazetteer"
	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

var (
	ErrLookupFailed          = gazetteer.ErrLookupFailed
	ErrValidationFailed      = errors.New("validation failed")
	ErrConflictingEdit       = editsession.ErrConflictingEdit
	ErrRollbackInconsistency = models.ErrRollbackInconsistency
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrStaleResponse         = errors.New("stale gazetteer response discarded")
	ErrNotFound              = errors.New("activity location not found")
	ErrSaveFailed            = errors.New("saving activity locations failed")
)

// ValidationError carries the message shown when re-prompting for input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

func validationError(msg string) error { return &ValidationError{Message: msg} }

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrConflictingEdit):
		return "conflicting_edit"
	case errors.Is(err, ErrValidationFailed):
		return "validation"
	case errors.Is(err, ErrLookupFailed):
		return "lookup"
	case errors.Is(err, ErrStaleResponse):
		return "stale"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRollbackInconsistency):
		return "rollback"
	default:
		return "invalid_transition"
	}
}
