// Package editsession tracks which activity location, if any, is being
// edited. At most one location in a workspace may be under edit.
package editsession

import (
	"errors"
	"fmt"
	"sync"

	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

var (
	// ErrConflictingEdit is returned when another location holds the session.
	ErrConflictingEdit = errors.New("another activity location is being edited")
	// ErrNotSelected is returned when a transition is attempted without a session.
	ErrNotSelected = errors.New("no activity location is being edited")
)

// Session is the single edit lock of a workspace. It is safe for concurrent use.
type Session struct {
	mu                  sync.RWMutex
	selected            models.ActivityLocationID
	mode                models.EditMode
	confirmationPending bool
}

func New() *Session {
	return &Session{mode: models.EditModeNone}
}

// Begin selects id in mode. It fails without side effects when a different
// id is selected; re-beginning the selected id switches its mode.
func (s *Session) Begin(id models.ActivityLocationID, mode models.EditMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected != "" && s.selected != id {
		return fmt.Errorf("%w: %s holds the session", ErrConflictingEdit, s.selected)
	}
	s.selected = id
	s.mode = mode
	return nil
}

// End clears the selection unconditionally.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = ""
	s.mode = models.EditModeNone
	s.confirmationPending = false
}

func (s *Session) Selected() (models.ActivityLocationID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, s.selected != ""
}

func (s *Session) Mode() models.EditMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Authorize reports whether id may transition.
func (s *Session) Authorize(id models.ActivityLocationID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.selected {
	case "":
		return fmt.Errorf("%w: %s", ErrNotSelected, id)
	case id:
		return nil
	default:
		return fmt.Errorf("%w: %s holds the session, not %s", ErrConflictingEdit, s.selected, id)
	}
}

// Available reports whether id could begin an edit now.
func (s *Session) Available(id models.ActivityLocationID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected == "" || s.selected == id
}

func (s *Session) ConfirmationPending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.confirmationPending
}

func (s *Session) SetConfirmationPending(pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmationPending = pending
}

// Rename follows an id reassignment of the selected location.
func (s *Session) Rename(from, to models.ActivityLocationID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == from {
		s.selected = to
	}
}
