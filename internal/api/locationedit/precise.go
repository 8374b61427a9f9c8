package locationedit

import (
	"errors"
	"fmt"

	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

// BeginPreciseEdit starts adding or editing the precise location of an
// existing location, skipping the precise prompt.
func (m *Machine) BeginPreciseEdit(id models.ActivityLocationID, method PreciseMethod) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	al, err := m.begin(id, models.EditModeEditingPrecise)
	if err != nil {
		return Outcome{}, m.reject(id, err)
	}
	m.edit.action = actionAdding
	if _, ok := al.PreciseLocation(); ok {
		m.edit.action = actionEditing
	}
	m.enterPrecise(method)
	return m.outcome(), nil
}

// ChoosePrecise answers the prompt shown after a new place is confirmed, or
// after a precise location was rejected. Skipping is only possible for a
// location that has not been added yet.
func (m *Machine) ChoosePrecise(id models.ActivityLocationID, choice PreciseChoice) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(id); err != nil {
		return Outcome{}, m.reject(id, err)
	}
	if err := m.expect(StatePromptPrecise); err != nil {
		return m.outcome(), m.reject(id, err)
	}

	switch choice {
	case ChoiceDrag:
		m.enterPrecise(MethodDrag)
	case ChoiceCoordinates:
		m.enterPrecise(MethodCoordinates)
	case ChoiceSkip:
		if !m.edit.isNew {
			return m.outcome(), m.reject(id, fmt.Errorf("%w: only a new location can skip its precise location", ErrInvalidTransition))
		}
		return m.commitNew(), nil
	default:
		return m.outcome(), m.reject(id, fmt.Errorf("%w: unknown precise choice %q", ErrInvalidTransition, choice))
	}
	return m.outcome(), nil
}

// DropMarker proposes the coordinate a marker was dragged to.
func (m *Machine) DropMarker(id models.ActivityLocationID, at models.Coordinate) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(id); err != nil {
		return Outcome{}, m.reject(id, err)
	}
	if err := m.expect(StateDraggingPrecise); err != nil {
		return m.outcome(), m.reject(id, err)
	}
	return m.preciseChosen(models.NewPreciseSnapshot(at))
}

// SubmitCoordinates proposes a typed coordinate pair. Invalid input leaves
// the location entering coordinates with a message.
func (m *Machine) SubmitCoordinates(id models.ActivityLocationID, latText, lngText string) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(id); err != nil {
		return Outcome{}, m.reject(id, err)
	}
	if err := m.expect(StateEnteringCoordinates); err != nil {
		return m.outcome(), m.reject(id, err)
	}
	c, err := ValidateCoordinates(latText, lngText, m.edit.loc.DefaultLocation().Coordinate(), m.cfg.PreciseEpsilon)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			m.edit.message = ve.Message
			m.publish(id)
		}
		return m.outcome(), m.reject(id, err)
	}
	return m.preciseChosen(models.NewPreciseSnapshot(c))
}

// RemovePreciseLocation clears the precise location of a location that is
// not being edited, and commits.
func (m *Machine) RemovePreciseLocation(id models.ActivityLocationID) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	al, ok := m.locations[id]
	if !ok {
		return Outcome{}, m.reject(id, fmt.Errorf("%w: %s", ErrNotFound, id))
	}
	if selected, held := m.session.Selected(); held {
		if selected != id {
			return Outcome{}, m.reject(id, fmt.Errorf("%w: %s holds the session", ErrConflictingEdit, selected))
		}
		return Outcome{}, m.reject(id, fmt.Errorf("%w: %s is being edited", ErrInvalidTransition, id))
	}
	if _, has := al.PreciseLocation(); !has {
		return Outcome{}, m.reject(id, fmt.Errorf("%w: %s has no precise location", ErrInvalidTransition, id))
	}

	al.ClearPreciseLocation()
	al.Commit()
	m.markDirty(id)
	m.dispatch(id)
	msg := al.DefaultLocation().PlaceName() + "'s precise location removed"
	ev := m.event(EventUpdated, id)
	ev.Message = msg
	m.publisher.Publish(ev)
	return Outcome{ActivityLocationID: id, State: StateCommitted, Message: msg}, nil
}

func (m *Machine) enterPrecise(method PreciseMethod) {
	e := m.edit
	e.prior, e.hasPrior = e.loc.PreciseLocation()
	e.message = ""
	if method == MethodCoordinates {
		m.transition(StateEnteringCoordinates)
	} else {
		m.transition(StateDraggingPrecise)
	}
	m.publish(e.id)
}

// preciseChosen makes candidate the working precise location and asks for
// confirmation, unless it is exactly what was last committed.
func (m *Machine) preciseChosen(candidate models.LocationSnapshot) (Outcome, error) {
	e := m.edit
	if err := e.loc.SetPreciseLocation(candidate, m.cfg.PreciseEpsilon); err != nil {
		if errors.Is(err, models.ErrPreciseMatchesDefault) {
			err = validationError(msgSameAsPlace)
			e.message = msgSameAsPlace
			m.publish(e.id)
		}
		return m.outcome(), m.reject(e.id, err)
	}

	if committed, ok := e.loc.LastCommitted(); ok && committed.Equal(e.loc.Working()) {
		return m.finish(""), nil
	}
	e.message = ""
	m.session.SetConfirmationPending(true)
	m.transition(StateConfirmingPrecise)
	m.publish(e.id)
	return m.outcome(), nil
}

// confirmPrecise answers the precise confirmation prompt. Rejecting puts
// back the precise location the attempt started from.
func (m *Machine) confirmPrecise(answer Answer) Outcome {
	e := m.edit
	m.session.SetConfirmationPending(false)

	if answer == AnswerNo {
		if e.hasPrior {
			if err := e.loc.SetPreciseLocation(e.prior, m.cfg.PreciseEpsilon); err != nil {
				e.loc.ClearPreciseLocation()
			}
		} else {
			e.loc.ClearPreciseLocation()
		}
		e.message = ""
		m.transition(StatePromptPrecise)
		m.publish(e.id)
		return m.outcome()
	}

	if e.isNew {
		return m.commitNew()
	}
	e.loc.Commit()
	m.markDirty(e.id)
	name := e.loc.DefaultLocation().PlaceName()
	if e.action == actionAdding {
		return m.finish(name + "'s precise location added!")
	}
	return m.finish(name + "'s precise location successfully edited!")
}

// commitNew adds a new location to the collection.
func (m *Machine) commitNew() Outcome {
	e := m.edit
	e.loc.Commit()
	m.addLocation(e.loc)
	m.markDirty(e.id)
	return m.finish(e.loc.DefaultLocation().PlaceName() + " added!")
}
