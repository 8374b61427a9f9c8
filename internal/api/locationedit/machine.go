// Package locationedit implements the activity location edit flows: choosing
// a place through the gazetteer cascade or search, adding or editing a
// precise location, and cancelling back to the last committed state.
package locationedit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-activity-locations/app/observability/metrics"
	"github.com/FACorreiaa/go-activity-locations/internal/api/editsession"
	"github.com/FACorreiaa/go-activity-locations/internal/api/gazetteer"
	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

type Config struct {
	// PreciseEpsilon is the minimum distance, in degrees, between a precise
	// location and its default location.
	PreciseEpsilon float64
}

// editCycle is the one edit in progress.
type editCycle struct {
	id    models.ActivityLocationID
	state State
	// loc is the edited location. For a new location it stays nil until a
	// place resolves, and it joins the collection only on commit.
	loc     *models.ActivityLocation
	isNew   bool
	cascade Cascade
	action  preciseAction
	// prior is the precise location as it was before the current attempt.
	prior    models.LocationSnapshot
	hasPrior bool
	message  string
}

// Machine owns the activity locations of one activity and drives their edit
// flows. It is safe for concurrent use. Gazetteer lookups run without the
// lock held and their results apply only if no other transition for the
// same location happened meanwhile.
type Machine struct {
	mu         sync.Mutex
	activityID string
	gazetteer  gazetteer.Client
	session    *editsession.Session
	publisher  Publisher
	cfg        Config
	logger     *slog.Logger

	locations map[models.ActivityLocationID]*models.ActivityLocation
	order     []models.ActivityLocationID
	// tokens counts accepted transitions per location; a lookup carries the
	// token current at dispatch.
	tokens  map[models.ActivityLocationID]uint64
	dirty   map[models.ActivityLocationID]uint64
	removed map[models.ActivityLocationID]struct{}
	seq     uint64
	edit    *editCycle
}

func NewMachine(activityID string, locations []*models.ActivityLocation, gz gazetteer.Client,
	session *editsession.Session, publisher Publisher, cfg Config, logger *slog.Logger) *Machine {
	if cfg.PreciseEpsilon <= 0 {
		cfg.PreciseEpsilon = models.DefaultPreciseEpsilon
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}
	m := &Machine{
		activityID: activityID,
		gazetteer:  gz,
		session:    session,
		publisher:  publisher,
		cfg:        cfg,
		logger:     logger.With(slog.String("activity_id", activityID)),
		locations:  make(map[models.ActivityLocationID]*models.ActivityLocation, len(locations)),
		tokens:     make(map[models.ActivityLocationID]uint64),
		dirty:      make(map[models.ActivityLocationID]uint64),
		removed:    make(map[models.ActivityLocationID]struct{}),
	}
	for _, al := range locations {
		m.locations[al.ID()] = al
		m.order = append(m.order, al.ID())
	}
	return m
}

func (m *Machine) ActivityID() string { return m.activityID }

// State returns the edit state of id.
func (m *Machine) State(id models.ActivityLocationID) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateOf(id)
}

// Location returns a copy of the location, including a draft under edit.
func (m *Machine) Location(id models.ActivityLocationID) (*models.ActivityLocation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if al := m.lookup(id); al != nil {
		return al.Clone(), true
	}
	return nil, false
}

// Cancel abandons the edit of id and restores its last committed state. A
// new location that was never added is discarded.
func (m *Machine) Cancel(id models.ActivityLocationID) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.authorize(id); err != nil {
		return Outcome{}, m.reject(id, err)
	}
	e := m.edit
	if e.isNew {
		m.transition(StateCommitted)
		m.session.End()
		m.publisher.Publish(Event{Type: EventDiscarded, ActivityID: m.activityID, ActivityLocationID: id,
			EditMode: models.EditModeNone, State: StateCommitted})
		m.edit = nil
		return Outcome{ActivityLocationID: id, State: StateCommitted}, nil
	}

	rbErr := e.loc.Rollback()
	out := m.finish("")
	if rbErr != nil {
		m.logger.Error("Rollback fell back to the default location",
			slog.String("activity_location_id", id.String()), slog.Any("error", rbErr))
		return out, fmt.Errorf("failed to roll back %s: %w", id, rbErr)
	}
	return out, nil
}

// RemoveLocation deletes id from the collection. It fails while a different
// location is being edited; an edit of id itself is abandoned.
func (m *Machine) RemoveLocation(id models.ActivityLocationID) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	al, ok := m.locations[id]
	if !ok {
		return Outcome{}, m.reject(id, fmt.Errorf("%w: %s", ErrNotFound, id))
	}
	if !m.session.Available(id) {
		return Outcome{}, m.reject(id, fmt.Errorf("%w: cannot remove %s", ErrConflictingEdit, id))
	}
	if m.edit != nil && m.edit.id == id {
		m.session.End()
		m.edit = nil
	}

	msg := "Removed " + al.DefaultLocation().PlaceName()
	ev := m.event(EventRemoved, id)
	ev.State, ev.EditMode, ev.Message = StateCommitted, models.EditModeNone, msg

	delete(m.locations, id)
	delete(m.dirty, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if !id.IsTemporary() {
		m.removed[id] = struct{}{}
	}
	m.dispatch(id)
	m.publisher.Publish(ev)
	m.logger.Info("Activity location removed", slog.String("activity_location_id", id.String()))
	return Outcome{ActivityLocationID: id, State: StateCommitted, Message: msg}, nil
}

// authorize checks that id holds the session and has an edit in progress.
func (m *Machine) authorize(id models.ActivityLocationID) error {
	if err := m.session.Authorize(id); err != nil {
		if errors.Is(err, editsession.ErrNotSelected) {
			return fmt.Errorf("%w: %w", ErrInvalidTransition, err)
		}
		return err
	}
	if m.edit == nil || m.edit.id != id {
		return fmt.Errorf("%w: %s has no edit in progress", ErrInvalidTransition, id)
	}
	return nil
}

// expect checks the current edit is in one of states.
func (m *Machine) expect(states ...State) error {
	for _, s := range states {
		if m.edit.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: not allowed in state %s", ErrInvalidTransition, m.edit.state)
}

// begin starts an edit cycle on a location of the collection.
func (m *Machine) begin(id models.ActivityLocationID, mode models.EditMode) (*models.ActivityLocation, error) {
	al, ok := m.locations[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if m.edit != nil && m.edit.id == id {
		return nil, fmt.Errorf("%w: %s is already being edited", ErrInvalidTransition, id)
	}
	if err := m.session.Begin(id, mode); err != nil {
		return nil, err
	}
	al.SetEditMode(mode)
	m.edit = &editCycle{id: id, state: StateCommitted, loc: al}
	return al, nil
}

// dispatch invalidates outstanding lookups for id and returns the new token.
func (m *Machine) dispatch(id models.ActivityLocationID) uint64 {
	m.tokens[id]++
	return m.tokens[id]
}

// current reports whether a lookup dispatched with tok may still apply.
func (m *Machine) current(id models.ActivityLocationID, tok uint64) bool {
	return m.edit != nil && m.edit.id == id && m.tokens[id] == tok
}

func (m *Machine) transition(to State) uint64 {
	from := m.edit.state
	m.edit.state = to
	metrics.Get().TransitionsTotal.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("from", string(from)), attribute.String("to", string(to))))
	m.logger.Debug("Location edit transition",
		slog.String("activity_location_id", m.edit.id.String()),
		slog.String("from", string(from)), slog.String("to", string(to)))
	return m.dispatch(m.edit.id)
}

// finish commits the edit cycle's end: the edit flag is cleared, the
// session released and views notified.
func (m *Machine) finish(message string) Outcome {
	e := m.edit
	e.message = message
	if e.loc != nil {
		e.loc.SetEditMode(models.EditModeNone)
	}
	m.transition(StateCommitted)
	m.session.End()
	m.publish(e.id)
	m.edit = nil
	return Outcome{ActivityLocationID: e.id, State: StateCommitted, Message: message}
}

func (m *Machine) markDirty(id models.ActivityLocationID) {
	m.seq++
	m.dirty[id] = m.seq
}

func (m *Machine) addLocation(al *models.ActivityLocation) {
	m.locations[al.ID()] = al
	m.order = append(m.order, al.ID())
}

func (m *Machine) lookup(id models.ActivityLocationID) *models.ActivityLocation {
	if m.edit != nil && m.edit.id == id {
		return m.edit.loc
	}
	return m.locations[id]
}

func (m *Machine) stateOf(id models.ActivityLocationID) State {
	if m.edit != nil && m.edit.id == id {
		return m.edit.state
	}
	return StateCommitted
}

func (m *Machine) outcome() Outcome {
	return Outcome{ActivityLocationID: m.edit.id, State: m.edit.state, Message: m.edit.message}
}

func (m *Machine) outcomeFor(id models.ActivityLocationID) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.edit != nil && m.edit.id == id {
		return m.outcome()
	}
	return Outcome{ActivityLocationID: id, State: StateCommitted}
}

func (m *Machine) event(t EventType, id models.ActivityLocationID) Event {
	ev := Event{
		Type:               t,
		ActivityID:         m.activityID,
		ActivityLocationID: id,
		EditMode:           models.EditModeNone,
		State:              m.stateOf(id),
	}
	if m.edit != nil && m.edit.id == id {
		ev.Message = m.edit.message
	}
	if al := m.lookup(id); al != nil {
		def := al.DefaultLocation()
		ev.DefaultLocation = &def
		if p, ok := al.PreciseLocation(); ok {
			ev.PreciseLocation = &p
		}
		ev.EditMode = al.EditMode()
	}
	return ev
}

func (m *Machine) publish(id models.ActivityLocationID) {
	m.publisher.Publish(m.event(EventUpdated, id))
}

func (m *Machine) reject(id models.ActivityLocationID, err error) error {
	reason := rejectReason(err)
	metrics.Get().RejectedTransitionsTotal.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("reason", reason)))
	m.logger.Warn("Location edit request rejected",
		slog.String("activity_location_id", id.String()),
		slog.String("state", string(m.stateOf(id))),
		slog.String("reason", reason),
		slog.Any("error", err))
	return err
}

func (m *Machine) stale(id models.ActivityLocationID, op string) error {
	metrics.Get().StaleResponsesDiscarded.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("op", op)))
	m.logger.Debug("Discarding stale gazetteer response",
		slog.String("activity_location_id", id.String()), slog.String("op", op))
	return fmt.Errorf("%w: %s for %s", ErrStaleResponse, op, id)
}
