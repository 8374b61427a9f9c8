package locationedit

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-activity-locations/internal/api/gazetteer"
	"github.com/FACorreiaa/go-activity-locations/internal/models"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

// BeginNewLocation reserves a temporary id and starts choosing its place.
func (m *Machine) BeginNewLocation() (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := models.NewTemporaryID()
	if err := m.session.Begin(id, models.EditModeEditingPlace); err != nil {
		return Outcome{}, m.reject(id, err)
	}
	m.edit = &editCycle{id: id, state: StateCommitted, isNew: true}
	m.transition(StateSelectingPlace)
	m.publish(id)
	return m.outcome(), nil
}

// BeginPlaceEdit starts changing the place of an existing location. The
// cascade starts out on the current place.
func (m *Machine) BeginPlaceEdit(ctx context.Context, id models.ActivityLocationID) (Outcome, error) {
	m.mu.Lock()
	al, err := m.begin(id, models.EditModeEditingPlace)
	if err != nil {
		defer m.mu.Unlock()
		return Outcome{}, m.reject(id, err)
	}
	m.edit.cascade = cascadeFromSnapshot(al.DefaultLocation())
	tok := m.transition(StateSelectingPlace)
	m.publish(id)
	m.mu.Unlock()

	m.fill(ctx, id, tok)
	return m.outcomeFor(id), nil
}

// SelectRegion discards any lower selection and cascades from region.
func (m *Machine) SelectRegion(ctx context.Context, id models.ActivityLocationID, region string) (Outcome, error) {
	return m.selectLevel(ctx, id, func(c *Cascade) error {
		c.selectRegion(types.AdminOption{Key: region, Name: region})
		return nil
	})
}

func (m *Machine) SelectMunicipal(ctx context.Context, id models.ActivityLocationID, municipal string) (Outcome, error) {
	return m.selectLevel(ctx, id, func(c *Cascade) error {
		if c.Region == nil {
			return fmt.Errorf("%w: no region selected", ErrInvalidTransition)
		}
		opt := types.AdminOption{Key: municipal, Name: municipal}
		if c.municipalLoaded {
			var ok bool
			if opt, ok = c.findMunicipal(municipal); !ok {
				return validationError(fmt.Sprintf("%s is not a municipal of %s", municipal, c.Region.Name))
			}
		}
		c.selectMunicipal(opt)
		return nil
	})
}

func (m *Machine) SelectPlace(ctx context.Context, id models.ActivityLocationID, gazetteerID string) (Outcome, error) {
	return m.selectLevel(ctx, id, func(c *Cascade) error {
		if c.Municipal == nil {
			return fmt.Errorf("%w: no municipal selected", ErrInvalidTransition)
		}
		opt := types.AdminOption{Key: gazetteerID, GazetteerID: gazetteerID}
		if c.placeLoaded {
			var ok bool
			if opt, ok = c.findPlace(gazetteerID); !ok {
				return validationError(fmt.Sprintf("%s is not a place of %s", gazetteerID, c.Municipal.Name))
			}
		}
		c.selectPlace(opt)
		return nil
	})
}

// SelectSearchResult makes a search hit the place, skipping the cascade
// levels above it. Only the gazetteer id is taken from the hit; the place
// itself is resolved through the gazetteer.
func (m *Machine) SelectSearchResult(ctx context.Context, id models.ActivityLocationID, gazetteerID string) (Outcome, error) {
	m.mu.Lock()
	if err := m.canSelect(id); err != nil {
		defer m.mu.Unlock()
		return Outcome{}, m.reject(id, err)
	}
	cp := m.checkpoint()
	if m.edit.state == StateConfirmingPlace {
		m.withdrawPlace()
	}
	m.edit.cascade = Cascade{Place: &types.AdminOption{Key: gazetteerID, GazetteerID: gazetteerID}}
	m.edit.message = ""
	tok := m.transition(StateSelectingPlace)
	m.publish(id)
	m.mu.Unlock()

	snap, err := m.gazetteer.GetPlaceDetail(ctx, gazetteerID)

	m.mu.Lock()
	if !m.current(id, tok) {
		defer m.mu.Unlock()
		return Outcome{}, m.stale(id, gazetteer.OpPlaceDetail)
	}
	if err != nil {
		defer m.mu.Unlock()
		m.restore(cp)
		m.edit.message = stepPlaceDetail.message()
		m.publish(id)
		return m.outcome(), m.reject(id, err)
	}
	m.edit.cascade = cascadeFromSnapshot(snap)
	out, err := m.placeResolved(snap)
	if err != nil || m.edit == nil || m.edit.id != id {
		m.mu.Unlock()
		return out, err
	}
	tok = m.tokens[id]
	m.mu.Unlock()

	m.fill(ctx, id, tok)
	return out, nil
}

// canSelect checks id may change its cascade. Choosing again while a place
// awaits confirmation counts as rejecting that place.
func (m *Machine) canSelect(id models.ActivityLocationID) error {
	if err := m.authorize(id); err != nil {
		return err
	}
	return m.expect(StateSelectingPlace, StateConfirmingPlace)
}

func (m *Machine) selectLevel(ctx context.Context, id models.ActivityLocationID, apply func(c *Cascade) error) (Outcome, error) {
	m.mu.Lock()
	if err := m.canSelect(id); err != nil {
		defer m.mu.Unlock()
		return Outcome{}, m.reject(id, err)
	}
	next := m.edit.cascade
	if err := apply(&next); err != nil {
		defer m.mu.Unlock()
		return m.outcome(), m.reject(id, err)
	}
	cp := m.checkpoint()
	if m.edit.state == StateConfirmingPlace {
		m.withdrawPlace()
	}
	m.edit.cascade = next
	m.edit.message = ""
	tok := m.transition(StateSelectingPlace)
	m.publish(id)
	m.mu.Unlock()

	return m.resolve(ctx, id, tok, cp)
}

// resolve walks the cascade down from the lowest selected level, one lookup
// at a time, auto-selecting single options. A failed lookup puts the edit
// back to cp.
func (m *Machine) resolve(ctx context.Context, id models.ActivityLocationID, tok uint64, cp checkpoint) (Outcome, error) {
	for {
		m.mu.Lock()
		if !m.current(id, tok) {
			defer m.mu.Unlock()
			return Outcome{}, m.stale(id, gazetteer.OpAdminOptions)
		}
		c := m.edit.cascade
		step := c.next()
		switch {
		case step == stepNone:
			defer m.mu.Unlock()
			return m.outcome(), nil
		case step == stepPlaceDetail && m.edit.loc != nil && m.edit.loc.DefaultLocation().GazetteerID() == c.Place.GazetteerID:
			// Already the working place; no lookup needed.
			defer m.mu.Unlock()
			return m.placeResolved(m.edit.loc.DefaultLocation())
		}
		m.mu.Unlock()

		var (
			opts []types.AdminOption
			snap models.LocationSnapshot
			err  error
			op   = gazetteer.OpAdminOptions
		)
		switch step {
		case stepMunicipalOptions:
			opts, err = m.gazetteer.ListAdminOptions(ctx, types.AdminLevelMunicipal, c.Region.Key)
		case stepPlaceOptions:
			opts, err = m.gazetteer.ListAdminOptions(ctx, types.AdminLevelPlace, c.Municipal.Key)
		case stepPlaceDetail:
			op = gazetteer.OpPlaceDetail
			snap, err = m.gazetteer.GetPlaceDetail(ctx, c.Place.GazetteerID)
		}

		m.mu.Lock()
		if !m.current(id, tok) {
			defer m.mu.Unlock()
			return Outcome{}, m.stale(id, op)
		}
		if err != nil {
			defer m.mu.Unlock()
			m.restore(cp)
			m.edit.message = step.message()
			m.publish(id)
			return m.outcome(), m.reject(id, err)
		}
		switch step {
		case stepMunicipalOptions:
			m.edit.cascade.applyMunicipalOptions(opts)
		case stepPlaceOptions:
			m.edit.cascade.applyPlaceOptions(opts)
		case stepPlaceDetail:
			defer m.mu.Unlock()
			return m.placeResolved(snap)
		}
		m.mu.Unlock()
	}
}

// fill loads the option lists for levels that are already selected. Both
// lists are fetched concurrently and applied top-down. Failures only leave
// a message.
func (m *Machine) fill(ctx context.Context, id models.ActivityLocationID, tok uint64) {
	m.mu.Lock()
	if !m.current(id, tok) {
		m.mu.Unlock()
		return
	}
	c := m.edit.cascade
	m.mu.Unlock()

	var municipals, places []types.AdminOption
	g, gctx := errgroup.WithContext(ctx)
	if c.Region != nil {
		g.Go(func() error {
			var err error
			municipals, err = m.gazetteer.ListAdminOptions(gctx, types.AdminLevelMunicipal, c.Region.Key)
			return err
		})
	}
	if c.Municipal != nil {
		g.Go(func() error {
			var err error
			places, err = m.gazetteer.ListAdminOptions(gctx, types.AdminLevelPlace, c.Municipal.Key)
			return err
		})
	}
	err := g.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current(id, tok) {
		_ = m.stale(id, gazetteer.OpAdminOptions)
		return
	}
	if err != nil {
		m.logger.Warn("Could not load cascade options",
			slog.String("activity_location_id", id.String()), slog.Any("error", err))
		m.edit.message = stepMunicipalOptions.message()
		m.publish(id)
		return
	}
	if c.Region != nil {
		m.edit.cascade.applyMunicipalOptions(municipals)
	}
	if c.Municipal != nil {
		m.edit.cascade.applyPlaceOptions(places)
	}
}

// placeResolved makes snap the working place. A new location asks for
// confirmation; an existing one commits directly when snap is what it
// already had.
func (m *Machine) placeResolved(snap models.LocationSnapshot) (Outcome, error) {
	e := m.edit
	e.cascade.resolved = true
	if e.loc == nil {
		e.loc = models.NewActivityLocation(e.id, snap)
		e.loc.MarkNew()
		e.loc.SetEditMode(models.EditModeEditingPlace)
	} else if err := e.loc.ChangeDefaultLocation(snap); err != nil {
		return m.outcome(), m.reject(e.id, fmt.Errorf("%w: %w", ErrInvalidTransition, err))
	}

	if committed, ok := e.loc.LastCommitted(); ok && !e.isNew && snap.Equal(committed.Default) {
		return m.commitPlace(), nil
	}
	m.session.SetConfirmationPending(true)
	m.transition(StateConfirmingPlace)
	m.publish(e.id)
	return m.outcome(), nil
}

// withdrawPlace drops a place that was awaiting confirmation.
func (m *Machine) withdrawPlace() {
	e := m.edit
	m.session.SetConfirmationPending(false)
	if e.isNew {
		e.loc = nil
		return
	}
	if err := e.loc.Rollback(); err != nil {
		m.logger.Error("Rollback without committed state",
			slog.String("activity_location_id", e.id.String()), slog.Any("error", err))
	}
}

// checkpoint is the part of a place edit a failed lookup restores.
type checkpoint struct {
	state   State
	cascade Cascade
	message string
	// draft is the unconfirmed place of a new location; def the working
	// default of an existing one.
	draft *models.ActivityLocation
	def   models.LocationSnapshot
}

func (m *Machine) checkpoint() checkpoint {
	e := m.edit
	cp := checkpoint{state: e.state, cascade: e.cascade, message: e.message}
	if e.isNew {
		cp.draft = e.loc
	} else {
		cp.def = e.loc.DefaultLocation()
	}
	return cp
}

// restore returns the edit to cp, including a place that was awaiting
// confirmation. Outstanding lookups are invalidated.
func (m *Machine) restore(cp checkpoint) {
	e := m.edit
	e.cascade = cp.cascade
	e.message = cp.message
	if e.isNew {
		e.loc = cp.draft
	} else if err := e.loc.ChangeDefaultLocation(cp.def); err != nil {
		m.logger.Error("Could not restore working place",
			slog.String("activity_location_id", e.id.String()), slog.Any("error", err))
	}
	m.session.SetConfirmationPending(cp.state == StateConfirmingPlace)
	if e.state != cp.state {
		m.transition(cp.state)
	} else {
		m.dispatch(e.id)
	}
}

// commitPlace ends a place edit of an existing location. A precise location
// that the new place now covers is dropped.
func (m *Machine) commitPlace() Outcome {
	e := m.edit
	al := e.loc
	if p, ok := al.PreciseLocation(); ok && p.Coordinate().Within(al.DefaultLocation().Coordinate(), m.cfg.PreciseEpsilon) {
		al.ClearPreciseLocation()
	}
	before, _ := al.LastCommitted()
	al.Commit()

	var msg string
	if !before.Equal(al.Working()) {
		msg = al.DefaultLocation().PlaceName() + "'s place successfully edited!"
		m.markDirty(e.id)
	}
	m.session.SetConfirmationPending(false)
	return m.finish(msg)
}

// confirmPlace answers the place confirmation prompt.
func (m *Machine) confirmPlace(ctx context.Context, answer Answer) (Outcome, error) {
	e := m.edit
	m.session.SetConfirmationPending(false)

	if answer == AnswerYes {
		if !e.isNew {
			out := m.commitPlace()
			m.mu.Unlock()
			return out, nil
		}
		defer m.mu.Unlock()
		if err := m.session.Begin(e.id, models.EditModeEditingPrecise); err != nil {
			return m.outcome(), m.reject(e.id, err)
		}
		e.loc.SetEditMode(models.EditModeEditingPrecise)
		e.action = actionAdding
		e.message = ""
		m.transition(StatePromptPrecise)
		m.publish(e.id)
		return m.outcome(), nil
	}

	if e.isNew {
		defer m.mu.Unlock()
		e.loc = nil
		e.cascade.unwind()
		m.transition(StateSelectingPlace)
		m.publish(e.id)
		return m.outcome(), nil
	}

	if err := e.loc.Rollback(); err != nil {
		m.logger.Error("Rollback without committed state",
			slog.String("activity_location_id", e.id.String()), slog.Any("error", err))
	}
	e.cascade = cascadeFromSnapshot(e.loc.DefaultLocation())
	tok := m.transition(StateSelectingPlace)
	m.publish(e.id)
	id := e.id
	m.mu.Unlock()

	m.fill(ctx, id, tok)
	return m.outcomeFor(id), nil
}

// Confirm answers whichever confirmation id is waiting on.
func (m *Machine) Confirm(ctx context.Context, id models.ActivityLocationID, answer Answer) (Outcome, error) {
	m.mu.Lock()
	if err := m.authorize(id); err != nil {
		defer m.mu.Unlock()
		return Outcome{}, m.reject(id, err)
	}
	switch m.edit.state {
	case StateConfirmingPlace:
		return m.confirmPlace(ctx, answer)
	case StateConfirmingPrecise:
		defer m.mu.Unlock()
		return m.confirmPrecise(answer), nil
	default:
		defer m.mu.Unlock()
		return m.outcome(), m.reject(id, m.expect(StateConfirmingPlace, StateConfirmingPrecise))
	}
}
