package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrRollbackInconsistency = errors.New("rollback requested without a committed snapshot")
	ErrPreciseMatchesDefault = errors.New("precise location matches the default location")
	ErrSnapshotKind          = errors.New("wrong snapshot kind")
)

// DefaultPreciseEpsilon is the minimum distance, in degrees on either axis,
// between a precise location and its default location.
const DefaultPreciseEpsilon = 0.000001

const temporaryIDPrefix = "tmp-"

// ActivityLocationID identifies an ActivityLocation. New locations carry a
// temporary id until storage assigns a permanent one.
type ActivityLocationID string

func NewTemporaryID() ActivityLocationID {
	return ActivityLocationID(temporaryIDPrefix + uuid.NewString())
}

func (id ActivityLocationID) IsTemporary() bool {
	return strings.HasPrefix(string(id), temporaryIDPrefix)
}

func (id ActivityLocationID) String() string { return string(id) }

// EditMode is the edit flag carried by an ActivityLocation.
type EditMode string

const (
	EditModeNone           EditMode = "none"
	EditModeEditingPlace   EditMode = "editingPlace"
	EditModeEditingPrecise EditMode = "editingPrecise"
)

// ActivityLocation is the aggregate owning a default location, an optional
// precise location and the rollback baseline. It is not safe for concurrent
// use; the edit state machine serializes access.
type ActivityLocation struct {
	id              ActivityLocationID
	locationID      string
	defaultLocation LocationSnapshot
	preciseLocation LocationSnapshot
	hasPrecise      bool
	lastCommitted   *Committed
	editMode        EditMode
	isNew           bool
}

// NewActivityLocation returns an uncommitted location holding def.
func NewActivityLocation(id ActivityLocationID, def LocationSnapshot) *ActivityLocation {
	return &ActivityLocation{id: id, defaultLocation: def, editMode: EditModeNone}
}

// RestoreActivityLocation rebuilds a stored location. The restored state is
// committed.
func RestoreActivityLocation(id ActivityLocationID, def LocationSnapshot, precise *LocationSnapshot, locationID string) *ActivityLocation {
	al := NewActivityLocation(id, def)
	al.locationID = locationID
	if precise != nil {
		al.preciseLocation = *precise
		al.hasPrecise = true
	}
	al.Commit()
	return al
}

func (a *ActivityLocation) ID() ActivityLocationID { return a.id }

func (a *ActivityLocation) LocationID() string { return a.locationID }

func (a *ActivityLocation) DefaultLocation() LocationSnapshot { return a.defaultLocation }

func (a *ActivityLocation) EditMode() EditMode { return a.editMode }

func (a *ActivityLocation) IsNew() bool { return a.isNew }

func (a *ActivityLocation) SetEditMode(mode EditMode) { a.editMode = mode }

func (a *ActivityLocation) PreciseLocation() (LocationSnapshot, bool) {
	return a.preciseLocation, a.hasPrecise
}

// LastCommitted returns the rollback baseline, if a commit ever happened.
func (a *ActivityLocation) LastCommitted() (Committed, bool) {
	if a.lastCommitted == nil {
		return Committed{}, false
	}
	return *a.lastCommitted, true
}

// Working returns the current, possibly uncommitted, state.
func (a *ActivityLocation) Working() Committed {
	return Committed{Default: a.defaultLocation, Precise: a.preciseLocation, HasPrecise: a.hasPrecise}
}

// DisplayCoordinate is where a marker for this location belongs.
func (a *ActivityLocation) DisplayCoordinate() Coordinate {
	if a.hasPrecise {
		return a.preciseLocation.Coordinate()
	}
	return a.defaultLocation.Coordinate()
}

// ChangeDefaultLocation replaces the working default location.
func (a *ActivityLocation) ChangeDefaultLocation(s LocationSnapshot) error {
	if s.IsPrecise() || s.IsZero() {
		return fmt.Errorf("default location: %w", ErrSnapshotKind)
	}
	a.defaultLocation = s
	return nil
}

// SetPreciseLocation replaces the working precise location. It must lie
// further than eps from the default coordinate.
func (a *ActivityLocation) SetPreciseLocation(s LocationSnapshot, eps float64) error {
	if !s.IsPrecise() {
		return fmt.Errorf("precise location: %w", ErrSnapshotKind)
	}
	if s.Coordinate().Within(a.defaultLocation.Coordinate(), eps) {
		return ErrPreciseMatchesDefault
	}
	a.preciseLocation = s
	a.hasPrecise = true
	return nil
}

func (a *ActivityLocation) ClearPreciseLocation() {
	a.preciseLocation = LocationSnapshot{}
	a.hasPrecise = false
}

// Commit makes the working state the new rollback baseline.
func (a *ActivityLocation) Commit() {
	c := a.Working()
	a.lastCommitted = &c
}

// Rollback restores the working state from the last commit. It is idempotent.
// Without a baseline it falls back to the default location alone, commits
// that, and reports ErrRollbackInconsistency.
func (a *ActivityLocation) Rollback() error {
	if a.lastCommitted == nil {
		a.ClearPreciseLocation()
		a.Commit()
		return ErrRollbackInconsistency
	}
	c := *a.lastCommitted
	a.defaultLocation = c.Default
	a.preciseLocation = c.Precise
	a.hasPrecise = c.HasPrecise
	return nil
}

func (a *ActivityLocation) MarkNew() { a.isNew = true }

// AssignPermanentID replaces a temporary id with the stored one and clears
// the new flag.
func (a *ActivityLocation) AssignPermanentID(id ActivityLocationID) {
	a.id = id
	a.isNew = false
}

// SetLocationID records the stored id of the precise location row.
func (a *ActivityLocation) SetLocationID(id string) { a.locationID = id }

// Clone returns an independent copy.
func (a *ActivityLocation) Clone() *ActivityLocation {
	c := *a
	if a.lastCommitted != nil {
		lc := *a.lastCommitted
		c.lastCommitted = &lc
	}
	return &c
}
