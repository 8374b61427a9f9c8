package locationedit

import (
	"log/slog"
	"sort"

	"github.com/FACorreiaa/go-activity-locations/internal/models"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

// Change is a location to store, as of its last commit.
type Change struct {
	Location *models.ActivityLocation
	version  uint64
}

// Changes is everything not yet stored.
type Changes struct {
	ActivityID string
	Upserts    []Change
	Removed    []models.ActivityLocationID
}

func (c Changes) Empty() bool { return len(c.Upserts) == 0 && len(c.Removed) == 0 }

// Locations returns the locations to store.
func (c Changes) Locations() []*models.ActivityLocation {
	out := make([]*models.ActivityLocation, len(c.Upserts))
	for i, u := range c.Upserts {
		out[i] = u.Location
	}
	return out
}

// PendingChanges returns copies of every committed change since the last
// save. Uncommitted edits are not included.
func (m *Machine) PendingChanges() Changes {
	m.mu.Lock()
	defer m.mu.Unlock()

	changes := Changes{ActivityID: m.activityID}
	for _, id := range m.order {
		version, ok := m.dirty[id]
		if !ok {
			continue
		}
		al := m.locations[id].Clone()
		if err := al.Rollback(); err != nil {
			m.logger.Error("Dirty location without committed state",
				slog.String("activity_location_id", id.String()), slog.Any("error", err))
		}
		al.SetEditMode(models.EditModeNone)
		changes.Upserts = append(changes.Upserts, Change{Location: al, version: version})
	}
	for id := range m.removed {
		changes.Removed = append(changes.Removed, id)
	}
	sort.Slice(changes.Removed, func(i, j int) bool { return changes.Removed[i] < changes.Removed[j] })
	return changes
}

// ApplySaveResults records a successful save of changes. Locations changed
// again since PendingChanges stay dirty. New locations take their stored
// ids, which views learn through renamed events; a new location removed
// meanwhile is queued for deletion under its stored id.
func (m *Machine) ApplySaveResults(changes Changes, results []types.SaveResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range changes.Upserts {
		id := u.Location.ID()
		if m.dirty[id] == u.version {
			delete(m.dirty, id)
		}
	}
	for _, id := range changes.Removed {
		delete(m.removed, id)
	}

	for _, r := range results {
		from := models.ActivityLocationID(r.MatchWith.TempID)
		to := models.ActivityLocationID(r.New.PermanentID)
		al, ok := m.locations[from]
		if !ok {
			// Removed while the save ran; the stored row has to go too.
			if from.IsTemporary() && to != "" && to != from {
				m.removed[to] = struct{}{}
				m.logger.Info("Removed location was stored, deleting on next save",
					slog.String("activity_location_id", from.String()),
					slog.String("stored_id", to.String()))
				continue
			}
			m.logger.Warn("Save result for unknown location", slog.String("activity_location_id", from.String()))
			continue
		}
		al.SetLocationID(r.New.LocationID)
		if to == "" || to == from {
			continue
		}
		m.rename(from, to)
	}
}

// Unsaved reports whether committed changes are waiting to be stored.
func (m *Machine) Unsaved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dirty) > 0 || len(m.removed) > 0
}

func (m *Machine) rename(from, to models.ActivityLocationID) {
	al := m.locations[from]
	al.AssignPermanentID(to)

	delete(m.locations, from)
	m.locations[to] = al
	for i, id := range m.order {
		if id == from {
			m.order[i] = to
		}
	}
	if v, ok := m.dirty[from]; ok {
		delete(m.dirty, from)
		m.dirty[to] = v
	}
	m.tokens[to] = m.tokens[from]
	delete(m.tokens, from)
	if m.edit != nil && m.edit.id == from {
		m.edit.id = to
	}
	m.session.Rename(from, to)

	ev := m.event(EventRenamed, to)
	ev.PreviousID = from
	m.publisher.Publish(ev)
}
