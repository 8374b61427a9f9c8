package locationedit

import (
	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

type LocationView struct {
	ID              models.ActivityLocationID `json:"id"`
	DefaultLocation models.LocationSnapshot   `json:"defaultLocation"`
	PreciseLocation *models.LocationSnapshot  `json:"preciseLocation,omitempty"`
	EditMode        models.EditMode           `json:"editMode"`
	State           State                     `json:"state"`
	IsNew           bool                      `json:"isNew"`
	Unsaved         bool                      `json:"unsaved"`
}

// EditView describes the edit in progress.
type EditView struct {
	ID                  models.ActivityLocationID `json:"id"`
	State               State                     `json:"state"`
	IsNew               bool                      `json:"isNew"`
	Cascade             Cascade                   `json:"cascade"`
	PreciseAction       string                    `json:"preciseAction,omitempty"`
	ConfirmationPending bool                      `json:"confirmationPending"`
	Message             string                    `json:"message,omitempty"`
	DefaultLocation     *models.LocationSnapshot  `json:"defaultLocation,omitempty"`
	PreciseLocation     *models.LocationSnapshot  `json:"preciseLocation,omitempty"`
}

type WorkspaceView struct {
	ActivityID      string         `json:"activityId"`
	Locations       []LocationView `json:"locations"`
	Edit            *EditView      `json:"edit,omitempty"`
	PendingRemovals int            `json:"pendingRemovals"`
}

// View renders the whole workspace for clients that (re)connect.
func (m *Machine) View() WorkspaceView {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := WorkspaceView{
		ActivityID:      m.activityID,
		Locations:       make([]LocationView, 0, len(m.order)),
		PendingRemovals: len(m.removed),
	}
	for _, id := range m.order {
		al := m.locations[id]
		lv := LocationView{
			ID:              id,
			DefaultLocation: al.DefaultLocation(),
			EditMode:        al.EditMode(),
			State:           m.stateOf(id),
			IsNew:           al.IsNew(),
		}
		if p, ok := al.PreciseLocation(); ok {
			lv.PreciseLocation = &p
		}
		_, lv.Unsaved = m.dirty[id]
		v.Locations = append(v.Locations, lv)
	}

	if e := m.edit; e != nil {
		ev := &EditView{
			ID:                  e.id,
			State:               e.state,
			IsNew:               e.isNew,
			Cascade:             e.cascade,
			PreciseAction:       string(e.action),
			ConfirmationPending: m.session.ConfirmationPending(),
			Message:             e.message,
		}
		if e.loc != nil {
			def := e.loc.DefaultLocation()
			ev.DefaultLocation = &def
			if p, ok := e.loc.PreciseLocation(); ok {
				ev.PreciseLocation = &p
			}
		}
		v.Edit = ev
	}
	return v
}
