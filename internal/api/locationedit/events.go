package locationedit

import (
	"github.com/FACorreiaa/go-activity-locations/internal/models"
)

type EventType string

const (
	EventUpdated EventType = "updated"
	EventRemoved EventType = "removed"
	// EventRenamed follows a temporary id being replaced by a stored one.
	EventRenamed EventType = "renamed"
	// EventDiscarded closes a new location that was cancelled before it
	// was ever added.
	EventDiscarded EventType = "discarded"
)

// Event tells views what to render for one activity location.
type Event struct {
	Type               EventType                 `json:"type"`
	ActivityID         string                    `json:"activityId"`
	ActivityLocationID models.ActivityLocationID `json:"activityLocationId"`
	PreviousID         models.ActivityLocationID `json:"previousId,omitempty"`
	DefaultLocation    *models.LocationSnapshot  `json:"defaultLocation,omitempty"`
	PreciseLocation    *models.LocationSnapshot  `json:"preciseLocation,omitempty"`
	EditMode           models.EditMode           `json:"editMode"`
	State              State                     `json:"state"`
	Message            string                    `json:"message,omitempty"`
}

// Publisher receives events in transition order. Publish is called with
// the machine's lock held and must not block.
type Publisher interface {
	Publish(e Event)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(e Event)

func (f PublisherFunc) Publish(e Event) { f(e) }

// Publishers fans an event out to every element.
type Publishers []Publisher

func (ps Publishers) Publish(e Event) {
	for _, p := range ps {
		p.Publish(e)
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}
