// Package events delivers activity location view events to browsers over
// server-sent events, optionally fanned out across instances through Redis.
package events

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/FACorreiaa/go-activity-locations/internal/api/locationedit"
)

var _ locationedit.Publisher = (*Broker)(nil)

// Broker is an in-process pub/sub for view events, keyed by activity ID.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[chan []byte]struct{}
	logger *slog.Logger
}

func NewBroker(logger *slog.Logger) *Broker {
	return &Broker{
		subs:   make(map[string]map[chan []byte]struct{}),
		logger: logger,
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the activity.
func (b *Broker) Subscribe(activityID string) chan []byte {
	ch := make(chan []byte, 32)
	b.mu.Lock()
	if b.subs[activityID] == nil {
		b.subs[activityID] = make(map[chan []byte]struct{})
	}
	b.subs[activityID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the activity's subscribers.
func (b *Broker) Unsubscribe(activityID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[activityID], ch)
	if len(b.subs[activityID]) == 0 {
		delete(b.subs, activityID)
	}
	b.mu.Unlock()
}

// Subscribers returns how many streams follow the activity.
func (b *Broker) Subscribers(activityID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[activityID])
}

// Publish sends an event to every subscriber of its activity. It never
// blocks; slow subscribers miss events and resync from the view.
func (b *Broker) Publish(e locationedit.Event) {
	data, err := json.Marshal(e)
	if err != nil {
		b.logger.Error("Failed to encode view event", slog.Any("error", err))
		return
	}
	b.Deliver(e.ActivityID, data)
}

// Deliver fans out an already encoded event.
func (b *Broker) Deliver(activityID string, data []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs[activityID] {
		select {
		case ch <- data:
		default:
			b.logger.Debug("Dropping event for slow subscriber", slog.String("activity_id", activityID))
		}
	}
}
