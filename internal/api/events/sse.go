package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PingInterval keeps idle streams open through proxies.
var PingInterval = 30 * time.Second

// Stream serves the activity's events as text/event-stream until the client
// goes away. initial, when not nil, is sent first as a "view" event so a
// (re)connecting client starts from the full state.
func Stream(w http.ResponseWriter, r *http.Request, broker *Broker, activityID string, initial any) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	ch := broker.Subscribe(activityID)
	defer broker.Unsubscribe(activityID, ch)

	if initial != nil {
		data, err := json.Marshal(initial)
		if err != nil {
			return fmt.Errorf("failed to encode view: %w", err)
		}
		fmt.Fprintf(w, "event: view\ndata: %s\n\n", data)
	}
	flusher.Flush()

	ping := time.NewTicker(PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return nil
		case data := <-ch:
			fmt.Fprintf(w, "event: location\ndata: %s\n\n", data)
			flusher.Flush()
		case <-ping.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
