package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rogerio-castellano/retail-manager/internal/watch"
)

// StreamChangesHandler godoc
// @Summary Stream table change events over SSE
// @Description New subscribers immediately receive the latest event seen
// @Description for each table, then live events as writes happen. The
// @Description stream ends when the client disconnects.
// @Tags events
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Router /events/changes [get]
func StreamChangesHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := watch.Default.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
