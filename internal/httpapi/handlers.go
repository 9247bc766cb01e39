package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/jharte/settlers-backend/internal/hub"
)

// ListGames reports the live session registry: useful for ops checks and a
// lobby browser alike.
func ListGames(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reply := make(chan []hub.SessionInfo, 1)
		select {
		case h.Inbox() <- hub.ListSessions{Reply: reply}:
		case <-r.Context().Done():
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
			return
		}

		select {
		case infos := <-reply:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(infos)
		case <-r.Context().Done():
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
		}
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
