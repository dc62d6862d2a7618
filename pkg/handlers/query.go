package handlers

import (
	"encoding/json"
	"net/http"

	spiriter "github.com/nethmalgunawardhana/spiriter-ai-chat/pkg"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/models"
)

// Query answers a chat query. The endpoint always responds 200 with a JSON
// body carrying a single "response" field; chat-level failures come back as
// conversational text, not HTTP errors.
func Query(cfg *spiriter.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")

		response := models.QueryResponse{
			Response: cfg.Engine.Answer(r.Context(), query),
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			cfg.Logger.Errorf("Unable to encode query response: %s", err)
		}
	})
}
