package handlers

import (
	"encoding/json"
	"net/http"

	spiriter "github.com/nethmalgunawardhana/spiriter-ai-chat/pkg"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/models"
)

func Status(cfg *spiriter.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := models.StatusResponse{
			Status:  "online",
			Message: "Cricket Chatbot is Running!",
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			cfg.Logger.Errorf("Unable to encode status response: %s", err)
		}
	})
}
