package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	spiriter "github.com/nethmalgunawardhana/spiriter-ai-chat/pkg"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/models"
)

// UpdatePlayerData receives roster changes from the team management backend,
// rewrites the dataset and rebuilds the search index. Failures are reported
// in the body with success=false; the endpoint itself always answers 200.
func UpdatePlayerData(cfg *spiriter.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		respond := func(success bool, message string) {
			response := models.UpdateResponse{Success: success, Message: message}
			if err := json.NewEncoder(w).Encode(response); err != nil {
				cfg.Logger.Errorf("Unable to encode update response: %s", err)
			}
		}

		var update models.UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			if errors.Is(err, io.EOF) {
				respond(false, "No data provided")
				return
			}
			cfg.Logger.Errorf("Unable to decode player update: %s", err)
			respond(false, fmt.Sprintf("An error occurred: %s", err))
			return
		}
		if update.Name == "" && len(update.Players) == 0 && !update.DeletePlayer {
			respond(false, "No data provided")
			return
		}

		if err := cfg.Roster.Apply(&update); err != nil {
			cfg.Logger.Errorf("Unable to update player dataset: %s", err)
			respond(false, "Failed to update player data in the dataset")
			return
		}

		if err := cfg.Index.Rebuild(r.Context(), cfg.Roster.Players()); err != nil {
			cfg.Logger.Errorf("Unable to rebuild player index: %s", err)
			respond(false, "Dataset updated but failed to rebuild the search index")
			return
		}

		respond(true, "Player data updated in RAG database successfully")
	})
}
