package models

// UpdateRequest is the payload sent by the team management backend. It
// carries either a single player, a batch of players, or a deletion marker.
type UpdateRequest struct {
	PlayerUpdate

	Players []PlayerUpdate `json:"players,omitempty"`
}

type PlayerUpdate struct {
	PlayerID       string         `json:"playerId,omitempty"`
	Name           string         `json:"name,omitempty"`
	Category       string         `json:"category,omitempty"`
	BasePrice      int            `json:"basePrice,omitempty"`
	DeletePlayer   bool           `json:"deletePlayer,omitempty"`
	TournamentData TournamentData `json:"tournamentData,omitempty"`
}

type TournamentData struct {
	Runs          int     `json:"runs"`
	BallsFaced    int     `json:"ballsFaced"`
	InningsPlayed int     `json:"inningsPlayed"`
	Wickets       int     `json:"wickets"`
	OversBowled   float64 `json:"oversBowled"`
	RunsConceded  int     `json:"runsConceded"`
}

type UpdateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
