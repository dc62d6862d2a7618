package roster

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/models"
)

var csvHeader = []string{
	"Name", "University", "Category", "Total Runs", "Balls Faced",
	"Innings Played", "Wickets", "Overs Bowled", "Runs Conceded",
	"Base Price",
}

// Store keeps the player roster in a CSV dataset file. All reads return a
// snapshot copy, so callers can sort and filter without holding the lock.
type Store struct {
	mu      sync.RWMutex
	path    string
	players []Player
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the dataset from disk. A missing file is not an error and
// leaves the roster empty; the update API creates it on first write.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(filepath.Clean(s.path))
	if err != nil {
		if os.IsNotExist(err) {
			s.players = nil
			return nil
		}
		return fmt.Errorf("unable to open dataset file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("unable to read dataset file: %w", err)
	}
	if len(records) == 0 {
		s.players = nil
		return nil
	}

	players := make([]Player, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(csvHeader) {
			continue
		}
		players = append(players, Player{
			Name:          record[0],
			University:    record[1],
			Category:      record[2],
			TotalRuns:     parseInt(record[3]),
			BallsFaced:    parseInt(record[4]),
			InningsPlayed: parseInt(record[5]),
			Wickets:       parseInt(record[6]),
			OversBowled:   parseFloat(record[7]),
			RunsConceded:  parseInt(record[8]),
			BasePrice:     parseInt(record[9]),
		})
	}
	s.players = players

	return nil
}

// Players returns a snapshot of the roster.
func (s *Store) Players() []Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]Player, len(s.players))
	copy(players, s.players)

	return players
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.players)
}

// Apply merges an update payload into the roster and rewrites the dataset.
func (s *Store) Apply(update *models.UpdateRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.DeletePlayer {
		if update.Name == "" {
			return fmt.Errorf("player deletion requested but no name provided")
		}
		kept := s.players[:0]
		for _, p := range s.players {
			if p.Name != update.Name {
				kept = append(kept, p)
			}
		}
		s.players = kept
		return s.save()
	}

	if len(update.Players) > 0 {
		for _, p := range update.Players {
			if err := s.upsert(p); err != nil {
				return err
			}
		}
		return s.save()
	}

	if err := s.upsert(update.PlayerUpdate); err != nil {
		return err
	}

	return s.save()
}

func (s *Store) upsert(update models.PlayerUpdate) error {
	if update.Name == "" {
		return fmt.Errorf("no player name provided")
	}

	player := Player{
		Name:          update.Name,
		Category:      update.Category,
		TotalRuns:     update.TournamentData.Runs,
		BallsFaced:    update.TournamentData.BallsFaced,
		InningsPlayed: update.TournamentData.InningsPlayed,
		Wickets:       update.TournamentData.Wickets,
		OversBowled:   update.TournamentData.OversBowled,
		RunsConceded:  update.TournamentData.RunsConceded,
		BasePrice:     update.BasePrice,
	}

	for i, p := range s.players {
		if p.Name == update.Name {
			player.University = p.University
			s.players[i] = player
			return nil
		}
	}
	s.players = append(s.players, player)

	return nil
}

func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("unable to create dataset directory: %w", err)
		}
	}

	file, err := os.Create(filepath.Clean(s.path))
	if err != nil {
		return fmt.Errorf("unable to create dataset file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("unable to write dataset header: %w", err)
	}
	for _, p := range s.players {
		record := []string{
			p.Name,
			p.University,
			p.Category,
			strconv.Itoa(p.TotalRuns),
			strconv.Itoa(p.BallsFaced),
			strconv.Itoa(p.InningsPlayed),
			strconv.Itoa(p.Wickets),
			strconv.FormatFloat(p.OversBowled, 'f', -1, 64),
			strconv.Itoa(p.RunsConceded),
			strconv.Itoa(p.BasePrice),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("unable to write dataset record: %w", err)
		}
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("unable to flush dataset file: %w", err)
	}

	return nil
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return int(parseFloat(s))
	}
	return v
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
