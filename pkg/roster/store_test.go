package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/models"
)

const testDataset = `Name,University,Category,Total Runs,Balls Faced,Innings Played,Wickets,Overs Bowled,Runs Conceded,Base Price
Nuwan,Moratuwa,Batsman,540,420,12,1,2,18,900000
Kasun,Colombo,Bowler,30,60,8,22,64.2,310,700000
Ishan,Peradeniya,All-Rounder,210,180,10,14,40,201,800000
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "players.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		content     string
		count       int
	}{
		{
			"dataset with players",
			testDataset,
			3,
		},
		{
			"dataset with header only",
			"Name,University,Category,Total Runs,Balls Faced,Innings Played,Wickets,Overs Bowled,Runs Conceded,Base Price\n",
			0,
		},
		{
			"empty dataset file",
			"",
			0,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			store := NewStore(writeDataset(t, tc.content))

			require.NoError(t, store.Load())
			assert.Equal(t, tc.count, store.Count())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "missing.csv"))

	require.NoError(t, store.Load())
	assert.Equal(t, 0, store.Count())
}

func TestLoadParsesStats(t *testing.T) {
	t.Parallel()

	store := NewStore(writeDataset(t, testDataset))
	require.NoError(t, store.Load())

	players := store.Players()
	require.Len(t, players, 3)

	nuwan := players[0]
	assert.Equal(t, "Nuwan", nuwan.Name)
	assert.Equal(t, "Moratuwa", nuwan.University)
	assert.Equal(t, 540, nuwan.TotalRuns)
	assert.Equal(t, 1, nuwan.Wickets)
	assert.Equal(t, 900000, nuwan.BasePrice)
	assert.Equal(t, RoleBatsman, nuwan.Role())

	kasun := players[1]
	assert.InDelta(t, 64.2, kasun.OversBowled, 0.001)
	assert.Equal(t, RoleBowler, kasun.Role())
}

func TestLoadInvalidNumbers(t *testing.T) {
	t.Parallel()

	content := "Name,University,Category,Total Runs,Balls Faced,Innings Played,Wickets,Overs Bowled,Runs Conceded,Base Price\n" +
		"Test,,,NaN,,3.5,n/a,,x,100\n"
	store := NewStore(writeDataset(t, content))

	require.NoError(t, store.Load())

	players := store.Players()
	require.Len(t, players, 1)
	assert.Equal(t, 0, players[0].TotalRuns)
	assert.Equal(t, 3, players[0].InningsPlayed)
	assert.Equal(t, 0, players[0].Wickets)
	assert.Equal(t, 100, players[0].BasePrice)
}

func TestApply(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       *models.UpdateRequest
		count       int
		error       bool
		message     string
	}{
		{
			"add a new player",
			&models.UpdateRequest{
				PlayerUpdate: models.PlayerUpdate{
					Name:      "Ruwan",
					Category:  "Bowler",
					BasePrice: 500000,
					TournamentData: models.TournamentData{
						Runs: 12, Wickets: 18,
					},
				},
			},
			4,
			false,
			``,
		},
		{
			"update an existing player",
			&models.UpdateRequest{
				PlayerUpdate: models.PlayerUpdate{
					Name:      "Nuwan",
					BasePrice: 950000,
					TournamentData: models.TournamentData{
						Runs: 600, Wickets: 1,
					},
				},
			},
			3,
			false,
			``,
		},
		{
			"batch of players",
			&models.UpdateRequest{
				Players: []models.PlayerUpdate{
					{Name: "Ruwan", TournamentData: models.TournamentData{Runs: 10}},
					{Name: "Dasun", TournamentData: models.TournamentData{Wickets: 9}},
				},
			},
			5,
			false,
			``,
		},
		{
			"delete a player",
			&models.UpdateRequest{
				PlayerUpdate: models.PlayerUpdate{DeletePlayer: true, Name: "Kasun"},
			},
			2,
			false,
			``,
		},
		{
			"delete without a name",
			&models.UpdateRequest{
				PlayerUpdate: models.PlayerUpdate{DeletePlayer: true},
			},
			0,
			true,
			`player deletion requested but no name provided`,
		},
		{
			"upsert without a name",
			&models.UpdateRequest{},
			0,
			true,
			`no player name provided`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			store := NewStore(writeDataset(t, testDataset))
			require.NoError(t, store.Load())

			err := store.Apply(tc.given)

			if tc.error {
				require.Error(t, err)
				assert.Equal(t, tc.message, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.count, store.Count())

			// The dataset on disk reflects the change.
			reloaded := NewStore(store.Path())
			require.NoError(t, reloaded.Load())
			assert.Equal(t, tc.count, reloaded.Count())
		})
	}
}

func TestApplyPreservesUniversity(t *testing.T) {
	t.Parallel()

	store := NewStore(writeDataset(t, testDataset))
	require.NoError(t, store.Load())

	update := &models.UpdateRequest{
		PlayerUpdate: models.PlayerUpdate{
			Name:           "Nuwan",
			TournamentData: models.TournamentData{Runs: 700},
		},
	}
	require.NoError(t, store.Apply(update))

	players := store.Players()
	require.Len(t, players, 3)
	assert.Equal(t, "Moratuwa", players[0].University)
	assert.Equal(t, 700, players[0].TotalRuns)
}

func TestSaveCreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "players.csv")
	store := NewStore(path)

	update := &models.UpdateRequest{
		PlayerUpdate: models.PlayerUpdate{Name: "Nuwan"},
	}
	require.NoError(t, store.Apply(update))

	_, err := os.Stat(path)
	require.NoError(t, err)
}
