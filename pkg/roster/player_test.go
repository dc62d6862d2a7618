package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       Player
		want        string
	}{
		{
			"many wickets with few runs",
			Player{TotalRuns: 20, Wickets: 12},
			RoleBowler,
		},
		{
			"many runs with few wickets",
			Player{TotalRuns: 340, Wickets: 1},
			RoleBatsman,
		},
		{
			"runs and wickets both significant",
			Player{TotalRuns: 220, Wickets: 15},
			RoleAllRounder,
		},
		{
			"boundary wickets do not make a bowler",
			Player{TotalRuns: 10, Wickets: 5},
			RoleAllRounder,
		},
		{
			"boundary runs do not make a batsman",
			Player{TotalRuns: 100, Wickets: 0},
			RoleAllRounder,
		},
		{
			"no stats at all",
			Player{},
			RoleAllRounder,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.given.Role())
		})
	}
}

func TestAllRounderScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Player{}.AllRounderScore())
	assert.Equal(t, 250, Player{TotalRuns: 150, Wickets: 10}.AllRounderScore())
}
