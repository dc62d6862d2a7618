package roster

import (
	"sort"
	"strings"
)

// ByRole filters players matching the given role.
func ByRole(players []Player, role string) []Player {
	var out []Player
	for _, p := range players {
		if strings.EqualFold(p.Role(), role) {
			out = append(out, p)
		}
	}
	return out
}

// SortByValue orders players by base price, highest first.
func SortByValue(players []Player) []Player {
	out := make([]Player, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BasePrice > out[j].BasePrice
	})
	return out
}

// BestBatsman picks the top run scorer, base price breaking ties.
func BestBatsman(players []Player) (Player, bool) {
	return best(ByRole(players, RoleBatsman), func(p Player) (int, int) {
		return p.TotalRuns, p.BasePrice
	})
}

// BestBowler picks the top wicket taker, base price breaking ties.
func BestBowler(players []Player) (Player, bool) {
	return best(ByRole(players, RoleBowler), func(p Player) (int, int) {
		return p.Wickets, p.BasePrice
	})
}

// BestAllRounder picks the top all-rounder by combined score.
func BestAllRounder(players []Player) (Player, bool) {
	return best(ByRole(players, RoleAllRounder), func(p Player) (int, int) {
		return p.AllRounderScore(), p.BasePrice
	})
}

func best(players []Player, key func(Player) (int, int)) (Player, bool) {
	if len(players) == 0 {
		return Player{}, false
	}

	top := players[0]
	topPrimary, topSecondary := key(top)
	for _, p := range players[1:] {
		primary, secondary := key(p)
		if primary > topPrimary || (primary == topPrimary && secondary > topSecondary) {
			top, topPrimary, topSecondary = p, primary, secondary
		}
	}

	return top, true
}

// TopByRole returns up to limit players of a role, ordered by value.
func TopByRole(players []Player, role string, limit int) []Player {
	sorted := SortByValue(ByRole(players, role))
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// SearchByName finds players whose name contains the query,
// case-insensitively.
func SearchByName(players []Player, name string) []Player {
	name = strings.ToLower(name)

	var matched []Player
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), name) {
			matched = append(matched, p)
		}
	}

	return matched
}

// BestTeam builds a balanced eleven ordered by value: up to five batsmen,
// all-rounders to seven, bowlers to eleven, then any remaining slots filled
// by value regardless of role.
func BestTeam(players []Player) []Player {
	byValue := SortByValue(players)

	batsmen := ByRole(byValue, RoleBatsman)
	bowlers := ByRole(byValue, RoleBowler)
	allRounders := ByRole(byValue, RoleAllRounder)

	var team []Player
	picked := make(map[string]bool)
	take := func(pool []Player, max int) {
		for _, p := range pool {
			if len(team) >= max {
				return
			}
			if !picked[p.Name] {
				team = append(team, p)
				picked[p.Name] = true
			}
		}
	}

	take(batsmen, 5)
	take(allRounders, 7)
	take(bowlers, 11)
	take(allRounders, 11)
	take(byValue, 11)

	return team
}
