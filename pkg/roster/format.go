package roster

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPlayerInfo renders a readable card for a single player.
func FormatPlayerInfo(p Player) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Player: %s\n", p.Name)
	fmt.Fprintf(&b, "University: %s\n", p.University)
	fmt.Fprintf(&b, "Category: %s\n", p.Category)
	fmt.Fprintf(&b, "Role: %s\n", p.Role())
	fmt.Fprintf(&b, "Base Price: ₹%s\n", FormatAmount(p.BasePrice))
	b.WriteString("Stats:\n")
	fmt.Fprintf(&b, "  - Total Runs: %d\n", p.TotalRuns)
	fmt.Fprintf(&b, "  - Wickets: %d\n", p.Wickets)
	fmt.Fprintf(&b, "  - Innings Played: %d\n", p.InningsPlayed)
	fmt.Fprintf(&b, "  - Overs Bowled: %g\n", p.OversBowled)
	fmt.Fprintf(&b, "  - Runs Conceded: %d\n", p.RunsConceded)
	fmt.Fprintf(&b, "\n%s is a %s who has scored %d runs and taken %d wickets.\n",
		p.Name, strings.ToLower(p.Role()), p.TotalRuns, p.Wickets,
	)

	return b.String()
}

// FormatPlayerList renders a numbered listing under a description line.
func FormatPlayerList(players []Player, description string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s:\n\n", description)
	for i, p := range players {
		fmt.Fprintf(&b, "%d. %s - %s - Base Price: ₹%s - Runs: %d, Wickets: %d\n",
			i+1, p.Name, p.Role(), FormatAmount(p.BasePrice), p.TotalRuns, p.Wickets,
		)
	}

	return b.String()
}

// FormatTeam renders the best-team sections grouped by role.
func FormatTeam(team []Player) string {
	var b strings.Builder

	b.WriteString("Here's the best cricket team based on player value and role:\n\n")
	b.WriteString("BATSMEN:\n")
	for _, p := range ByRole(team, RoleBatsman) {
		fmt.Fprintf(&b, "- %s (Base Price: ₹%s, Runs: %d)\n",
			p.Name, FormatAmount(p.BasePrice), p.TotalRuns)
	}
	b.WriteString("\nBOWLERS:\n")
	for _, p := range ByRole(team, RoleBowler) {
		fmt.Fprintf(&b, "- %s (Base Price: ₹%s, Wickets: %d)\n",
			p.Name, FormatAmount(p.BasePrice), p.Wickets)
	}
	b.WriteString("\nALL-ROUNDERS:\n")
	for _, p := range ByRole(team, RoleAllRounder) {
		fmt.Fprintf(&b, "- %s (Base Price: ₹%s, Runs: %d, Wickets: %d)\n",
			p.Name, FormatAmount(p.BasePrice), p.TotalRuns, p.Wickets)
	}

	return b.String()
}

// FormatAmount renders an integer amount with thousands separators.
func FormatAmount(amount int) string {
	s := strconv.Itoa(amount)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// Document renders the text indexed for a player, one searchable
// description per roster entry.
func Document(p Player) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Player: %s\n", p.Name)
	fmt.Fprintf(&b, "University: %s\n", p.University)
	fmt.Fprintf(&b, "Category: %s\n", p.Category)
	fmt.Fprintf(&b, "Role: %s\n", p.Role())
	fmt.Fprintf(&b, "Total Runs: %d\n", p.TotalRuns)
	fmt.Fprintf(&b, "Balls Faced: %d\n", p.BallsFaced)
	fmt.Fprintf(&b, "Innings Played: %d\n", p.InningsPlayed)
	fmt.Fprintf(&b, "Wickets: %d\n", p.Wickets)
	fmt.Fprintf(&b, "Overs Bowled: %g\n", p.OversBowled)
	fmt.Fprintf(&b, "Runs Conceded: %d\n", p.RunsConceded)
	fmt.Fprintf(&b, "Base Price: %d\n", p.BasePrice)

	return b.String()
}
