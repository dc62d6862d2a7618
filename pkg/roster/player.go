package roster

const (
	RoleBatsman    = "Batsman"
	RoleBowler     = "Bowler"
	RoleAllRounder = "All-Rounder"
)

type Player struct {
	Name          string
	University    string
	Category      string
	TotalRuns     int
	BallsFaced    int
	InningsPlayed int
	Wickets       int
	OversBowled   float64
	RunsConceded  int
	BasePrice     int
}

// Role classifies a player from raw stats. Specialist thresholds come from
// the tournament scoring rules: a handful of wickets with few runs marks a
// bowler, a century-plus aggregate with few wickets marks a batsman.
func (p Player) Role() string {
	switch {
	case p.Wickets > 5 && p.TotalRuns < 50:
		return RoleBowler
	case p.TotalRuns > 100 && p.Wickets < 3:
		return RoleBatsman
	default:
		return RoleAllRounder
	}
}

// AllRounderScore weighs wickets at ten runs apiece.
func (p Player) AllRounderScore() int {
	return p.TotalRuns + p.Wickets*10
}
