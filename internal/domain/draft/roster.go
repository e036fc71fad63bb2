package draft

import "github.com/riskibarqy/draft-assistant/internal/domain/player"

// Roster counts the players drafted so far per position.
type Roster map[player.Position]int

func NewRoster() Roster {
	roster := make(Roster, len(player.Positions))
	for _, pos := range player.Positions {
		roster[pos] = 0
	}
	return roster
}

func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	for pos, count := range r {
		out[pos] = count
	}
	return out
}

// PositionProgress is one line of the roster report.
type PositionProgress struct {
	Position player.Position
	Drafted  int
	Limit    int
}

func (r Roster) Progress(rules Rules) []PositionProgress {
	out := make([]PositionProgress, 0, len(player.Positions))
	for _, pos := range player.Positions {
		out = append(out, PositionProgress{
			Position: pos,
			Drafted:  r[pos],
			Limit:    rules.RosterLimits[pos],
		})
	}
	return out
}
