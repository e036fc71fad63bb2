package player

import "fmt"

// Position represents the fantasy positions a draft pool can contain.
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
)

// Positions lists every draftable position in display order.
var Positions = []Position{
	PositionQuarterback,
	PositionRunningBack,
	PositionWideReceiver,
	PositionTightEnd,
}

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
}

func ParsePosition(v string) (Position, bool) {
	pos := Position(v)
	if _, ok := AllPositions[pos]; !ok {
		return "", false
	}
	return pos, true
}

// Player is a draftable athlete in a session pool.
type Player struct {
	Name       string
	Position   Position
	Projection float64
	Tier       int
	// ADP is carried for reporting only; scoring never reads it.
	ADP float64
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Projection < 0 {
		return fmt.Errorf("player projection must not be negative")
	}
	if p.Tier < 1 {
		return fmt.Errorf("player tier must be greater than zero")
	}

	return nil
}

func (p Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Position)
}

// Record is one raw player entry as delivered by a feed, before filtering.
// Pointer fields are optional and fall back to configured defaults.
type Record struct {
	ExternalID       string
	Active           bool
	Position         string
	FantasyPositions []string
	FullName         string
	FirstName        string
	LastName         string
	ADP              *float64
	Projection       *float64
	Tier             *int
}
