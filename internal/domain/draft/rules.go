package draft

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/draft-assistant/internal/domain/player"
)

var (
	ErrUnknownPosition   = errors.New("position missing from draft rules")
	ErrDuplicatePlayer   = errors.New("duplicate player in pool")
	ErrInvalidSelection  = errors.New("invalid selection")
	ErrSessionTerminated = errors.New("draft session terminated")
)

// Rules stores the per-position scoring tables of a draft.
type Rules struct {
	ReplacementPoints map[player.Position]float64
	RosterLimits      map[player.Position]int
}

func DefaultRules() Rules {
	return Rules{
		ReplacementPoints: map[player.Position]float64{
			player.PositionQuarterback:  180,
			player.PositionRunningBack:  160,
			player.PositionWideReceiver: 165,
			player.PositionTightEnd:     140,
		},
		RosterLimits: map[player.Position]int{
			player.PositionQuarterback:  1,
			player.PositionRunningBack:  2,
			player.PositionWideReceiver: 2,
			player.PositionTightEnd:     1,
		},
	}
}

// Covers reports whether both tables carry an entry for pos.
func (r Rules) Covers(pos player.Position) bool {
	_, hasReplacement := r.ReplacementPoints[pos]
	_, hasLimit := r.RosterLimits[pos]
	return hasReplacement && hasLimit
}

func (r Rules) Validate() error {
	for _, pos := range player.Positions {
		if !r.Covers(pos) {
			return fmt.Errorf("%w: %s", ErrUnknownPosition, pos)
		}
		if r.RosterLimits[pos] < 1 {
			return fmt.Errorf("roster limit for %s must be greater than zero", pos)
		}
	}

	return nil
}
