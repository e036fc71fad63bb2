package draft

import (
	"fmt"

	"github.com/riskibarqy/draft-assistant/internal/domain/player"
)

const (
	needUnfilled   = 1.2
	needBelowLimit = 1.0
	needSatisfied  = 0.8

	scarcityLast    = 1.2
	scarcityShallow = 1.0
	scarcityDeep    = 0.9

	scarcityLastMax    = 1
	scarcityShallowMax = 3
)

func (r Rules) ValueOverReplacement(p player.Player) (float64, error) {
	baseline, ok := r.ReplacementPoints[p.Position]
	if !ok {
		return 0, fmt.Errorf("%w: replacement points for %s", ErrUnknownPosition, p.Position)
	}

	return p.Projection - baseline, nil
}

// NeedModifier weighs how badly the roster still needs pos. An empty slot
// beats a partially filled one; a full position is damped, never excluded.
func (r Rules) NeedModifier(pos player.Position, roster Roster) (float64, error) {
	limit, ok := r.RosterLimits[pos]
	if !ok {
		return 0, fmt.Errorf("%w: roster limit for %s", ErrUnknownPosition, pos)
	}

	drafted := roster[pos]
	switch {
	case drafted == 0:
		return needUnfilled, nil
	case drafted < limit:
		return needBelowLimit, nil
	default:
		return needSatisfied, nil
	}
}

// ScarcityModifier counts pool players sharing pos and tier, the scored
// player included.
func ScarcityModifier(pos player.Position, tier int, pool []player.Player) float64 {
	remaining := 0
	for _, p := range pool {
		if p.Position == pos && p.Tier == tier {
			remaining++
		}
	}

	switch {
	case remaining <= scarcityLastMax:
		return scarcityLast
	case remaining <= scarcityShallowMax:
		return scarcityShallow
	default:
		return scarcityDeep
	}
}

func (r Rules) CompositeScore(p player.Player, roster Roster, pool []player.Player) (float64, error) {
	vor, err := r.ValueOverReplacement(p)
	if err != nil {
		return 0, err
	}

	need, err := r.NeedModifier(p.Position, roster)
	if err != nil {
		return 0, err
	}

	return vor * need * ScarcityModifier(p.Position, p.Tier, pool), nil
}
