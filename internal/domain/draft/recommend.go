package draft

import (
	"sort"

	"github.com/riskibarqy/draft-assistant/internal/domain/player"
)

const DefaultTopN = 5

// Recommendation pairs a pool player with its composite score.
type Recommendation struct {
	Player player.Player
	Score  float64
}

// Rank scores every pool player and returns the best topN, highest first.
// Equal scores keep pool order.
func Rank(rules Rules, pool []player.Player, roster Roster, topN int) ([]Recommendation, error) {
	if topN <= 0 {
		topN = DefaultTopN
	}

	scored := make([]Recommendation, 0, len(pool))
	for _, p := range pool {
		score, err := rules.CompositeScore(p, roster, pool)
		if err != nil {
			return nil, err
		}
		scored = append(scored, Recommendation{Player: p, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topN {
		scored = scored[:topN]
	}

	return scored, nil
}
