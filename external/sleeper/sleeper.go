package sleeper

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/draft-assistant/internal/domain/player"
)

// PlayersResponse is the /players/{sport} document, keyed by player id.
type PlayersResponse map[string]PlayerItem

type PlayerItem struct {
	PlayerID         string   `json:"player_id"`
	Active           bool     `json:"active"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasy_positions"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Team             *string  `json:"team"`
	Status           string   `json:"status"`
	SearchRank       *int     `json:"search_rank"`
	ADP              *float64 `json:"adp"`
}

func (p PlayerItem) toRecord(key string) player.Record {
	id := strings.TrimSpace(p.PlayerID)
	if id == "" {
		id = key
	}

	record := player.Record{
		ExternalID:       id,
		Active:           p.Active,
		Position:         strings.TrimSpace(p.Position),
		FantasyPositions: append([]string(nil), p.FantasyPositions...),
		FullName:         strings.TrimSpace(p.FullName),
		FirstName:        strings.TrimSpace(p.FirstName),
		LastName:         strings.TrimSpace(p.LastName),
	}
	if p.ADP != nil {
		adp := *p.ADP
		record.ADP = &adp
	}

	return record
}

// lessExternalID orders numeric ids numerically and before team codes
// such as "KC".
func lessExternalID(left, right string) bool {
	l, lErr := strconv.ParseInt(left, 10, 64)
	r, rErr := strconv.ParseInt(right, 10, 64)
	switch {
	case lErr == nil && rErr == nil:
		return l < r
	case lErr == nil:
		return true
	case rErr == nil:
		return false
	default:
		return left < right
	}
}
