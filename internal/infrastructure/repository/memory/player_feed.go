package memory

import (
	"context"

	"github.com/riskibarqy/draft-assistant/internal/domain/player"
)

// PlayerFeed serves a fixed set of records, for offline drafts and tests.
// Records are fixed at construction and every fetch returns a copy.
type PlayerFeed struct {
	records []player.Record
}

func NewPlayerFeed(records []player.Record) *PlayerFeed {
	return &PlayerFeed{records: cloneRecords(records)}
}

func (f *PlayerFeed) FetchRecords(_ context.Context) ([]player.Record, error) {
	return cloneRecords(f.records), nil
}

func cloneRecords(records []player.Record) []player.Record {
	out := make([]player.Record, 0, len(records))
	for _, r := range records {
		r.FantasyPositions = append([]string(nil), r.FantasyPositions...)
		out = append(out, r)
	}
	return out
}
