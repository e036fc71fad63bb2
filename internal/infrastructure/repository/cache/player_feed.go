package cache

import (
	"context"

	"github.com/riskibarqy/draft-assistant/internal/domain/player"
	basecache "github.com/riskibarqy/draft-assistant/internal/platform/cache"
)

// PlayerFeed caches the records of the wrapped feed under a single key.
type PlayerFeed struct {
	next  player.Feed
	cache *basecache.Store[[]player.Record]
	key   string
}

func NewPlayerFeed(next player.Feed, cache *basecache.Store[[]player.Record], key string) *PlayerFeed {
	if key == "" {
		key = "players"
	}
	return &PlayerFeed{next: next, cache: cache, key: key}
}

func (f *PlayerFeed) FetchRecords(ctx context.Context) ([]player.Record, error) {
	records, err := f.cache.GetOrLoad(ctx, f.key, func(ctx context.Context) ([]player.Record, error) {
		items, err := f.next.FetchRecords(ctx)
		if err != nil {
			return nil, err
		}
		return cloneRecords(items), nil
	})
	if err != nil {
		return nil, err
	}

	return cloneRecords(records), nil
}

// Invalidate drops the cached records so the next fetch hits the feed.
func (f *PlayerFeed) Invalidate(ctx context.Context) {
	f.cache.Delete(ctx, f.key)
}

func cloneRecords(records []player.Record) []player.Record {
	out := make([]player.Record, 0, len(records))
	for _, r := range records {
		r.FantasyPositions = append([]string(nil), r.FantasyPositions...)
		out = append(out, r)
	}
	return out
}
