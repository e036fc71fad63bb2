package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/draft-assistant/internal/domain/player"
	playermock "github.com/riskibarqy/draft-assistant/internal/mocks/domain/player"
	basecache "github.com/riskibarqy/draft-assistant/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestPlayerFeed_FetchRecords_LoadsOnce(t *testing.T) {
	t.Parallel()

	next := playermock.NewFeed(t)
	next.
		On("FetchRecords", mock.Anything).
		Return([]player.Record{{ExternalID: "4984", Active: true, Position: "QB", FantasyPositions: []string{"QB"}, FullName: "Josh Allen"}}, nil).
		Once()

	feed := NewPlayerFeed(next, basecache.NewStore[[]player.Record](time.Minute), "players:nfl")

	first, err := feed.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	first[0].FantasyPositions[0] = "mutated"

	second, err := feed.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if len(second) != 1 || second[0].FullName != "Josh Allen" {
		t.Fatalf("unexpected cached records: %+v", second)
	}
	if second[0].FantasyPositions[0] != "QB" {
		t.Fatalf("caller mutation leaked into cache: %v", second[0].FantasyPositions)
	}
}

func TestPlayerFeed_FetchRecords_ErrorIsNotCached(t *testing.T) {
	t.Parallel()

	boom := errors.New("sleeper unavailable")
	next := playermock.NewFeed(t)
	next.On("FetchRecords", mock.Anything).Return(nil, boom).Once()
	next.On("FetchRecords", mock.Anything).Return([]player.Record{{ExternalID: "1"}}, nil).Once()

	feed := NewPlayerFeed(next, basecache.NewStore[[]player.Record](time.Minute), "")

	if _, err := feed.FetchRecords(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected feed error, got %v", err)
	}
	records, err := feed.FetchRecords(context.Background())
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record after recovery, got %d", len(records))
	}
}

func TestPlayerFeed_Invalidate(t *testing.T) {
	t.Parallel()

	next := playermock.NewFeed(t)
	next.On("FetchRecords", mock.Anything).Return([]player.Record{{ExternalID: "1"}}, nil).Twice()

	feed := NewPlayerFeed(next, basecache.NewStore[[]player.Record](time.Minute), "players:nfl")
	if _, err := feed.FetchRecords(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	feed.Invalidate(context.Background())
	if _, err := feed.FetchRecords(context.Background()); err != nil {
		t.Fatalf("fetch after invalidate: %v", err)
	}
}
