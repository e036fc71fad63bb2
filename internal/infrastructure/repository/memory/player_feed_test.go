package memory

import (
	"sync"
	"testing"

	"github.com/riskibarqy/draft-assistant/internal/domain/player"
)

func TestPlayerFeed_FetchRecords_ReturnsCopies(t *testing.T) {
	t.Parallel()

	source := []player.Record{{ExternalID: "4984", Active: true, Position: "QB", FantasyPositions: []string{"QB"}, FullName: "Josh Allen"}}
	feed := NewPlayerFeed(source)
	source[0].FantasyPositions[0] = "K"

	first, err := feed.FetchRecords(t.Context())
	if err != nil {
		t.Fatalf("fetch records: %v", err)
	}
	if first[0].FantasyPositions[0] != "QB" {
		t.Fatalf("constructor input leaked into feed: %v", first[0].FantasyPositions)
	}

	first[0].FullName = "changed"
	second, err := feed.FetchRecords(t.Context())
	if err != nil {
		t.Fatalf("fetch records: %v", err)
	}
	if second[0].FullName != "Josh Allen" {
		t.Fatalf("caller mutation leaked into feed: %s", second[0].FullName)
	}
}

func TestPlayerFeed_FetchRecords_ConcurrentCallers(t *testing.T) {
	t.Parallel()

	feed := NewPlayerFeed(SeedRecords())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, err := feed.FetchRecords(t.Context())
			if err != nil {
				t.Errorf("fetch records: %v", err)
				return
			}
			for j := range records {
				records[j].FullName = "changed"
				if len(records[j].FantasyPositions) > 0 {
					records[j].FantasyPositions[0] = "K"
				}
			}
		}()
	}
	wg.Wait()

	records, err := feed.FetchRecords(t.Context())
	if err != nil {
		t.Fatalf("fetch records: %v", err)
	}
	for _, record := range records {
		if record.FullName == "changed" {
			t.Fatalf("concurrent caller mutated feed record %s", record.ExternalID)
		}
	}
}

func TestSeedRecords_HaveUniqueIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for _, record := range SeedRecords() {
		if _, exists := seen[record.ExternalID]; exists {
			t.Fatalf("duplicate seed id %s", record.ExternalID)
		}
		seen[record.ExternalID] = struct{}{}
	}
}
