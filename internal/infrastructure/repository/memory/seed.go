package memory

import "github.com/riskibarqy/draft-assistant/internal/domain/player"

// SeedRecords is a small preseason board used when no live feed is
// configured. It also carries records the pool filter must drop.
func SeedRecords() []player.Record {
	return []player.Record{
		{ExternalID: "4046", Active: true, Position: "QB", FantasyPositions: []string{"QB"}, FullName: "Patrick Mahomes", ADP: floatPtr(28.4), Projection: floatPtr(365), Tier: intPtr(1)},
		{ExternalID: "4984", Active: true, Position: "QB", FantasyPositions: []string{"QB"}, FullName: "Josh Allen", ADP: floatPtr(22.1), Projection: floatPtr(388), Tier: intPtr(1)},
		{ExternalID: "6904", Active: true, Position: "QB", FantasyPositions: []string{"QB"}, FullName: "Jalen Hurts", ADP: floatPtr(25.7), Projection: floatPtr(372), Tier: intPtr(1)},
		{ExternalID: "7523", Active: true, Position: "QB", FantasyPositions: []string{"QB"}, FullName: "Trevor Lawrence", ADP: floatPtr(118.2), Projection: floatPtr(281), Tier: intPtr(3)},
		{ExternalID: "8183", Active: true, Position: "QB", FantasyPositions: []string{"QB"}, FullName: "Brock Purdy", ADP: floatPtr(92.5), Projection: floatPtr(302), Tier: intPtr(2)},
		{ExternalID: "4034", Active: true, Position: "RB", FantasyPositions: []string{"RB"}, FullName: "Christian McCaffrey", ADP: floatPtr(1.6), Projection: floatPtr(318), Tier: intPtr(1)},
		{ExternalID: "9509", Active: true, Position: "RB", FantasyPositions: []string{"RB"}, FullName: "Bijan Robinson", ADP: floatPtr(5.3), Projection: floatPtr(287), Tier: intPtr(1)},
		{ExternalID: "8138", Active: true, Position: "RB", FantasyPositions: []string{"RB"}, FullName: "Breece Hall", ADP: floatPtr(9.8), Projection: floatPtr(259), Tier: intPtr(2)},
		{ExternalID: "6813", Active: true, Position: "RB", FantasyPositions: []string{"RB"}, FullName: "Jonathan Taylor", ADP: floatPtr(14.6), Projection: floatPtr(248), Tier: intPtr(2)},
		{ExternalID: "5850", Active: true, Position: "RB", FantasyPositions: []string{"RB"}, FullName: "Josh Jacobs", ADP: floatPtr(31.9), Projection: floatPtr(231), Tier: intPtr(3)},
		{ExternalID: "7528", Active: true, Position: "RB", FantasyPositions: []string{"RB"}, FullName: "Najee Harris", ADP: floatPtr(48.7), Projection: floatPtr(204), Tier: intPtr(3)},
		{ExternalID: "6794", Active: true, Position: "WR", FantasyPositions: []string{"WR"}, FullName: "Justin Jefferson", ADP: floatPtr(3.1), Projection: floatPtr(295), Tier: intPtr(1)},
		{ExternalID: "7564", Active: true, Position: "WR", FantasyPositions: []string{"WR"}, FullName: "Ja'Marr Chase", ADP: floatPtr(4.2), Projection: floatPtr(288), Tier: intPtr(1)},
		{ExternalID: "8146", Active: true, Position: "WR", FantasyPositions: []string{"WR"}, FullName: "Garrett Wilson", ADP: floatPtr(16.3), Projection: floatPtr(246), Tier: intPtr(2)},
		{ExternalID: "6786", Active: true, Position: "WR", FantasyPositions: []string{"WR"}, FullName: "CeeDee Lamb", ADP: floatPtr(2.9), Projection: floatPtr(291), Tier: intPtr(1)},
		{ExternalID: "7547", Active: true, Position: "WR", FantasyPositions: []string{"WR"}, FullName: "Amon-Ra St. Brown", ADP: floatPtr(8.7), Projection: floatPtr(268), Tier: intPtr(2)},
		{ExternalID: "5859", Active: true, Position: "WR", FantasyPositions: []string{"WR"}, FullName: "A.J. Brown", ADP: floatPtr(11.2), Projection: floatPtr(262), Tier: intPtr(2)},
		{ExternalID: "4866", Active: true, Position: "WR", FantasyPositions: []string{"WR"}, FullName: "Mike Evans", ADP: floatPtr(38.5), Projection: floatPtr(221), Tier: intPtr(3)},
		{ExternalID: "4217", Active: true, Position: "TE", FantasyPositions: []string{"TE"}, FullName: "Travis Kelce", ADP: floatPtr(21.4), Projection: floatPtr(214), Tier: intPtr(1)},
		{ExternalID: "8130", Active: true, Position: "TE", FantasyPositions: []string{"TE"}, FullName: "Trey McBride", ADP: floatPtr(44.9), Projection: floatPtr(188), Tier: intPtr(2)},
		{ExternalID: "5012", Active: true, Position: "TE", FantasyPositions: []string{"TE"}, FullName: "Mark Andrews", ADP: floatPtr(57.3), Projection: floatPtr(176), Tier: intPtr(2)},
		{ExternalID: "9226", Active: true, Position: "TE", FantasyPositions: []string{"TE"}, FullName: "Sam LaPorta", ADP: floatPtr(49.6), Projection: floatPtr(181), Tier: intPtr(2)},
		{ExternalID: "3198", Active: false, Position: "RB", FantasyPositions: []string{"RB"}, FullName: "Derrick Henry"},
		{ExternalID: "4195", Active: true, Position: "K", FantasyPositions: []string{"K"}, FullName: "Harrison Butker"},
		{ExternalID: "4089", Active: true, Position: "WR", FullName: "Practice Squad Receiver"},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}
