package redis

import "testing"

func TestMetricTypeStrings(t *testing.T) {
	if len(MetricTypeStrings) != int(AdminRequest)+1 {
		t.Fatal("Every event type needs a metric name")
	}
	seen := make(map[string]bool)
	for i := LoginRequest; i <= AdminRequest; i++ {
		if seen[i.String()] {
			t.Error("Duplicate metric name " + i.String())
		}
		seen[i.String()] = true
	}
}

func TestLeaderboardVariant(t *testing.T) {
	if LeaderboardVariant("public", 3) == LeaderboardVariant("public", 4) {
		t.Error("Renderings of different departures must not share a cache entry")
	}
	if LeaderboardVariant("public", 3) == LeaderboardVariant("admin", 3) {
		t.Error("Renderings for different viewers must not share a cache entry")
	}
}
