package leagues

import (
	"testing"
)

func TestByCode(t *testing.T) {
	for _, code := range []string{"nba", "nfl", "nhl", "nhl-goalies"} {
		cfg, err := ByCode(code)
		if err != nil {
			t.Fatalf("ByCode(%q): %v", code, err)
		}
		if cfg.Code != code {
			t.Errorf("ByCode(%q).Code = %q", code, cfg.Code)
		}
		if cfg.ParseGameLogs == nil {
			t.Errorf("%s has no game-log parser", code)
		}
		if cfg.ParseTeamTotals == nil {
			t.Errorf("%s has no team-totals parser", code)
		}
	}
	if _, err := ByCode("mlb"); err == nil {
		t.Error("ByCode(mlb) should fail")
	}
}

func TestAddCombos(t *testing.T) {
	stats := map[string]float64{"PTS": 20, "REB": 8, "AST": 4}
	NBA.AddCombos(stats)

	want := map[string]float64{"PRA": 32, "PR": 28, "PA": 24, "RA": 12}
	for combo, v := range want {
		if stats[combo] != v {
			t.Errorf("%s = %v, want %v", combo, stats[combo], v)
		}
	}
}

// A combo with a missing part stays absent rather than summing partial data.
func TestAddCombosMissingPart(t *testing.T) {
	stats := map[string]float64{"PTS": 20, "AST": 4}
	NBA.AddCombos(stats)

	if _, ok := stats["PRA"]; ok {
		t.Error("PRA set despite missing REB")
	}
	if _, ok := stats["RA"]; ok {
		t.Error("RA set despite missing REB")
	}
	if got := stats["PA"]; got != 24 {
		t.Errorf("PA = %v, want 24", got)
	}
}

func TestRequestCarriesLeagueDefaults(t *testing.T) {
	req := NBA.Request([]string{"PTS"}, []float64{80}, 5, true)
	if req.RetentionCap != 82 {
		t.Errorf("RetentionCap = %d, want 82", req.RetentionCap)
	}
	if !req.DefenseStats["PTS"] {
		t.Error("PTS missing from defense set")
	}
	if req.Abbrevs["PTS"] != "P" {
		t.Errorf("PTS abbrev = %q, want P", req.Abbrevs["PTS"])
	}
}
