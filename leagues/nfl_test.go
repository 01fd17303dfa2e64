package leagues

import (
	"strings"
	"testing"
)

func TestNFLStatAllowed(t *testing.T) {
	tests := []struct {
		stat string
		pos  string
		want bool
	}{
		{"PaYds", "QB", true},
		{"PaYds", "WR", false},
		{"RuYds", "RB", true},
		{"RuYds", "QB", true},
		{"RuYds", "K", false},
		{"Rec", "TE", true},
		{"Rec", "QB", false},
		{"TckComb", "MLB", true},
		{"TckComb", "WR", false},
		{"Fgm", "K", true},
		{"Fgm", "QB", false},
		{"PaYds", "", true},   // unknown position not gated
		{"Mystery", "QB", true}, // unknown stat not gated
	}
	for _, tt := range tests {
		if got := NFLStatAllowed(tt.stat, tt.pos); got != tt.want {
			t.Errorf("NFLStatAllowed(%q, %q) = %v, want %v", tt.stat, tt.pos, got, tt.want)
		}
	}
}

func TestNormalizeNFLTeamCode(t *testing.T) {
	tests := map[string]string{
		"GNB": "GB",
		"KAN": "KC",
		"LA":  "LAR",
		"LVR": "LV",
		"NWE": "NE",
		"NOR": "NO",
		"SFO": "SF",
		"TAM": "TB",
		"WAS": "WSH",
		"phi": "PHI",
		"DAL": "DAL",
	}
	for in, want := range tests {
		if got := NormalizeNFLTeamCode(in); got != want {
			t.Errorf("NormalizeNFLTeamCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseNFLGameLogs(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Team,Opp,Week,Season,Pos,PaYds,RuYds,Rec,RecYds",
		"Pat Passer,KAN,LVR,3,2025,QB,305,22,,",
		"Wendell Wideout,KAN,LVR,3,2025,WR,12,,6,88",
	}, "\n")

	records, err := NFL.ParseGameLogs(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	qb := records[0]
	if qb.Team != "KC" || qb.Opponent != "LV" {
		t.Errorf("teams = %s vs %s, want KC vs LV (canonicalized)", qb.Team, qb.Opponent)
	}
	if qb.PlayerID != "Pat Passer" {
		t.Errorf("PlayerID = %q, want the name", qb.PlayerID)
	}
	if qb.Stats["PaYds"] != 305 || qb.Stats["RuYds"] != 22 {
		t.Errorf("QB stats = %v", qb.Stats)
	}

	wr := records[1]
	// A WR's stray passing yards are gated out.
	if _, ok := wr.Stats["PaYds"]; ok {
		t.Error("WR kept a passing stat")
	}
	if wr.Stats["Rec"] != 6 || wr.Stats["RecYds"] != 88 {
		t.Errorf("WR stats = %v", wr.Stats)
	}
	if wr.PosBucket != "WR" {
		t.Errorf("PosBucket = %q, want WR", wr.PosBucket)
	}
}

// Week dates must order within a season so windowing picks the latest weeks.
func TestNFLWeekDateOrdering(t *testing.T) {
	w1 := nflWeekDate(2025, 1)
	w5 := nflWeekDate(2025, 5)
	w18 := nflWeekDate(2025, 18)
	if !w1.Before(w5) || !w5.Before(w18) {
		t.Errorf("week dates out of order: %v %v %v", w1, w5, w18)
	}
	if !w18.Before(nflWeekDate(2026, 1)) {
		t.Error("next season's week 1 should come after week 18")
	}
}
