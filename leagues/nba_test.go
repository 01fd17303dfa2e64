package leagues

import (
	"strings"
	"testing"
)

func TestParseMatchup(t *testing.T) {
	tests := []struct {
		matchup string
		team    string
		opp     string
		ok      bool
	}{
		{"LAL @ DEN", "LAL", "DEN", true},
		{"DEN vs. LAL", "DEN", "LAL", true},
		{"DEN vs LAL", "DEN", "LAL", true},
		{"  LAL @ DEN  ", "LAL", "DEN", true},
		{"LAL", "", "", false},
		{"", "", "", false},
		{"LAL - DEN", "", "", false},
	}

	for _, tt := range tests {
		team, opp, ok := ParseMatchup(tt.matchup)
		if team != tt.team || opp != tt.opp || ok != tt.ok {
			t.Errorf("ParseMatchup(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.matchup, team, opp, ok, tt.team, tt.opp, tt.ok)
		}
	}
}

func TestNormalizeNBAPosition(t *testing.T) {
	tests := []struct {
		pos    string
		bucket string
	}{
		{"Guard", "G"},
		{"Forward", "F"},
		{"Center", "C"},
		{"Guard-Forward", "Wing"},
		{"Forward-Guard", "Wing"},
		{"Center-Forward", "Big"},
		{"Forward-Center", "Big"},
		{"", ""},
		{"Point God", ""},
	}
	for _, tt := range tests {
		if got := NormalizeNBAPosition(tt.pos); got != tt.bucket {
			t.Errorf("NormalizeNBAPosition(%q) = %q, want %q", tt.pos, got, tt.bucket)
		}
	}

	if got := NBAPositionDisplay("Guard-Forward"); got != "G/F" {
		t.Errorf("display = %q, want G/F", got)
	}
}

func TestParseNBAGameLogs(t *testing.T) {
	csv := strings.Join([]string{
		"player_id,player_name,MATCHUP,GAME_DATE,Position,PTS,REB,AST,STL",
		"201939,Steph Example,GSW vs. LAL,2026-01-15,Guard,31,5,8,2",
		"203999,Big Example,DEN @ GSW,2026-01-14,Center-Forward,27,14,9,",
		"000001,Bad Row,nonsense,2026-01-14,Guard,10,2,1,0",
	}, "\n")

	records, err := NBA.ParseGameLogs(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (bad matchup skipped)", len(records))
	}

	r := records[0]
	if r.Team != "GSW" || r.Opponent != "LAL" {
		t.Errorf("matchup = %s vs %s, want GSW vs LAL", r.Team, r.Opponent)
	}
	if r.PosBucket != "G" {
		t.Errorf("PosBucket = %q, want G", r.PosBucket)
	}
	if r.Stats["PTS"] != 31 || r.Stats["PRA"] != 44 {
		t.Errorf("stats = %v, want PTS 31 and PRA 44", r.Stats)
	}

	r = records[1]
	if r.PosBucket != "Big" || r.Position != "C/F" {
		t.Errorf("position = %q/%q, want Big/C/F", r.PosBucket, r.Position)
	}
	// Empty STL cell stays absent, not zero.
	if _, ok := r.Stats["STL"]; ok {
		t.Error("empty STL cell coerced to a value")
	}
}

func TestParseNBAGameLogsMissingColumn(t *testing.T) {
	csv := "player_name,MATCHUP,GAME_DATE\nSomeone,GSW vs. LAL,2026-01-15\n"
	if _, err := NBA.ParseGameLogs(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for missing player_id column")
	}
}

func TestParseNBATeamTotals(t *testing.T) {
	csv := strings.Join([]string{
		"team,MATCHUP,GAME_DATE,PTS,REB,AST",
		"GSW,GSW vs. LAL,2026-01-15,121,44,29",
		"LAL,LAL @ GSW,2026-01-15,114,40,25",
	}, "\n")

	totals, err := NBA.ParseTeamTotals(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 2 {
		t.Fatalf("got %d totals, want 2", len(totals))
	}
	if totals[0].Team != "GSW" || totals[0].Opponent != "LAL" {
		t.Errorf("row 0 = %s vs %s, want GSW vs LAL", totals[0].Team, totals[0].Opponent)
	}
	if totals[0].Stats["PRA"] != 194 {
		t.Errorf("PRA = %v, want 194", totals[0].Stats["PRA"])
	}
}
