package models

import "testing"

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in      string
		want    Window
		wantErr bool
	}{
		{"ALL", AllGames(), false},
		{"all", AllGames(), false},
		{"", AllGames(), false},
		{"L5", LastN(5), false},
		{"l10", LastN(10), false},
		{"L0", Window{}, true},
		{"5", Window{}, true},
		{"Lfive", Window{}, true},
	}
	for _, tt := range tests {
		got, err := ParseWindow(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWindow(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseWindow(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestWindowLabelRoundTrip(t *testing.T) {
	for _, w := range []Window{AllGames(), LastN(5), LastN(10)} {
		parsed, err := ParseWindow(w.Label())
		if err != nil {
			t.Fatalf("ParseWindow(%q): %v", w.Label(), err)
		}
		if parsed != w {
			t.Errorf("round trip %+v -> %q -> %+v", w, w.Label(), parsed)
		}
	}
}

func TestColumnNaming(t *testing.T) {
	if got := ThresholdColumn("P", 80); got != "P@80" {
		t.Errorf("ThresholdColumn = %q", got)
	}
	if got := RecentThresholdColumn(5, "P", 80); got != "L5P@80" {
		t.Errorf("RecentThresholdColumn = %q", got)
	}
	if got := DefenseAvgColumn("P"); got != "PaA" {
		t.Errorf("DefenseAvgColumn = %q", got)
	}
	if got := DefenseRankColumn("P"); got != "PaR" {
		t.Errorf("DefenseRankColumn = %q", got)
	}
}
