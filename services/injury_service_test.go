package services

import (
	"strings"
	"testing"

	"hitrate-app-go/models"
)

func TestNormName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LeBron James", "l james"},
		{"P.J. Washington", "p washington"},
		{"Jaren Jackson Jr.", "j jackson"},
		{"Tim Hardaway Jr", "t hardaway"},
		{"O'Neal", "oneal"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormName(tt.in); got != tt.want {
			t.Errorf("NormName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]string{
		"Out":          models.StatusOut,
		"out":          models.StatusOut,
		"Doubtful":     models.StatusDoubtful,
		"Questionable": models.StatusQuestionable,
		"GTD":          models.StatusQuestionable,
		"Day-To-Day":   models.StatusQuestionable,
		"Probable":     models.StatusProbable,
		"Active":       "",
		"":             "",
		// Reserve and other non-playing designations all count as out.
		"IR":              models.StatusOut,
		"Injured Reserve": models.StatusOut,
		"NFI":             models.StatusOut,
		"PUP":             models.StatusOut,
		"Suspended":       models.StatusOut,
	}
	for in, want := range tests {
		if got := NormalizeStatus(in); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func testReport(t *testing.T) *InjuryReport {
	t.Helper()
	csv := strings.Join([]string{
		"player_id,player_name,status",
		"1001,LeBron James,Questionable",
		"1002,Jaren Jackson Jr.,Out",
		",Tyrese Maxey,Doubtful", // no stable ID in this feed
		"1004,Healthy Guy,Active",
		"1005,Long Termer,IR",
	}, "\n")
	report, err := ParseInjuryReport(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	return report
}

func TestInjuryReportLookupByID(t *testing.T) {
	report := testReport(t)
	if got := report.StatusFor("1001", "LeBron James"); got != models.StatusQuestionable {
		t.Errorf("status = %q, want Q", got)
	}
	// Reserve-listed players must never come back playable.
	if got := report.StatusFor("1005", "Long Termer"); got != models.StatusOut {
		t.Errorf("reserve status = %q, want O", got)
	}
}

// The stat feed's ID is unknown to the injury feed, so the normalized name
// match carries the lookup.
func TestInjuryReportLookupByNormName(t *testing.T) {
	report := testReport(t)
	if got := report.StatusFor("nba-777", "Tyrese Maxey"); got != models.StatusDoubtful {
		t.Errorf("status = %q, want D", got)
	}
	// A suffix mismatch between feeds still resolves.
	if got := report.StatusFor("nba-888", "Jaren Jackson"); got != models.StatusOut {
		t.Errorf("status = %q, want O", got)
	}
}

func TestInjuryReportUnlistedPlayerAvailable(t *testing.T) {
	report := testReport(t)
	if got := report.StatusFor("9999", "Nobody Inparticular"); got != models.StatusAvailable {
		t.Errorf("status = %q, want A", got)
	}
	// Active players are omitted from the report entirely.
	if got := report.StatusFor("1004", "Healthy Guy"); got != models.StatusAvailable {
		t.Errorf("active player status = %q, want A", got)
	}
}

func TestInjuryReportStatusMap(t *testing.T) {
	report := testReport(t)
	players := map[string]string{
		"1001": "LeBron James",
		"9999": "Nobody Inparticular",
	}
	statuses := report.StatusMap(players)
	if statuses["1001"] != models.StatusQuestionable {
		t.Errorf("1001 = %q, want Q", statuses["1001"])
	}
	if _, ok := statuses["9999"]; ok {
		t.Error("available player should be absent from the map")
	}
}
