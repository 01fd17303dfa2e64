package analysis

import (
	"testing"
	"time"

	"hitrate-app-go/models"
)

func totalOn(day int, team, opp string, stats map[string]float64) models.TeamGameTotal {
	return models.TeamGameTotal{
		Team:     team,
		Opponent: opp,
		Date:     time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC),
		Stats:    stats,
	}
}

// allowedBy builds the rows that make defense `opp` allow the given values,
// one game per value.
func allowedBy(opp string, values ...float64) []models.TeamGameTotal {
	rows := make([]models.TeamGameTotal, 0, len(values))
	for i, v := range values {
		rows = append(rows, totalOn(i+1, "XXX", opp, map[string]float64{"PTS": v}))
	}
	return rows
}

func TestComputeDefenseRanksMinTies(t *testing.T) {
	var rows []models.TeamGameTotal
	rows = append(rows, allowedBy("AAA", 100)...)
	rows = append(rows, allowedBy("BBB", 100)...)
	rows = append(rows, allowedBy("CCC", 90)...)

	got := ComputeDefenseRanks(rows, models.AllGames(), []string{"PTS"}, false, nil)

	wantRanks := map[string]int{"CCC": 1, "AAA": 2, "BBB": 2}
	for opp, want := range wantRanks {
		entry, ok := got[DefenseKey{Opponent: opp, Stat: "PTS"}]
		if !ok {
			t.Fatalf("no entry for %s", opp)
		}
		if entry.Rank != want {
			t.Errorf("%s rank = %d, want %d", opp, entry.Rank, want)
		}
	}
}

// After a tie group the next rank skips the consumed positions: 1, 2, 2, 4.
func TestCompetitionRanksSkipAfterTie(t *testing.T) {
	ranks := competitionRanks([]float64{90, 100, 100, 110}, RankAscending)
	want := []int{1, 2, 2, 4}
	for i := range want {
		if ranks[i] != want[i] {
			t.Fatalf("ranks = %v, want %v", ranks, want)
		}
	}
}

func TestCompetitionRanksDescending(t *testing.T) {
	ranks := competitionRanks([]float64{25, 31, 28}, RankDescending)
	want := []int{3, 1, 2}
	for i := range want {
		if ranks[i] != want[i] {
			t.Fatalf("ranks = %v, want %v", ranks, want)
		}
	}
}

// The window applies per opponent: each defense's last N games, not the last
// N league-wide.
func TestComputeDefenseRanksWindowPerOpponent(t *testing.T) {
	rows := []models.TeamGameTotal{
		totalOn(1, "XXX", "AAA", map[string]float64{"PTS": 200}),
		totalOn(5, "XXX", "AAA", map[string]float64{"PTS": 100}),
		totalOn(6, "XXX", "AAA", map[string]float64{"PTS": 110}),
		totalOn(2, "XXX", "BBB", map[string]float64{"PTS": 90}),
		totalOn(3, "XXX", "BBB", map[string]float64{"PTS": 94}),
	}

	got := ComputeDefenseRanks(rows, models.LastN(2), []string{"PTS"}, false, nil)

	a := got[DefenseKey{Opponent: "AAA", Stat: "PTS"}]
	if a.AvgAllowed != 105 {
		t.Errorf("AAA avg = %v, want 105 (old blowout outside window)", a.AvgAllowed)
	}
	b := got[DefenseKey{Opponent: "BBB", Stat: "PTS"}]
	if b.AvgAllowed != 92 {
		t.Errorf("BBB avg = %v, want 92", b.AvgAllowed)
	}
	if b.Rank != 1 || a.Rank != 2 {
		t.Errorf("ranks = BBB:%d AAA:%d, want BBB:1 AAA:2", b.Rank, a.Rank)
	}
}

func TestComputeDefenseRanksDescendingDirection(t *testing.T) {
	var rows []models.TeamGameTotal
	for i, tc := range []struct {
		opp string
		v   float64
	}{{"AAA", 25}, {"BBB", 31}, {"CCC", 28}} {
		rows = append(rows, totalOn(i+1, "XXX", tc.opp, map[string]float64{"SA": tc.v}))
	}

	got := ComputeDefenseRanks(rows, models.AllGames(), []string{"SA"}, false,
		map[string]RankDirection{"SA": RankDescending})

	// Highest volume faced ranks first.
	if got[DefenseKey{Opponent: "BBB", Stat: "SA"}].Rank != 1 {
		t.Errorf("BBB rank = %d, want 1", got[DefenseKey{Opponent: "BBB", Stat: "SA"}].Rank)
	}
	if got[DefenseKey{Opponent: "AAA", Stat: "SA"}].Rank != 3 {
		t.Errorf("AAA rank = %d, want 3", got[DefenseKey{Opponent: "AAA", Stat: "SA"}].Rank)
	}
}

// Position-scoped entries rank within their bucket, independently of other
// buckets, and unbucketed rows are ignored.
func TestComputeDefenseRanksByPosition(t *testing.T) {
	rows := []models.TeamGameTotal{
		{Team: "XXX", Opponent: "AAA", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), PosBucket: "G", Stats: map[string]float64{"PTS": 50}},
		{Team: "XXX", Opponent: "BBB", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), PosBucket: "G", Stats: map[string]float64{"PTS": 40}},
		{Team: "XXX", Opponent: "AAA", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), PosBucket: "C", Stats: map[string]float64{"PTS": 20}},
		{Team: "XXX", Opponent: "BBB", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Stats: map[string]float64{"PTS": 999}},
	}

	got := ComputeDefenseRanks(rows, models.AllGames(), []string{"PTS"}, true, nil)

	if e := got[DefenseKey{Opponent: "BBB", Stat: "PTS", PosBucket: "G"}]; e.Rank != 1 {
		t.Errorf("BBB guards rank = %d, want 1", e.Rank)
	}
	if e := got[DefenseKey{Opponent: "AAA", Stat: "PTS", PosBucket: "G"}]; e.Rank != 2 {
		t.Errorf("AAA guards rank = %d, want 2", e.Rank)
	}
	// AAA is the only defense with center rows, so it ranks first there.
	if e := got[DefenseKey{Opponent: "AAA", Stat: "PTS", PosBucket: "C"}]; e.Rank != 1 {
		t.Errorf("AAA centers rank = %d, want 1", e.Rank)
	}
	if _, ok := got[DefenseKey{Opponent: "BBB", Stat: "PTS"}]; ok {
		t.Error("unbucketed row leaked into a position-scoped table")
	}
}

func TestComputeDefenseRanksMissingStatAbsent(t *testing.T) {
	rows := allowedBy("AAA", 100)
	got := ComputeDefenseRanks(rows, models.AllGames(), []string{"PTS", "REB"}, false, nil)

	if _, ok := got[DefenseKey{Opponent: "AAA", Stat: "PTS"}]; !ok {
		t.Error("PTS entry missing")
	}
	if _, ok := got[DefenseKey{Opponent: "AAA", Stat: "REB"}]; ok {
		t.Error("REB entry present despite no data")
	}
}
