package services

import (
	"testing"
	"time"

	"hitrate-app-go/models"
)

func testScheduleService(t *testing.T, now time.Time) *ScheduleService {
	t.Helper()
	s := NewScheduleService("")
	s.now = func() time.Time { return now }
	return s
}

func central(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

// Before 3 AM Central the league day is still yesterday: a late West Coast
// game belongs to the previous slate.
func TestLeagueTodayCutoff(t *testing.T) {
	loc := central(t)

	s := testScheduleService(t, time.Date(2026, 1, 15, 1, 30, 0, 0, loc))
	if got := s.LeagueToday(); got.Day() != 14 {
		t.Errorf("1:30 AM league day = %v, want Jan 14", got)
	}

	s = testScheduleService(t, time.Date(2026, 1, 15, 3, 0, 0, 0, loc))
	if got := s.LeagueToday(); got.Day() != 15 {
		t.Errorf("3:00 AM league day = %v, want Jan 15", got)
	}

	s = testScheduleService(t, time.Date(2026, 1, 15, 20, 0, 0, 0, loc))
	if got := s.LeagueToday(); got.Day() != 15 {
		t.Errorf("evening league day = %v, want Jan 15", got)
	}
}

func scheduleFixture(loc *time.Location) []ScheduledGame {
	day := func(d, hour int) time.Time {
		return time.Date(2026, 1, d, hour, 0, 0, 0, loc)
	}
	return []ScheduledGame{
		{Home: "DEN", Away: "LAL", Date: day(15, 19)},
		{Home: "BOS", Away: "MIA", Date: day(15, 19)},
		{Home: "LAL", Away: "PHX", Date: day(14, 19)}, // LAL second night
		{Home: "BOS", Away: "NYK", Date: day(16, 19)}, // BOS plays tomorrow too
		{Home: "CHI", Away: "DET", Date: day(17, 19)}, // not today
	}
}

func TestTodayMatchups(t *testing.T) {
	loc := central(t)
	s := testScheduleService(t, time.Date(2026, 1, 15, 12, 0, 0, 0, loc))
	games := scheduleFixture(loc)

	matchups := s.TodayMatchups(games)
	want := map[string]string{
		"DEN": "LAL", "LAL": "DEN",
		"BOS": "MIA", "MIA": "BOS",
	}
	if len(matchups) != len(want) {
		t.Fatalf("matchups = %v, want %v", matchups, want)
	}
	for team, opp := range want {
		if matchups[team] != opp {
			t.Errorf("matchups[%s] = %q, want %q", team, matchups[team], opp)
		}
	}
	if _, ok := matchups["CHI"]; ok {
		t.Error("team without a game today appeared in matchups")
	}
}

func TestBackToBackFlags(t *testing.T) {
	loc := central(t)
	s := testScheduleService(t, time.Date(2026, 1, 15, 12, 0, 0, 0, loc))
	games := scheduleFixture(loc)

	flags := s.BackToBack(games)

	if flags["LAL"] != models.B2BSecond {
		t.Errorf("LAL = %q, want 2 (played yesterday)", flags["LAL"])
	}
	if flags["BOS"] != models.B2BFront {
		t.Errorf("BOS = %q, want 1 (plays tomorrow)", flags["BOS"])
	}
	if flags["DEN"] != models.B2BNone {
		t.Errorf("DEN = %q, want N", flags["DEN"])
	}
	if _, ok := flags["CHI"]; ok {
		t.Error("team not playing today got a flag")
	}
}
