package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hitrate-app-go/logging"
	"hitrate-app-go/models"
)

// ScheduleService fetches league schedules and answers "who plays whom
// today". The league day rolls over at 3 AM Central, not midnight, so a late
// West Coast game still counts as tonight's slate.
type ScheduleService struct {
	baseURL  string
	client   *http.Client
	location *time.Location
	logger   *logging.Logger

	// now is swappable for tests.
	now func() time.Time
}

// ScheduledGame is one entry in the schedule feed.
type ScheduledGame struct {
	League string    `json:"league"`
	Home   string    `json:"home"`
	Away   string    `json:"away"`
	Date   time.Time `json:"date"`
}

func NewScheduleService(baseURL string) *ScheduleService {
	location, err := time.LoadLocation("America/Chicago")
	if err != nil {
		logging.Errorf("Failed to load Central timezone, using UTC: %v", err)
		location = time.UTC
	}
	return &ScheduleService{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 15 * time.Second},
		location: location,
		logger:   logging.WithPrefix("ScheduleService"),
		now:      time.Now,
	}
}

// LeagueToday returns the current league day: the local Central date, shifted
// back one day before 3 AM.
func (s *ScheduleService) LeagueToday() time.Time {
	now := s.now().In(s.location)
	if now.Hour() < 3 {
		now = now.AddDate(0, 0, -1)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
}

// FetchSchedule pulls the schedule feed for a league.
func (s *ScheduleService) FetchSchedule(ctx context.Context, league string) ([]ScheduledGame, error) {
	if s.baseURL == "" {
		return nil, nil
	}
	url := fmt.Sprintf("%s/%s/schedule.json", s.baseURL, league)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("schedule request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule fetch %s: %w", league, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule fetch %s: status %d", league, resp.StatusCode)
	}

	var games []ScheduledGame
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("schedule decode %s: %w", league, err)
	}
	s.logger.Debugf("Fetched %d scheduled games for %s", len(games), league)
	return games, nil
}

// TodayMatchups maps each team playing today to its opponent. Teams not on
// today's slate are absent, which downstream renders as empty cells.
func (s *ScheduleService) TodayMatchups(games []ScheduledGame) map[string]string {
	today := s.LeagueToday()
	matchups := make(map[string]string)
	for _, g := range games {
		if !sameLeagueDay(g.Date.In(s.location), today) {
			continue
		}
		matchups[g.Home] = g.Away
		matchups[g.Away] = g.Home
	}
	return matchups
}

// BackToBack flags teams on today's slate: "2" when the team also played
// yesterday (second night), "1" when it plays again tomorrow, "N" otherwise.
// Second night wins when both apply.
func (s *ScheduleService) BackToBack(games []ScheduledGame) map[string]string {
	today := s.LeagueToday()
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	playsOn := func(day time.Time) map[string]bool {
		set := make(map[string]bool)
		for _, g := range games {
			if sameLeagueDay(g.Date.In(s.location), day) {
				set[g.Home] = true
				set[g.Away] = true
			}
		}
		return set
	}

	playedYesterday := playsOn(yesterday)
	playingToday := playsOn(today)
	playingTomorrow := playsOn(tomorrow)

	flags := make(map[string]string, len(playingToday))
	for team := range playingToday {
		switch {
		case playedYesterday[team]:
			flags[team] = models.B2BSecond
		case playingTomorrow[team]:
			flags[team] = models.B2BFront
		default:
			flags[team] = models.B2BNone
		}
	}
	return flags
}

func sameLeagueDay(t, day time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
