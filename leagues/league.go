// Package leagues holds the per-league adapter configurations: which stats a
// league tracks, how they abbreviate, how positions collapse into buckets,
// how combo stats derive, and how raw feed tables map onto the canonical
// GameRecord / TeamGameTotal shapes the analysis core consumes. The core
// itself is league-agnostic; everything sport-specific lives here.
package leagues

import (
	"fmt"
	"io"
	"strings"

	"hitrate-app-go/analysis"
	"hitrate-app-go/models"
)

// Combo is a derived statistic formed by summing other tracked statistics,
// e.g. points + rebounds + assists. Combos are materialized at ingest time,
// before any windowing or ranking, and only when every part is present.
type Combo struct {
	Name  string
	Parts []string
}

// Config describes one league (or one player role within a league, where a
// sport splits stat sets the way hockey splits skaters and goalies).
type Config struct {
	// Code is the routing key ("nba", "nfl", "nhl", "nhl-goalies").
	Code string
	Name string

	// StatKeys lists the trackable stats in canonical display order.
	StatKeys []string

	// Abbrevs maps stat keys to the short names used in output columns.
	Abbrevs map[string]string

	// DefaultStats are the stats selected when a request names none.
	DefaultStats []string

	// DefenseStats are the stat keys that get opponent-defense columns.
	DefenseStats []string

	// Combos are derived-stat rules applied at ingest.
	Combos []Combo

	// RankDirections overrides the rank direction per stat. Stats without
	// an entry rank ascending (lower allowed = rank 1 = toughest defense).
	RankDirections map[string]analysis.RankDirection

	// DefaultRecentN is the league's usual recent-window size.
	DefaultRecentN int

	// RetentionCap bounds per-player history before computation; 0 = no cap.
	RetentionCap int

	// ParseGameLogs reads the league's player game-log table.
	ParseGameLogs func(r io.Reader) ([]models.GameRecord, error)

	// ParseTeamTotals reads the league's team-totals table. Nil for leagues
	// whose defense tables are not wired.
	ParseTeamTotals func(r io.Reader) ([]models.TeamGameTotal, error)

	// TotalsCode overrides which league key the stored team totals live
	// under, for configs that share one totals table. Empty means Code.
	TotalsCode string
}

// TotalsLeague returns the league key team totals are stored under.
func (c *Config) TotalsLeague() string {
	if c.TotalsCode != "" {
		return c.TotalsCode
	}
	return c.Code
}

// AddCombos derives this league's combo stats in place. A combo is only set
// when every constituent is present.
func (c *Config) AddCombos(stats map[string]float64) {
	for _, combo := range c.Combos {
		sum := 0.0
		complete := true
		for _, part := range combo.Parts {
			v, ok := stats[part]
			if !ok {
				complete = false
				break
			}
			sum += v
		}
		if complete {
			stats[combo.Name] = sum
		}
	}
}

// DefenseStatSet returns the defense-eligible stats as a membership set.
func (c *Config) DefenseStatSet() map[string]bool {
	set := make(map[string]bool, len(c.DefenseStats))
	for _, s := range c.DefenseStats {
		set[s] = true
	}
	return set
}

// HasStat reports whether the league tracks the given stat key.
func (c *Config) HasStat(key string) bool {
	for _, s := range c.StatKeys {
		if s == key {
			return true
		}
	}
	return false
}

// Request assembles the analysis request for a summary computation over this
// league's configuration.
func (c *Config) Request(stats []string, percentages []float64, recentN int, positionScoped bool) analysis.Request {
	return analysis.Request{
		Stats:          stats,
		Abbrevs:        c.Abbrevs,
		DefenseStats:   c.DefenseStatSet(),
		Percentages:    percentages,
		RecentN:        recentN,
		RetentionCap:   c.RetentionCap,
		PositionScoped: positionScoped,
	}
}

var registry = map[string]*Config{}

func register(c *Config) *Config {
	registry[c.Code] = c
	return c
}

// ByCode returns the league configuration for a routing code.
func ByCode(code string) (*Config, error) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, fmt.Errorf("unknown league %q", code)
	}
	return c, nil
}

// Codes lists the registered league codes.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}
