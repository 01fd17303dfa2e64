package models

import (
	"fmt"
)

// Player availability status codes, as normalized by the injury feed.
const (
	StatusAvailable    = "A"
	StatusOut          = "O"
	StatusDoubtful     = "D"
	StatusQuestionable = "Q"
	StatusProbable     = "P"
)

// Back-to-back flags: "N" no adjacent game, "1" plays again tomorrow,
// "2" played yesterday (second night).
const (
	B2BNone   = "N"
	B2BFront  = "1"
	B2BSecond = "2"
)

// PlayerSummaryRow is one player's line in the computed hit-rate table.
// Thresholds, DefenseAvg, and DefenseRank are keyed by output column name;
// an absent key means the column is empty for this player (no games with the
// stat, or no opponent today) — deliberately distinguishable from zero.
type PlayerSummaryRow struct {
	PlayerID    string             `json:"playerId"`
	Player      string             `json:"player"`
	Pos         string             `json:"pos"`
	PosBucket   string             `json:"-"`
	Team        string             `json:"team"`
	Opp         string             `json:"opp,omitempty"`
	B2B         string             `json:"b2b"`
	Status      string             `json:"status"`
	Games       int                `json:"gms"`
	Thresholds  map[string]float64 `json:"thresholds"`
	DefenseAvg  map[string]float64 `json:"defenseAvg,omitempty"`
	DefenseRank map[string]int     `json:"defenseRank,omitempty"`
}

// SummaryTable is the final output: column order plus one row per qualifying
// player. It is rebuilt from scratch on every request and never persisted.
type SummaryTable struct {
	Columns []string           `json:"columns"`
	Rows    []PlayerSummaryRow `json:"rows"`
}

// Value looks up a row's value under an output column name. The second
// return distinguishes "empty cell" from zero.
func (r *PlayerSummaryRow) Value(column string) (float64, bool) {
	if v, ok := r.Thresholds[column]; ok {
		return v, true
	}
	if v, ok := r.DefenseAvg[column]; ok {
		return v, true
	}
	if v, ok := r.DefenseRank[column]; ok {
		return float64(v), true
	}
	return 0, false
}

// Flatten renders each row as a single map for JSON/CSV output, identity
// fields first, stat cells keyed by column name. Empty cells are omitted.
func (t *SummaryTable) Flatten() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(t.Rows))
	for i := range t.Rows {
		r := &t.Rows[i]
		m := map[string]interface{}{
			"Player": r.Player,
			"Pos":    r.Pos,
			"Team":   r.Team,
			"Opp":    r.Opp,
			"B2B":    r.B2B,
			"Status": r.Status,
			"Gms":    r.Games,
		}
		for col, v := range r.Thresholds {
			m[col] = v
		}
		for col, v := range r.DefenseAvg {
			m[col] = v
		}
		for col, v := range r.DefenseRank {
			m[col] = v
		}
		out = append(out, m)
	}
	return out
}

// Output column naming scheme. Downstream sorting and column selection key
// off these exact shapes, so they are part of the API contract:
//
//	P@80    — all-games threshold for stat "P" at 80%
//	L5P@80  — threshold over the last 5 games
//	PaA     — opponent's average allowed for the stat
//	PaR     — opponent's rank among all opponents for the stat

// ThresholdColumn names the all-games threshold column for a stat.
func ThresholdColumn(abbrev string, pct float64) string {
	return fmt.Sprintf("%s@%d", abbrev, int(pct))
}

// RecentThresholdColumn names the recent-window threshold column.
func RecentThresholdColumn(n int, abbrev string, pct float64) string {
	return fmt.Sprintf("L%d%s@%d", n, abbrev, int(pct))
}

// DefenseAvgColumn names the opponent allowed-average column for a stat.
func DefenseAvgColumn(abbrev string) string {
	return abbrev + "aA"
}

// DefenseRankColumn names the opponent defensive-rank column for a stat.
func DefenseRankColumn(abbrev string) string {
	return abbrev + "aR"
}
