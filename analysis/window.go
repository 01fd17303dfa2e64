package analysis

import (
	"sort"

	"hitrate-app-go/models"
)

// SortByDateDesc returns a copy of the records sorted most recent first.
// The sort is stable: records sharing a date keep their input order.
func SortByDateDesc(games []models.GameRecord) []models.GameRecord {
	out := append([]models.GameRecord(nil), games...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SelectWindow returns the subset of a player's games the window covers:
// the full history for an all-games window, otherwise the N most recent.
// Fewer than N games returns all of them — never an error.
func SelectWindow(games []models.GameRecord, w models.Window) []models.GameRecord {
	sorted := SortByDateDesc(games)
	if w.All() || len(sorted) <= w.N {
		return sorted
	}
	return sorted[:w.N]
}

// CapRetention bounds a player's history to at most cap most-recent games
// before any windowing is applied. A cap of 0 or less disables the cap.
// Leagues with long multi-season feeds set this (82 for basketball) to keep
// per-player compute bounded.
func CapRetention(games []models.GameRecord, cap int) []models.GameRecord {
	sorted := SortByDateDesc(games)
	if cap <= 0 || len(sorted) <= cap {
		return sorted
	}
	return sorted[:cap]
}
