package analysis

import (
	"math"
	"sort"

	"hitrate-app-go/models"
)

// Request describes one summary computation: which stats, at which hit-rate
// percentages, over which recent window. Stat order is the user's selection
// order and drives output column order.
type Request struct {
	// Stats are the stat keys to compute, in display order.
	Stats []string

	// Abbrevs maps stat keys to display abbreviations used in column names.
	// A stat without an entry uses its key as-is.
	Abbrevs map[string]string

	// DefenseStats marks which stats get opponent-defense columns.
	DefenseStats map[string]bool

	// Percentages are the hit-rate targets, e.g. [80].
	Percentages []float64

	// RecentN adds L{N} threshold columns over the last N games; 0 disables.
	RecentN int

	// RetentionCap bounds each player's history before any computation;
	// 0 disables.
	RetentionCap int

	// PositionScoped prefers position-bucketed defense entries over
	// team-level ones when the bucket entry exists.
	PositionScoped bool
}

// abbrev resolves a stat's display abbreviation.
func (r *Request) abbrev(stat string) string {
	if a, ok := r.Abbrevs[stat]; ok {
		return a
	}
	return stat
}

// ComputeSummaries builds the player hit-rate summary table: one row per
// qualifying player, with all-games and recent-window thresholds for every
// requested stat, plus the upcoming opponent's defensive average and rank.
//
// Identity fields come from each player's most recent game — a player traded
// mid-window is listed under the new team while old-team games still count
// toward thresholds. Players whose team is absent from the matchup map get
// an empty Opp and no defense cells. Players with no normalized position
// bucket are excluded entirely.
func ComputeSummaries(
	games []models.GameRecord,
	req Request,
	defense map[DefenseKey]DefenseEntry,
	matchups map[string]string,
	b2b map[string]string,
	injuries map[string]string,
) models.SummaryTable {
	grouped, order := groupByPlayer(games)

	rows := make([]models.PlayerSummaryRow, 0, len(order))
	present := make(map[string]bool)

	for _, pid := range order {
		group := CapRetention(grouped[pid], req.RetentionCap)
		if len(group) == 0 {
			continue
		}

		// Current team/position context is whatever the latest game says.
		latest := group[0]
		if latest.PosBucket == "" {
			continue
		}

		row := models.PlayerSummaryRow{
			PlayerID:   pid,
			Player:     latest.PlayerName,
			Pos:        latest.Position,
			PosBucket:  latest.PosBucket,
			Team:       latest.Team,
			B2B:        models.B2BNone,
			Status:     models.StatusAvailable,
			Games:      len(group),
			Thresholds: make(map[string]float64),
		}

		if flag, ok := b2b[latest.Team]; ok && flag != "" {
			row.B2B = flag
		}
		if status, ok := injuries[pid]; ok && status != "" {
			row.Status = status
		}

		opp := matchups[latest.Team]
		row.Opp = opp

		for _, stat := range req.Stats {
			valsAll := statValues(group, stat)
			if len(valsAll) == 0 {
				continue
			}

			abbrev := req.abbrev(stat)

			var valsRecent []float64
			if req.RecentN > 0 {
				recent := group
				if len(recent) > req.RecentN {
					recent = recent[:req.RecentN]
				}
				valsRecent = statValues(recent, stat)
			}

			for _, pct := range req.Percentages {
				col := models.ThresholdColumn(abbrev, pct)
				row.Thresholds[col] = HitRateThreshold(valsAll, pct)
				present[col] = true

				if req.RecentN > 0 {
					rcol := models.RecentThresholdColumn(req.RecentN, abbrev, pct)
					row.Thresholds[rcol] = HitRateThreshold(valsRecent, pct)
					present[rcol] = true
				}
			}
		}

		// Defense columns only exist when the player has an opponent today;
		// a team with no game stays blank rather than zero-filled.
		if opp != "" {
			for _, stat := range req.Stats {
				if !req.DefenseStats[stat] {
					continue
				}
				entry, ok := lookupDefense(defense, opp, stat, latest.PosBucket, req.PositionScoped)
				if !ok {
					continue
				}

				abbrev := req.abbrev(stat)
				if row.DefenseAvg == nil {
					row.DefenseAvg = make(map[string]float64)
					row.DefenseRank = make(map[string]int)
				}
				avgCol := models.DefenseAvgColumn(abbrev)
				rankCol := models.DefenseRankColumn(abbrev)
				row.DefenseAvg[avgCol] = roundTenth(entry.AvgAllowed)
				row.DefenseRank[rankCol] = entry.Rank
				present[avgCol] = true
				present[rankCol] = true
			}
		}

		rows = append(rows, row)
	}

	sortRows(rows, req)

	return models.SummaryTable{
		Columns: orderColumns(req, present),
		Rows:    rows,
	}
}

// lookupDefense resolves a defense entry, preferring the position-scoped
// table when requested and falling back to the team-level entry.
func lookupDefense(
	defense map[DefenseKey]DefenseEntry,
	opp, stat, bucket string,
	positionScoped bool,
) (DefenseEntry, bool) {
	if positionScoped {
		if e, ok := defense[DefenseKey{Opponent: opp, Stat: stat, PosBucket: bucket}]; ok {
			return e, true
		}
	}
	e, ok := defense[DefenseKey{Opponent: opp, Stat: stat}]
	return e, ok
}

// groupByPlayer buckets records by player ID, remembering first-seen order
// so output stays deterministic for a given input table.
func groupByPlayer(games []models.GameRecord) (map[string][]models.GameRecord, []string) {
	grouped := make(map[string][]models.GameRecord)
	var order []string
	for _, g := range games {
		if g.PlayerID == "" {
			continue
		}
		if _, ok := grouped[g.PlayerID]; !ok {
			order = append(order, g.PlayerID)
		}
		grouped[g.PlayerID] = append(grouped[g.PlayerID], g)
	}
	return grouped, order
}

// statValues collects a stat's recorded values from a group of games.
// Absent cells are skipped, not zeroed.
func statValues(games []models.GameRecord, stat string) []float64 {
	vals := make([]float64, 0, len(games))
	for _, g := range games {
		if v, ok := g.Stats[stat]; ok && !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// sortRows orders the table descending by the first selected stat's
// all-games threshold at the last (highest-priority) percentage. Rows
// without that column sink to the bottom.
func sortRows(rows []models.PlayerSummaryRow, req Request) {
	if len(req.Stats) == 0 || len(req.Percentages) == 0 {
		return
	}
	sortCol := models.ThresholdColumn(req.abbrev(req.Stats[0]), req.Percentages[len(req.Percentages)-1])

	sort.SliceStable(rows, func(i, j int) bool {
		vi, oki := rows[i].Thresholds[sortCol]
		vj, okj := rows[j].Thresholds[sortCol]
		if oki != okj {
			return oki
		}
		return vi > vj
	})
}

// orderColumns builds the output column order: identity columns first, then
// for each selected stat its threshold, recent-threshold, and defense
// columns. Columns no row produced are dropped.
func orderColumns(req Request, present map[string]bool) []string {
	cols := []string{"Player", "Pos", "Team", "Opp", "B2B", "Status", "Gms"}

	appendIf := func(col string) {
		if present[col] {
			cols = append(cols, col)
		}
	}

	for _, stat := range req.Stats {
		abbrev := req.abbrev(stat)
		for _, pct := range req.Percentages {
			appendIf(models.ThresholdColumn(abbrev, pct))
			if req.RecentN > 0 {
				appendIf(models.RecentThresholdColumn(req.RecentN, abbrev, pct))
			}
		}
		if req.DefenseStats[stat] {
			appendIf(models.DefenseAvgColumn(abbrev))
			appendIf(models.DefenseRankColumn(abbrev))
		}
	}
	return cols
}

// roundTenth rounds to one decimal place for display.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
