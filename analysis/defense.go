package analysis

import (
	"sort"

	"github.com/montanaflynn/stats"

	"hitrate-app-go/models"
)

// RankDirection controls which end of the allowed-average scale gets rank 1.
type RankDirection int

const (
	// RankAscending ranks the lowest allowed average first: rank 1 is the
	// toughest defense. This is the default for defensive stats.
	RankAscending RankDirection = iota

	// RankDescending ranks the highest allowed average first: rank 1 is the
	// most generous matchup. Used for goalie-facing offense stats, where
	// more shots or goals faced means a better opportunity.
	RankDescending
)

// DefenseKey identifies one opponent-defense cell: which opponent, which
// stat, and (for position-scoped tables) which position bucket. Team-level
// entries leave PosBucket empty.
type DefenseKey struct {
	Opponent  string
	Stat      string
	PosBucket string
}

// DefenseEntry is the allowed average and competition rank for one key.
type DefenseEntry struct {
	AvgAllowed float64
	Rank       int
}

// ComputeDefenseRanks computes, per opponent (and per position bucket when
// byPosition is set), the mean value allowed for each stat over that
// opponent's windowed games, plus the opponent's rank.
//
// The window is applied per group — an opponent's last N games, not the last
// N league-wide. Ranking uses "min" tie handling: equal averages share the
// lowest rank in the tie group and the next distinct value skips the ranks
// the group consumed. Position-scoped entries rank within their bucket only.
// Opponents or stats with no qualifying rows are simply absent from the
// result, never an error.
func ComputeDefenseRanks(
	teamGames []models.TeamGameTotal,
	w models.Window,
	statNames []string,
	byPosition bool,
	directions map[string]RankDirection,
) map[DefenseKey]DefenseEntry {
	type groupKey struct {
		opp    string
		bucket string
	}

	groups := make(map[groupKey][]models.TeamGameTotal)
	for _, row := range teamGames {
		if row.Opponent == "" {
			continue
		}
		k := groupKey{opp: row.Opponent}
		if byPosition {
			if row.PosBucket == "" {
				continue
			}
			k.bucket = row.PosBucket
		}
		groups[k] = append(groups[k], row)
	}

	for k, rows := range groups {
		groups[k] = windowTotals(rows, w)
	}

	out := make(map[DefenseKey]DefenseEntry)

	for _, stat := range statNames {
		type avgEntry struct {
			key groupKey
			avg float64
		}

		// Averages are ranked within their bucket scope; team-level rows all
		// share the empty bucket.
		byBucket := make(map[string][]avgEntry)
		for k, rows := range groups {
			vals := make([]float64, 0, len(rows))
			for _, r := range rows {
				if v, ok := r.Stats[stat]; ok {
					vals = append(vals, v)
				}
			}
			if len(vals) == 0 {
				continue
			}
			mean, err := stats.Mean(vals)
			if err != nil {
				continue
			}
			byBucket[k.bucket] = append(byBucket[k.bucket], avgEntry{key: k, avg: mean})
		}

		dir := directions[stat]

		for bucket, entries := range byBucket {
			// Deterministic rank assignment regardless of map iteration order.
			sort.Slice(entries, func(i, j int) bool {
				if entries[i].avg != entries[j].avg {
					return entries[i].avg < entries[j].avg
				}
				return entries[i].key.opp < entries[j].key.opp
			})

			avgs := make([]float64, len(entries))
			for i, e := range entries {
				avgs[i] = e.avg
			}
			ranks := competitionRanks(avgs, dir)

			for i, e := range entries {
				out[DefenseKey{Opponent: e.key.opp, Stat: stat, PosBucket: bucket}] = DefenseEntry{
					AvgAllowed: e.avg,
					Rank:       ranks[i],
				}
			}
		}
	}

	return out
}

// windowTotals keeps the most recent games of one opponent's group,
// mirroring SelectWindow for team-total rows.
func windowTotals(rows []models.TeamGameTotal, w models.Window) []models.TeamGameTotal {
	out := append([]models.TeamGameTotal(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if w.All() || len(out) <= w.N {
		return out
	}
	return out[:w.N]
}

// competitionRanks assigns "min" ranks to the values: tied values receive
// the same rank, and ranks skip past tie groups (1, 2, 2, 4). Direction
// chooses whether low or high values rank first.
func competitionRanks(values []float64, dir RankDirection) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if dir == RankDescending {
			return values[idx[a]] > values[idx[b]]
		}
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]int, len(values))
	for pos, i := range idx {
		if pos > 0 && values[i] == values[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]
		} else {
			ranks[i] = pos + 1
		}
	}
	return ranks
}
