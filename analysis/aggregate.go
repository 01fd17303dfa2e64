package analysis

import (
	"time"

	"hitrate-app-go/models"
)

// BuildPositionalTotals derives position-bucketed team-game totals from raw
// player game records: for each (team, opponent, game date, position bucket)
// it sums what the opposing defense allowed to players in that bucket. The
// result feeds ComputeDefenseRanks with byPosition set.
//
// Records without a position bucket are skipped. A stat appears in a total
// only when at least one contributing record carried it, so an untracked
// stat stays absent rather than becoming a zero.
func BuildPositionalTotals(records []models.GameRecord, statNames []string) []models.TeamGameTotal {
	type totalKey struct {
		team   string
		opp    string
		date   time.Time
		bucket string
	}

	totals := make(map[totalKey]map[string]float64)
	var order []totalKey

	for _, rec := range records {
		if rec.PosBucket == "" || rec.Opponent == "" {
			continue
		}
		k := totalKey{team: rec.Team, opp: rec.Opponent, date: rec.Date, bucket: rec.PosBucket}
		sums, ok := totals[k]
		if !ok {
			sums = make(map[string]float64)
			totals[k] = sums
			order = append(order, k)
		}
		for _, stat := range statNames {
			if v, present := rec.Stats[stat]; present {
				sums[stat] += v
			}
		}
	}

	out := make([]models.TeamGameTotal, 0, len(order))
	for _, k := range order {
		sums := totals[k]
		if len(sums) == 0 {
			continue
		}
		out = append(out, models.TeamGameTotal{
			Team:      k.team,
			Opponent:  k.opp,
			Date:      k.date,
			PosBucket: k.bucket,
			Stats:     sums,
		})
	}
	return out
}
