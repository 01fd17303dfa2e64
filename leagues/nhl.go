package leagues

import (
	"fmt"
	"io"
	"strings"

	"hitrate-app-go/analysis"
	"hitrate-app-go/models"
)

// Hockey splits into two configs because skaters and goalies share almost no
// stats. Skater defense ranks ascend as usual (fewer goals allowed = rank 1);
// goalie-facing volume ranks descend, so rank 1 is the opponent that puts the
// most shots and goals on the goalie.
var (
	NHL = register(&Config{
		Code: "nhl",
		Name: "NHL Skaters",
		StatKeys: []string{
			"TOI", "G", "A", "P", "SOG", "H", "B", "PPP", "FOW",
		},
		Abbrevs: map[string]string{
			"TOI": "TOI", "G": "G", "A": "A", "P": "P", "SOG": "SOG",
			"H": "H", "B": "B", "PPP": "PPP", "FOW": "FOW",
		},
		DefaultStats:   []string{"G", "A", "P", "SOG", "H", "B"},
		DefenseStats:   []string{"G", "SOG"},
		DefaultRecentN: 5,
	})

	NHLGoalies = register(&Config{
		Code: "nhl-goalies",
		Name: "NHL Goalies",
		StatKeys: []string{
			"TOI", "SA", "GA", "SV", "SV%",
		},
		Abbrevs: map[string]string{
			"TOI": "TOI", "SA": "SA", "GA": "GA", "SV": "SV", "SV%": "SV%",
		},
		DefaultStats: []string{"SA", "GA", "SV"},
		DefenseStats: []string{"SA", "GA"},
		RankDirections: map[string]analysis.RankDirection{
			"SA": analysis.RankDescending,
			"GA": analysis.RankDescending,
		},
		DefaultRecentN: 5,
		TotalsCode:     "nhl",
	})
)

func init() {
	NHL.ParseGameLogs = parseNHLSkaterGameLogs
	NHL.ParseTeamTotals = parseNHLTeamTotals
	NHLGoalies.ParseGameLogs = parseNHLGoalieGameLogs
	NHLGoalies.ParseTeamTotals = parseNHLTeamTotals
}

const (
	nhlSkaterMinTOI = 8
	nhlGoalieMinTOI = 40
)

var nhlSkaterColumns = map[string]string{
	"TOI": "toi_minutes",
	"G":   "goals",
	"A":   "assists",
	"P":   "points",
	"SOG": "shots",
	"H":   "hits",
	"B":   "blocks",
	"PPP": "pp_points",
	"FOW": "faceoffs_won",
}

var nhlGoalieColumns = map[string]string{
	"TOI": "toi_minutes",
	"SA":  "shots_against",
	"GA":  "goals_against",
	"SV":  "saves",
	"SV%": "save_pct",
}

// parseNHLSkaterGameLogs reads the skater game-log table. Sub-8-minute
// appearances are dropped so garbage-time call-ups don't pollute hit rates.
func parseNHLSkaterGameLogs(r io.Reader) ([]models.GameRecord, error) {
	return parseNHLGameLogs(r, NHL, nhlSkaterColumns, nhlSkaterMinTOI, false)
}

// parseNHLGoalieGameLogs reads the goalie game-log table, keeping only full
// appearances (40+ minutes) so relief stints don't register as starts.
func parseNHLGoalieGameLogs(r io.Reader) ([]models.GameRecord, error) {
	return parseNHLGameLogs(r, NHLGoalies, nhlGoalieColumns, nhlGoalieMinTOI, true)
}

func parseNHLGameLogs(r io.Reader, cfg *Config, columns map[string]string, minTOI float64, goalie bool) ([]models.GameRecord, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("%s game logs: %w", cfg.Code, err)
	}
	if err := requireColumns(header, "player_id", "player_name", "team", "opponent", "game_date"); err != nil {
		return nil, fmt.Errorf("%s game logs: %w", cfg.Code, err)
	}

	records := make([]models.GameRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := parseDateCell(cell(row, header, "game_date"))
		if !ok {
			continue
		}

		stats := collectStats(row, header, columns)
		if toi, ok := stats["TOI"]; !ok || toi <= minTOI {
			continue
		}

		position := strings.TrimSpace(cell(row, header, "position"))
		bucket := position
		if goalie {
			bucket = "G"
		}

		records = append(records, models.GameRecord{
			League:     cfg.Code,
			PlayerID:   cell(row, header, "player_id"),
			PlayerName: cell(row, header, "player_name"),
			Team:       strings.ToUpper(cell(row, header, "team")),
			Opponent:   strings.ToUpper(cell(row, header, "opponent")),
			Date:       date,
			Position:   position,
			PosBucket:  bucket,
			Stats:      stats,
		})
	}
	return records, nil
}

// parseNHLTeamTotals reads the per-game team totals feed. Each row carries the
// team's own production against its opponent, so grouping by opponent yields
// both defensive views: G/SOG (team's goals_for/shots_for) average into what
// the opponent allows skaters, and SA/GA (team's shots_against/goals_against)
// into what the opponent's offense puts on a facing goalie. One table serves
// both configs.
func parseNHLTeamTotals(r io.Reader) ([]models.TeamGameTotal, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("nhl team totals: %w", err)
	}
	if err := requireColumns(header, "team", "opponent", "game_date"); err != nil {
		return nil, fmt.Errorf("nhl team totals: %w", err)
	}

	columns := map[string]string{
		"G":   "goals_for",
		"SOG": "shots_for",
		"SA":  "shots_against",
		"GA":  "goals_against",
	}

	totals := make([]models.TeamGameTotal, 0, len(rows))
	for _, row := range rows {
		date, ok := parseDateCell(cell(row, header, "game_date"))
		if !ok {
			continue
		}
		totals = append(totals, models.TeamGameTotal{
			League:   "nhl",
			Team:     strings.ToUpper(cell(row, header, "team")),
			Opponent: strings.ToUpper(cell(row, header, "opponent")),
			Date:     date,
			Stats:    collectStats(row, header, columns),
		})
	}
	return totals, nil
}
