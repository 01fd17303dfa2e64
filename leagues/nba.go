package leagues

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"hitrate-app-go/models"
)

// NBA tracks the full box-score stat set plus the standard combo props.
// Player histories are capped at 82 games (one full season) so multi-season
// feeds stay bounded.
var NBA = register(&Config{
	Code: "nba",
	Name: "NBA",
	StatKeys: []string{
		"PTS", "REB", "AST", "FGM", "FGA",
		"FG3M", "FG3A", "FTM", "FTA",
		"BLK", "STL", "TOV", "OREB", "DREB",
		"PRA", "PR", "PA", "RA",
	},
	Abbrevs: map[string]string{
		"PTS": "P", "REB": "R", "AST": "A", "OREB": "OR", "DREB": "DR",
		"PRA": "PRA", "PR": "PR", "PA": "PA", "RA": "RA",
		"BLK": "BLK", "STL": "S", "TOV": "TO",
		"FG3M": "3PM", "FG3A": "3PA",
		"FGM": "FGM", "FGA": "FGA", "FTM": "FTM", "FTA": "FTA",
	},
	DefaultStats: []string{"PTS", "REB", "AST", "PRA", "FG3M", "FG3A", "STL", "TOV"},
	DefenseStats: []string{
		"PTS", "REB", "AST", "PRA",
		"STL", "BLK", "TOV",
		"FGM", "FGA", "FG3M", "FG3A",
		"FTM", "FTA", "OREB", "DREB",
	},
	Combos: []Combo{
		{Name: "PRA", Parts: []string{"PTS", "REB", "AST"}},
		{Name: "PR", Parts: []string{"PTS", "REB"}},
		{Name: "PA", Parts: []string{"PTS", "AST"}},
		{Name: "RA", Parts: []string{"REB", "AST"}},
	},
	DefaultRecentN: 5,
	RetentionCap:   82,
})

// The parse functions reference NBA, so wiring them in the composite literal
// would form an initialization cycle.
func init() {
	NBA.ParseGameLogs = parseNBAGameLogs
	NBA.ParseTeamTotals = parseNBATeamTotals
}

// nbaPositions collapses the feed's granular positions into the buckets the
// positional-defense tables use, plus a short display form.
var nbaPositions = map[string]struct {
	Bucket  string
	Display string
}{
	"Guard":          {"G", "G"},
	"Forward":        {"F", "F"},
	"Center":         {"C", "C"},
	"Guard-Forward":  {"Wing", "G/F"},
	"Forward-Guard":  {"Wing", "F/G"},
	"Center-Forward": {"Big", "C/F"},
	"Forward-Center": {"Big", "F/C"},
}

// NormalizeNBAPosition returns the position bucket, or "" for positions
// outside the known set (those players are excluded from summaries).
func NormalizeNBAPosition(pos string) string {
	return nbaPositions[strings.TrimSpace(pos)].Bucket
}

// NBAPositionDisplay returns the short display form of a position, falling
// back to the raw value.
func NBAPositionDisplay(pos string) string {
	pos = strings.TrimSpace(pos)
	if p, ok := nbaPositions[pos]; ok {
		return p.Display
	}
	return pos
}

var matchupOppRe = regexp.MustCompile(`(?:@|vs\.?)\s+([A-Z]{2,3})`)

// ParseMatchup extracts (team, opponent) from a matchup string:
//
//	"LAL @ DEN"  -> LAL, DEN
//	"DEN vs. LAL" -> DEN, LAL
func ParseMatchup(matchup string) (team, opp string, ok bool) {
	matchup = strings.TrimSpace(matchup)
	fields := strings.Fields(matchup)
	if len(fields) < 3 {
		return "", "", false
	}
	m := matchupOppRe.FindStringSubmatch(matchup)
	if m == nil {
		return "", "", false
	}
	return strings.ToUpper(fields[0]), strings.ToUpper(m[1]), true
}

var nbaStatColumns = map[string]string{
	"PTS": "PTS", "REB": "REB", "AST": "AST",
	"FGM": "FGM", "FGA": "FGA", "FG3M": "FG3M", "FG3A": "FG3A",
	"FTM": "FTM", "FTA": "FTA",
	"BLK": "BLK", "STL": "STL", "TOV": "TOV",
	"OREB": "OREB", "DREB": "DREB",
}

// parseNBAGameLogs reads the NBA player game-log export. Rows with an
// unparseable date or matchup are skipped; rows with an unknown position
// keep an empty bucket and fall out later in the engine.
func parseNBAGameLogs(r io.Reader) ([]models.GameRecord, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("nba game logs: %w", err)
	}
	if err := requireColumns(header, "player_id", "player_name", "MATCHUP", "GAME_DATE"); err != nil {
		return nil, fmt.Errorf("nba game logs: %w", err)
	}

	records := make([]models.GameRecord, 0, len(rows))
	for _, row := range rows {
		date, ok := parseDateCell(cell(row, header, "GAME_DATE"))
		if !ok {
			continue
		}
		team, opp, ok := ParseMatchup(cell(row, header, "MATCHUP"))
		if !ok {
			continue
		}

		position := cell(row, header, "Position")
		stats := collectStats(row, header, nbaStatColumns)
		NBA.AddCombos(stats)

		records = append(records, models.GameRecord{
			League:     NBA.Code,
			PlayerID:   cell(row, header, "player_id"),
			PlayerName: cell(row, header, "player_name"),
			Team:       team,
			Opponent:   opp,
			Date:       date,
			Position:   NBAPositionDisplay(position),
			PosBucket:  NormalizeNBAPosition(position),
			Stats:      stats,
		})
	}
	return records, nil
}

// parseNBATeamTotals reads the team-totals export that feeds the team-level
// defense table: one row per team per game, stats summed upstream.
func parseNBATeamTotals(r io.Reader) ([]models.TeamGameTotal, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("nba team totals: %w", err)
	}
	if err := requireColumns(header, "MATCHUP", "GAME_DATE"); err != nil {
		return nil, fmt.Errorf("nba team totals: %w", err)
	}

	totals := make([]models.TeamGameTotal, 0, len(rows))
	for _, row := range rows {
		date, ok := parseDateCell(cell(row, header, "GAME_DATE"))
		if !ok {
			continue
		}
		team, opp, ok := ParseMatchup(cell(row, header, "MATCHUP"))
		if !ok {
			continue
		}

		stats := collectStats(row, header, nbaStatColumns)
		NBA.AddCombos(stats)

		totals = append(totals, models.TeamGameTotal{
			League:   NBA.Code,
			Team:     team,
			Opponent: opp,
			Date:     date,
			Stats:    stats,
		})
	}
	return totals, nil
}
