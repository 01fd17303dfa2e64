package leagues

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"hitrate-app-go/models"
)

// NFL stat keys group by play type; position gating below keeps, say, a
// defensive end from showing passing-yard columns.
var NFL = register(&Config{
	Code: "nfl",
	Name: "NFL",
	StatKeys: []string{
		"PaCmp", "PaAtt", "PaYds", "PaTD",
		"RuAtt", "RuYds", "RuTD",
		"Rec", "RecYds", "RecTD",
		"DefSk", "TckComb",
		"Fgm", "Fga",
	},
	Abbrevs: map[string]string{
		"PaCmp": "PaCmp", "PaAtt": "PaAtt", "PaYds": "PaYds", "PaTD": "PaTD",
		"RuAtt": "RuAtt", "RuYds": "RuYds", "RuTD": "RuTD",
		"Rec": "Rec", "RecYds": "RecYds", "RecTD": "RecTD",
		"DefSk": "Sk", "TckComb": "Tck",
		"Fgm": "Fgm", "Fga": "Fga",
	},
	DefaultStats: []string{"PaYds", "RuYds", "Rec", "RecYds"},
	DefenseStats: []string{
		"PaYds", "PaTD", "RuYds", "RuTD", "Rec", "RecYds", "RecTD",
	},
	DefaultRecentN: 5,
})

func init() {
	NFL.ParseGameLogs = parseNFLGameLogs
	NFL.ParseTeamTotals = parseNFLTeamTotals
}

// nflStatPositions gates each stat group to the positions that plausibly
// accumulate it.
var nflStatPositions = map[string][]string{
	"Passing":   {"QB"},
	"Rushing":   {"QB", "RB", "FB"},
	"Receiving": {"RB", "FB", "WR", "TE"},
	"Defense":   {"CB", "DB", "DE", "DL", "DT", "FS", "ILB", "LB", "MLB", "NT", "OLB", "S", "SS"},
	"Kicking":   {"K"},
}

var nflStatGroups = map[string]string{
	"PaCmp": "Passing", "PaAtt": "Passing", "PaYds": "Passing", "PaTD": "Passing",
	"RuAtt": "Rushing", "RuYds": "Rushing", "RuTD": "Rushing",
	"Rec": "Receiving", "RecYds": "Receiving", "RecTD": "Receiving",
	"DefSk": "Defense", "TckComb": "Defense",
	"Fgm": "Kicking", "Fga": "Kicking",
}

// NFLStatAllowed reports whether a statistic applies to a position. Unknown
// positions are not gated so feed quirks don't silently drop data.
func NFLStatAllowed(stat, position string) bool {
	group, ok := nflStatGroups[stat]
	if !ok {
		return true
	}
	position = strings.ToUpper(strings.TrimSpace(position))
	if position == "" {
		return true
	}
	for _, p := range nflStatPositions[group] {
		if p == position {
			return true
		}
	}
	return false
}

// Feeds use a few legacy three-letter team codes; canonicalize them to the
// codes the schedule source uses so matchup joins line up.
var nflTeamCodeCanonical = map[string]string{
	"GNB": "GB",
	"KAN": "KC",
	"LA":  "LAR",
	"LVR": "LV",
	"NWE": "NE",
	"NOR": "NO",
	"SFO": "SF",
	"TAM": "TB",
	"WAS": "WSH",
}

// NormalizeNFLTeamCode maps legacy team codes onto their canonical forms.
func NormalizeNFLTeamCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if canon, ok := nflTeamCodeCanonical[code]; ok {
		return canon
	}
	return code
}

var nflStatColumns = map[string]string{
	"PaCmp": "PaCmp", "PaAtt": "PaAtt", "PaYds": "PaYds", "PaTD": "PaTD",
	"RuAtt": "RuAtt", "RuYds": "RuYds", "RuTD": "RuTD",
	"Rec": "Rec", "RecYds": "RecYds", "RecTD": "RecTD",
	"DefSk": "DefSk", "TckComb": "TckComb",
	"Fgm": "Fgm", "Fga": "Fga",
}

// nflWeekDate synthesizes a sortable date from a season year and week number.
// The feed carries weeks, not dates; Thursday of each nominal game week keeps
// ordering stable without pretending to know kickoff days.
func nflWeekDate(season, week int) time.Time {
	opener := time.Date(season, time.September, 4, 0, 0, 0, 0, time.UTC)
	return opener.AddDate(0, 0, (week-1)*7)
}

// parseNFLGameLogs reads the weekly NFL stat table. The feed has no stable
// player IDs, so the player name doubles as the ID.
func parseNFLGameLogs(r io.Reader) ([]models.GameRecord, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("nfl game logs: %w", err)
	}
	if err := requireColumns(header, "Name", "Team", "Opp", "Week"); err != nil {
		return nil, fmt.Errorf("nfl game logs: %w", err)
	}

	records := make([]models.GameRecord, 0, len(rows))
	for _, row := range rows {
		week, err := strconv.Atoi(strings.TrimSpace(cell(row, header, "Week")))
		if err != nil || week < 1 {
			continue
		}
		season := time.Now().Year()
		if s, err := strconv.Atoi(strings.TrimSpace(cell(row, header, "Season"))); err == nil {
			season = s
		}

		position := strings.ToUpper(strings.TrimSpace(cell(row, header, "Pos")))
		stats := collectStats(row, header, nflStatColumns)
		for stat := range stats {
			if !NFLStatAllowed(stat, position) {
				delete(stats, stat)
			}
		}

		name := cell(row, header, "Name")
		records = append(records, models.GameRecord{
			League:     NFL.Code,
			PlayerID:   name,
			PlayerName: name,
			Team:       NormalizeNFLTeamCode(cell(row, header, "Team")),
			Opponent:   NormalizeNFLTeamCode(cell(row, header, "Opp")),
			Date:       nflWeekDate(season, week),
			Position:   position,
			PosBucket:  position,
			Stats:      stats,
		})
	}
	return records, nil
}

// parseNFLTeamTotals reads a per-team weekly totals table for the defense
// ranks.
func parseNFLTeamTotals(r io.Reader) ([]models.TeamGameTotal, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("nfl team totals: %w", err)
	}
	if err := requireColumns(header, "Team", "Opp", "Week"); err != nil {
		return nil, fmt.Errorf("nfl team totals: %w", err)
	}

	totals := make([]models.TeamGameTotal, 0, len(rows))
	for _, row := range rows {
		week, err := strconv.Atoi(strings.TrimSpace(cell(row, header, "Week")))
		if err != nil || week < 1 {
			continue
		}
		season := time.Now().Year()
		if s, err := strconv.Atoi(strings.TrimSpace(cell(row, header, "Season"))); err == nil {
			season = s
		}

		totals = append(totals, models.TeamGameTotal{
			League:   NFL.Code,
			Team:     NormalizeNFLTeamCode(cell(row, header, "Team")),
			Opponent: NormalizeNFLTeamCode(cell(row, header, "Opp")),
			Date:     nflWeekDate(season, week),
			Stats:    collectStats(row, header, nflStatColumns),
		})
	}
	return totals, nil
}
