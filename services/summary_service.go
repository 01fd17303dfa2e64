package services

import (
	"context"
	"fmt"
	"strings"

	"hitrate-app-go/analysis"
	"hitrate-app-go/leagues"
	"hitrate-app-go/logging"
	"hitrate-app-go/models"
)

// SummaryOptions selects what one summary computation covers.
type SummaryOptions struct {
	League      string
	Stats       []string
	Percentages []float64

	// RecentN sizes the L{N} columns; 0 falls back to the league default.
	RecentN int

	// DefenseWindow bounds each opponent's games in the defense tables.
	DefenseWindow models.Window

	// Positional scopes defense lookups to the player's position bucket.
	Positional bool

	// TodayOnly keeps only players whose team is on today's slate.
	TodayOnly bool
}

// GameLogRepository provides stored player game records.
type GameLogRepository interface {
	GetByLeague(ctx context.Context, league string) ([]models.GameRecord, error)
}

// TeamTotalsRepository provides stored per-game team totals.
type TeamTotalsRepository interface {
	GetByLeague(ctx context.Context, league string) ([]models.TeamGameTotal, error)
}

// SummaryService assembles hit-rate summary tables from stored game data and
// the live schedule and injury context.
type SummaryService struct {
	gameLogs   GameLogRepository
	teamTotals TeamTotalsRepository
	schedule   *ScheduleService
	injuries   *InjuryService
	cache      *CacheService
	logger     *logging.Logger
}

func NewSummaryService(
	gameLogs GameLogRepository,
	teamTotals TeamTotalsRepository,
	schedule *ScheduleService,
	injuries *InjuryService,
	cache *CacheService,
) *SummaryService {
	return &SummaryService{
		gameLogs:   gameLogs,
		teamTotals: teamTotals,
		schedule:   schedule,
		injuries:   injuries,
		cache:      cache,
		logger:     logging.WithPrefix("SummaryService"),
	}
}

// ComputeSummary builds the player summary table for a league. Results are
// cached per option set until the next feed refresh invalidates them.
func (s *SummaryService) ComputeSummary(ctx context.Context, opts SummaryOptions) (*models.SummaryTable, error) {
	cfg, err := leagues.ByCode(opts.League)
	if err != nil {
		return nil, err
	}

	if len(opts.Stats) == 0 {
		opts.Stats = cfg.DefaultStats
	}
	for _, stat := range opts.Stats {
		if !cfg.HasStat(stat) {
			return nil, fmt.Errorf("league %s does not track stat %q", cfg.Code, stat)
		}
	}
	if len(opts.Percentages) == 0 {
		opts.Percentages = []float64{80}
	}
	if opts.RecentN == 0 {
		opts.RecentN = cfg.DefaultRecentN
	}

	cacheKey := summaryCacheKey(opts)
	var cached models.SummaryTable
	if hit, err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		s.logger.Debugf("Cache hit for %s", cacheKey)
		return &cached, nil
	}

	records, err := s.gameLogs.GetByLeague(ctx, cfg.Code)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		s.logger.Warnf("No game records stored for league %s", cfg.Code)
	}

	defense, err := s.buildDefense(ctx, cfg, records, opts)
	if err != nil {
		return nil, err
	}

	matchups, b2b := s.scheduleContext(ctx, cfg)
	injuryStatuses := s.injuryContext(ctx, cfg, records)

	req := cfg.Request(opts.Stats, opts.Percentages, opts.RecentN, opts.Positional)
	table := analysis.ComputeSummaries(records, req, defense, matchups, b2b, injuryStatuses)

	if opts.TodayOnly {
		kept := table.Rows[:0]
		for _, row := range table.Rows {
			if row.Opp != "" {
				kept = append(kept, row)
			}
		}
		table.Rows = kept
	}

	s.cache.SetJSON(ctx, cacheKey, &table)
	s.logger.Infof("Computed %s summary: %d rows, %d columns", cfg.Code, len(table.Rows), len(table.Columns))
	return &table, nil
}

// buildDefense assembles the defense rank tables: team-level entries from
// the stored totals feed, plus position-bucketed entries derived from player
// records when the request is position-scoped.
func (s *SummaryService) buildDefense(
	ctx context.Context,
	cfg *leagues.Config,
	records []models.GameRecord,
	opts SummaryOptions,
) (map[analysis.DefenseKey]analysis.DefenseEntry, error) {
	if len(cfg.DefenseStats) == 0 {
		return nil, nil
	}

	totals, err := s.teamTotals.GetByLeague(ctx, cfg.TotalsLeague())
	if err != nil {
		return nil, err
	}

	directions := make(map[string]analysis.RankDirection, len(cfg.RankDirections))
	for stat, dir := range cfg.RankDirections {
		directions[stat] = dir
	}

	defense := analysis.ComputeDefenseRanks(totals, opts.DefenseWindow, cfg.DefenseStats, false, directions)

	if opts.Positional {
		positional := analysis.BuildPositionalTotals(records, cfg.DefenseStats)
		scoped := analysis.ComputeDefenseRanks(positional, opts.DefenseWindow, cfg.DefenseStats, true, directions)
		for k, v := range scoped {
			defense[k] = v
		}
	}
	return defense, nil
}

func (s *SummaryService) scheduleContext(ctx context.Context, cfg *leagues.Config) (map[string]string, map[string]string) {
	games, err := s.schedule.FetchSchedule(ctx, cfg.TotalsLeague())
	if err != nil {
		// A dead schedule feed degrades to a table with no Opp/B2B context
		// rather than failing the request.
		s.logger.Warnf("Schedule unavailable for %s: %v", cfg.Code, err)
		return nil, nil
	}
	return s.schedule.TodayMatchups(games), s.schedule.BackToBack(games)
}

func (s *SummaryService) injuryContext(ctx context.Context, cfg *leagues.Config, records []models.GameRecord) map[string]string {
	report, err := s.injuries.FetchReport(ctx, cfg.TotalsLeague())
	if err != nil {
		s.logger.Warnf("Injury report unavailable for %s: %v", cfg.Code, err)
		return nil
	}

	players := make(map[string]string)
	for _, r := range records {
		if _, seen := players[r.PlayerID]; !seen {
			players[r.PlayerID] = r.PlayerName
		}
	}
	return report.StatusMap(players)
}

// summaryCacheKey builds a stable cache key from the normalized options.
func summaryCacheKey(opts SummaryOptions) string {
	pcts := make([]string, len(opts.Percentages))
	for i, p := range opts.Percentages {
		pcts[i] = fmt.Sprintf("%g", p)
	}
	// Stat order matters: it drives column order, so it stays in the key.
	return fmt.Sprintf("summary:%s:%s:%s:L%d:%s:pos=%t:today=%t",
		opts.League,
		strings.Join(opts.Stats, ","),
		strings.Join(pcts, ","),
		opts.RecentN,
		opts.DefenseWindow.Label(),
		opts.Positional,
		opts.TodayOnly,
	)
}
