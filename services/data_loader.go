package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"hitrate-app-go/database"
	"hitrate-app-go/leagues"
	"hitrate-app-go/logging"
)

// DataLoaderService ingests league feed files into MongoDB. Each league's
// data directory carries game_logs.csv and team_totals.csv; re-running the
// loader upserts in place.
type DataLoaderService struct {
	dataDir    string
	gameLogs   *database.MongoGameLogRepository
	teamTotals *database.MongoTeamTotalsRepository
	logger     *logging.Logger
}

func NewDataLoaderService(
	dataDir string,
	gameLogs *database.MongoGameLogRepository,
	teamTotals *database.MongoTeamTotalsRepository,
) *DataLoaderService {
	return &DataLoaderService{
		dataDir:    dataDir,
		gameLogs:   gameLogs,
		teamTotals: teamTotals,
		logger:     logging.WithPrefix("DataLoader"),
	}
}

// LoadLeague ingests one league's feed files. A missing file is skipped with
// a warning so a league can ship game logs before its totals feed exists;
// a malformed file fails the load.
func (s *DataLoaderService) LoadLeague(ctx context.Context, code string) error {
	cfg, err := leagues.ByCode(code)
	if err != nil {
		return err
	}

	logsPath := filepath.Join(s.dataDir, code, "game_logs.csv")
	if f, err := os.Open(logsPath); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("open %s: %w", logsPath, err)
		}
		s.logger.Warnf("No game-log feed for %s at %s", code, logsPath)
	} else {
		records, parseErr := cfg.ParseGameLogs(f)
		f.Close()
		if parseErr != nil {
			return parseErr
		}
		if err := s.gameLogs.BulkUpsert(ctx, records); err != nil {
			return err
		}
		s.logger.Infof("Ingested %d game logs for %s", len(records), code)
	}

	if cfg.ParseTeamTotals == nil {
		return nil
	}
	// Configs sharing a totals table (NHL skaters and goalies) read the same
	// file; the upsert key makes the second ingest a no-op.
	totalsPath := filepath.Join(s.dataDir, cfg.TotalsLeague(), "team_totals.csv")
	if f, err := os.Open(totalsPath); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("open %s: %w", totalsPath, err)
		}
		s.logger.Warnf("No team-totals feed for %s at %s", code, totalsPath)
	} else {
		totals, parseErr := cfg.ParseTeamTotals(f)
		f.Close()
		if parseErr != nil {
			return parseErr
		}
		if err := s.teamTotals.BulkUpsert(ctx, totals); err != nil {
			return err
		}
		s.logger.Infof("Ingested %d team totals for %s", len(totals), code)
	}

	return nil
}

// LoadAll ingests every configured league. One bad league does not stop the
// rest; the first error is returned after all leagues are attempted.
func (s *DataLoaderService) LoadAll(ctx context.Context, codes []string) error {
	var firstErr error
	for _, code := range codes {
		if err := s.LoadLeague(ctx, code); err != nil {
			s.logger.Errorf("Failed to load league %s: %v", code, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
