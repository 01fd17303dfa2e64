package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hitrate-app-go/logging"
	"hitrate-app-go/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// InjuryService loads league injury reports and resolves player statuses.
// Injury feeds spell names differently than stat feeds ("P.J. Washington"
// vs "PJ Washington"), so lookup falls back from exact ID to a normalized
// name and finally to a fuzzy match.
type InjuryService struct {
	baseURL string
	client  *http.Client
	logger  *logging.Logger
}

// InjuryReport holds one league's report, indexed for lookup.
type InjuryReport struct {
	byID       map[string]string
	byNormName map[string]string
	normNames  []string
}

func NewInjuryService(baseURL string) *InjuryService {
	return &InjuryService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logging.WithPrefix("InjuryService"),
	}
}

// FetchReport pulls and parses a league's injury CSV. An unconfigured base
// URL yields an empty report, never an error.
func (s *InjuryService) FetchReport(ctx context.Context, league string) (*InjuryReport, error) {
	if s.baseURL == "" {
		return ParseInjuryReport(strings.NewReader("player_id,player_name,status\n"))
	}
	url := fmt.Sprintf("%s/%s/injuries.csv", s.baseURL, league)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("injury request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("injury fetch %s: %w", league, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("injury fetch %s: status %d", league, resp.StatusCode)
	}

	report, err := ParseInjuryReport(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("injury parse %s: %w", league, err)
	}
	s.logger.Debugf("Loaded %d injury entries for %s", len(report.byID), league)
	return report, nil
}

// ParseInjuryReport reads an injury CSV with player_id, player_name, and
// status columns.
func ParseInjuryReport(r io.Reader) (*InjuryReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read injury table: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("injury table has no header")
	}

	header := make(map[string]int)
	for i, col := range rows[0] {
		if _, seen := header[col]; !seen {
			header[col] = i
		}
	}
	for _, col := range []string{"player_name", "status"} {
		if _, ok := header[col]; !ok {
			return nil, fmt.Errorf("injury table missing column %q", col)
		}
	}

	report := &InjuryReport{
		byID:       make(map[string]string),
		byNormName: make(map[string]string),
	}

	for _, row := range rows[1:] {
		get := func(col string) string {
			idx, ok := header[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		status := NormalizeStatus(get("status"))
		if status == "" {
			continue
		}
		if id := get("player_id"); id != "" {
			report.byID[id] = status
		}
		if norm := NormName(get("player_name")); norm != "" {
			if _, seen := report.byNormName[norm]; !seen {
				report.byNormName[norm] = status
				report.normNames = append(report.normNames, norm)
			}
		}
	}
	return report, nil
}

// StatusFor resolves a player's status, trying ID, normalized name, then a
// fuzzy name match. Players not on the report are available.
func (r *InjuryReport) StatusFor(playerID, playerName string) string {
	if r == nil {
		return models.StatusAvailable
	}
	if status, ok := r.byID[playerID]; ok {
		return status
	}
	norm := NormName(playerName)
	if norm == "" {
		return models.StatusAvailable
	}
	if status, ok := r.byNormName[norm]; ok {
		return status
	}
	if matches := fuzzy.RankFindFold(norm, r.normNames); len(matches) > 0 {
		best := matches[0]
		for _, m := range matches[1:] {
			if m.Distance < best.Distance {
				best = m
			}
		}
		return r.byNormName[best.Target]
	}
	return models.StatusAvailable
}

// StatusMap resolves statuses for a set of players keyed by ID.
func (r *InjuryReport) StatusMap(players map[string]string) map[string]string {
	out := make(map[string]string, len(players))
	for id, name := range players {
		status := r.StatusFor(id, name)
		if status != models.StatusAvailable {
			out[id] = status
		}
	}
	return out
}

// NormName reduces a player name to first initial plus last name, lowered,
// with punctuation stripped: "P.J. Washington Jr." -> "p washington".
func NormName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '\'':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))

	fields := strings.Fields(cleaned)
	// Drop generational suffixes so "Jr" never becomes the last name.
	for len(fields) > 1 {
		switch fields[len(fields)-1] {
		case "jr", "sr", "ii", "iii", "iv":
			fields = fields[:len(fields)-1]
			continue
		}
		break
	}

	if len(fields) == 0 {
		return ""
	}
	if len(fields) == 1 {
		return fields[0]
	}
	return fields[0][:1] + " " + fields[len(fields)-1]
}

// NormalizeStatus maps feed status words onto the single-letter codes.
// Reserve designations vary by league (IR, PUP, NFI), and feeds add new ones
// without warning; any unrecognized non-empty status counts as out so a
// listed player never renders as playable.
func NormalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "out", "o":
		return models.StatusOut
	case "doubtful", "d":
		return models.StatusDoubtful
	case "questionable", "q", "gtd", "day-to-day":
		return models.StatusQuestionable
	case "probable", "p":
		return models.StatusProbable
	case "available", "active", "a", "":
		return ""
	}
	return models.StatusOut
}
