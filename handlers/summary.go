package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"hitrate-app-go/logging"
	"hitrate-app-go/models"
	"hitrate-app-go/services"

	"github.com/gorilla/mux"
)

// SummaryHandler serves computed hit-rate tables.
type SummaryHandler struct {
	summaryService *services.SummaryService
	logger         *logging.Logger
}

func NewSummaryHandler(summaryService *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		logger:         logging.WithPrefix("SummaryHandler"),
	}
}

// GetHitRates handles GET /api/{league}/hitrates.
//
// Query parameters:
//
//	stats=PTS,REB,PRA     stat keys, league defaults when omitted
//	pct=80 or pct=100,80  hit-rate percentages
//	recent=5              recent-window size
//	defense=ALL|L5|L10    defense table window
//	positional=true       position-scoped defense lookups
//	today=true            only players whose team plays today
//	flat=true             rows as flat column maps instead of structured rows
func (h *SummaryHandler) GetHitRates(w http.ResponseWriter, r *http.Request) {
	league := mux.Vars(r)["league"]
	q := r.URL.Query()

	opts := services.SummaryOptions{
		League:     league,
		Positional: q.Get("positional") == "true",
		TodayOnly:  q.Get("today") == "true",
	}

	if raw := q.Get("stats"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				opts.Stats = append(opts.Stats, s)
			}
		}
	}

	if raw := q.Get("pct"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil || v <= 0 || v > 100 {
				respondError(w, http.StatusBadRequest, "pct values must be in (0, 100]")
				return
			}
			opts.Percentages = append(opts.Percentages, v)
		}
	}

	if raw := q.Get("recent"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "recent must be a non-negative integer")
			return
		}
		opts.RecentN = n
	}

	if raw := q.Get("defense"); raw != "" {
		window, err := models.ParseWindow(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "defense must be ALL or L<n>")
			return
		}
		opts.DefenseWindow = window
	}

	table, err := h.summaryService.ComputeSummary(r.Context(), opts)
	if err != nil {
		h.logger.Warnf("Summary request failed for %s: %v", league, err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if q.Get("flat") == "true" {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"columns": table.Columns,
			"rows":    table.Flatten(),
		})
		return
	}
	respondJSON(w, http.StatusOK, table)
}
