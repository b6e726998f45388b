package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/series-points/metrics"
	"github.com/Dosada05/series-points/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	metrics          *metrics.Manager
}

func NewStandingsHandler(ss services.StandingsService, m *metrics.Manager) *StandingsHandler {
	return &StandingsHandler{standingsService: ss, metrics: m}
}

func (h *StandingsHandler) observe(kind string, err error) {
	switch {
	case err == nil:
		h.metrics.RecordAggregation(kind, metrics.OutcomeOK)
	case errors.Is(err, services.ErrNoData):
		h.metrics.RecordAggregation(kind, metrics.OutcomeNoData)
	default:
		h.metrics.RecordAggregation(kind, metrics.OutcomeError)
	}
}

// ManOfMatch godoc
// @Summary Highest scoring player of a round
// @Description Scores are summed per player. When a scorer flagged any entry of the round as man of the match, only flagged players are considered, so a flagged player wins over a higher unflagged total. Ties go to the lowest player id.
// @Tags standings
// @Produce json
// @Param roundID path int true "Round ID"
// @Success 200 {object} models.ManOfMatch
// @Failure 404 {object} map[string]string "Round not found or no performances"
// @Security BearerAuth
// @Router /rounds/{roundID}/man-of-match [get]
func (h *StandingsHandler) ManOfMatch(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.standingsService.ManOfMatch(r.Context(), caller, roundID)
	h.observe("man_of_match", err)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SeriesStandings godoc
// @Summary Winner team, man of the series and ranked tables of a series
// @Description man_of_the_series is null and player_table is empty until a performance is recorded.
// @Tags standings
// @Produce json
// @Param seriesID path int true "Series ID"
// @Success 200 {object} models.SeriesStandings
// @Failure 404 {object} map[string]string "Series not found or no team points"
// @Security BearerAuth
// @Router /series/{seriesID}/standings [get]
func (h *StandingsHandler) SeriesStandings(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	seriesID, err := getIDFromURL(r, "seriesID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.standingsService.SeriesStandings(r.Context(), caller, seriesID)
	h.observe("series_standings", err)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) WinnerTeam(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	seriesID, err := getIDFromURL(r, "seriesID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	winner, err := h.standingsService.WinnerTeam(r.Context(), caller, seriesID)
	h.observe("winner_team", err)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"winner_team": winner}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StandingsHandler) ManOfSeries(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	seriesID, err := getIDFromURL(r, "seriesID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	top, err := h.standingsService.ManOfSeries(r.Context(), caller, seriesID)
	h.observe("man_of_series", err)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"man_of_the_series": top}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportStandings godoc
// @Summary Upload the standings of a series to object storage
// @Tags standings
// @Produce json
// @Param seriesID path int true "Series ID"
// @Success 201 {object} services.ExportResult
// @Failure 403 {object} map[string]string "Caller is not a scorer"
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string "Storage not configured"
// @Security BearerAuth
// @Router /series/{seriesID}/standings/export [post]
func (h *StandingsHandler) ExportStandings(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	seriesID, err := getIDFromURL(r, "seriesID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.standingsService.ExportStandings(r.Context(), caller, seriesID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.metrics.RecordStandingsExport()

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
