package handlers

import (
	"net/http"

	"github.com/Dosada05/series-points/metrics"
	"github.com/Dosada05/series-points/services"
)

type ScoreHandler struct {
	scoreService services.ScoreService
	metrics      *metrics.Manager
}

func NewScoreHandler(ss services.ScoreService, m *metrics.Manager) *ScoreHandler {
	return &ScoreHandler{scoreService: ss, metrics: m}
}

// RecordTeamPoints godoc
// @Summary Record points earned by a team in a round
// @Tags scores
// @Accept json
// @Produce json
// @Param entry body services.RecordTeamPointsInput true "Team points"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string "Caller is not a scorer"
// @Failure 404 {object} map[string]string "Round or team not found"
// @Security BearerAuth
// @Router /team-points [post]
func (h *ScoreHandler) RecordTeamPoints(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var input services.RecordTeamPointsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.scoreService.RecordTeamPoints(r.Context(), caller, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.metrics.RecordLedgerEntry(metrics.LedgerTeamPoints)

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordPlayerPerformance godoc
// @Summary Record the score of a player in a round
// @Tags scores
// @Accept json
// @Produce json
// @Param entry body services.RecordPlayerPerformanceInput true "Performance"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string "Caller is not a scorer"
// @Failure 404 {object} map[string]string "Round or player not found"
// @Security BearerAuth
// @Router /player-performance [post]
func (h *ScoreHandler) RecordPlayerPerformance(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var input services.RecordPlayerPerformanceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	entry, err := h.scoreService.RecordPlayerPerformance(r.Context(), caller, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.metrics.RecordLedgerEntry(metrics.LedgerPlayerPerformance)

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ScoreHandler) ListRoundScores(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	roundID, err := getIDFromURL(r, "roundID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scores, err := h.scoreService.ListRoundScores(r.Context(), caller, roundID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"scores": scores}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
