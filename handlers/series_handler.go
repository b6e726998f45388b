package handlers

import (
	"net/http"

	"github.com/Dosada05/series-points/services"
)

type SeriesHandler struct {
	seriesService services.SeriesService
}

func NewSeriesHandler(ss services.SeriesService) *SeriesHandler {
	return &SeriesHandler{seriesService: ss}
}

func (h *SeriesHandler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var input services.CreateSeriesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	series, err := h.seriesService.CreateSeries(r.Context(), caller, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"series": series}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeriesHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	seriesID, err := getIDFromURL(r, "seriesID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	series, err := h.seriesService.GetSeries(r.Context(), caller, seriesID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"series": series}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SeriesHandler) ListSeries(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	list, err := h.seriesService.ListSeries(r.Context(), caller)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"series": list}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
