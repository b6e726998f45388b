package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/series-points/live"
	"github.com/Dosada05/series-points/services"
)

type WebSocketHandler struct {
	hub           *live.Hub
	seriesService services.SeriesService
	upgrader      websocket.Upgrader
	logger        *slog.Logger
}

// NewWebSocketHandler accepts upgrades from allowedOrigins; "*" allows any.
func NewWebSocketHandler(hub *live.Hub, ss services.SeriesService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:           hub,
		seriesService: ss,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// ServeWs joins the caller to the live room of one series.
// Clients connect to /ws/series/{seriesID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	seriesID, err := getIDFromURL(r, "seriesID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.seriesService.GetSeries(r.Context(), caller, seriesID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.Warn("websocket upgrade failed", slog.Int("series_id", seriesID), slog.Any("error", err))
		return
	}

	sub := live.NewSubscriber(h.hub, conn, live.SeriesRoom(seriesID))
	h.hub.Register(sub)

	go sub.WritePump()
	go sub.ReadPump()
}
