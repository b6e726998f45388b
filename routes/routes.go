package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/series-points/handlers"
	"github.com/Dosada05/series-points/metrics"
	"github.com/Dosada05/series-points/middleware"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Series    *handlers.SeriesHandler
	Team      *handlers.TeamHandler
	Round     *handlers.RoundHandler
	Score     *handlers.ScoreHandler
	Standings *handlers.StandingsHandler
	WebSocket *handlers.WebSocketHandler
	Health    *handlers.HealthHandler
}

type Options struct {
	Authenticator  *middleware.Authenticator
	Metrics        *metrics.Manager
	Logger         *slog.Logger
	AllowedOrigins []string
}

func SetupRoutes(router *chi.Mux, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.Metrics(opts.Metrics))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.UserIDHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.Healthz)
	router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Post("/auth/login", h.Auth.Login)

	// Websocket connections are long lived and stay outside the timeout.
	router.With(opts.Authenticator.Authenticate).Get("/ws/series/{seriesID}", h.WebSocket.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(opts.Authenticator.Authenticate)
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.User.CreateUser)
			r.Get("/", h.User.ListUsers)
			r.Get("/{userID}", h.User.GetUser)
		})

		r.Route("/series", func(r chi.Router) {
			r.Post("/", h.Series.CreateSeries)
			r.Get("/", h.Series.ListSeries)
			r.Route("/{seriesID}", func(r chi.Router) {
				r.Get("/", h.Series.GetSeries)
				r.Get("/teams", h.Team.ListSeriesTeams)
				r.Get("/rounds", h.Round.ListSeriesRounds)
				r.Get("/standings", h.Standings.SeriesStandings)
				r.Post("/standings/export", h.Standings.ExportStandings)
				r.Get("/winner", h.Standings.WinnerTeam)
				r.Get("/man-of-series", h.Standings.ManOfSeries)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", h.Team.CreateTeam)
			r.Route("/{teamID}", func(r chi.Router) {
				r.Get("/", h.Team.GetTeamByID)
				r.Post("/members", h.Team.AddMember)
				r.Get("/members", h.Team.ListTeamMembers)
			})
		})

		r.Route("/rounds", func(r chi.Router) {
			r.Post("/", h.Round.CreateRound)
			r.Route("/{roundID}", func(r chi.Router) {
				r.Get("/", h.Round.GetRound)
				r.Get("/scores", h.Score.ListRoundScores)
				r.Get("/man-of-match", h.Standings.ManOfMatch)
			})
		})

		r.Post("/team-points", h.Score.RecordTeamPoints)
		r.Post("/player-performance", h.Score.RecordPlayerPerformance)
	})
}
