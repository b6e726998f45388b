package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/Dosada05/series-points/db"
	"github.com/Dosada05/series-points/handlers"
	"github.com/Dosada05/series-points/live"
	"github.com/Dosada05/series-points/metrics"
	"github.com/Dosada05/series-points/middleware"
	"github.com/Dosada05/series-points/repositories"
	"github.com/Dosada05/series-points/services"
)

const jwtSecret = "routes-secret"

func newTestServer(t *testing.T) *httptest.Server {
	ctx := context.Background()
	conn, err := db.Connect(db.DriverSQLite, filepath.Join(t.TempDir(), "api.db"), 5*time.Second)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(ctx, conn, db.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := live.NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	userRepo := repositories.NewUserRepository(conn, db.DriverSQLite)
	seriesRepo := repositories.NewSeriesRepository(conn)
	teamRepo := repositories.NewTeamRepository(conn)
	roundRepo := repositories.NewRoundRepository(conn)
	scoreRepo := repositories.NewScoreRepository(conn)
	gate := services.NewAccessGate(userRepo)

	userService := services.NewUserService(conn, userRepo, teamRepo, gate, logger)
	seriesService := services.NewSeriesService(seriesRepo, gate)
	if _, err := userService.EnsureBootstrapScorer(ctx, "Default Scorer", "scorer-password"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	m := metrics.NewManager()
	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:      handlers.NewAuthHandler(services.NewAuthService(userRepo, []byte(jwtSecret), time.Hour)),
		User:      handlers.NewUserHandler(userService, m),
		Series:    handlers.NewSeriesHandler(seriesService),
		Team:      handlers.NewTeamHandler(services.NewTeamService(teamRepo, seriesRepo, userRepo, gate), userService),
		Round:     handlers.NewRoundHandler(services.NewRoundService(roundRepo, seriesRepo, gate)),
		Score:     handlers.NewScoreHandler(services.NewScoreService(scoreRepo, roundRepo, teamRepo, userRepo, gate, hub, logger), m),
		Standings: handlers.NewStandingsHandler(services.NewStandingsService(scoreRepo, roundRepo, seriesRepo, gate, nil, logger), m),
		WebSocket: handlers.NewWebSocketHandler(hub, seriesService, []string{"*"}, logger),
		Health:    handlers.NewHealthHandler(conn),
	}, Options{
		Authenticator:  middleware.NewAuthenticator([]byte(jwtSecret), true),
		Metrics:        m,
		Logger:         logger,
		AllowedOrigins: []string{"*"},
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

type apiClient struct {
	baseURL string
}

// do sends body as JSON. A positive asUser sets the trusted user header.
func (c apiClient) do(method, path string, asUser int, body interface{}) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		So(err, ShouldBeNil)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	So(err, ShouldBeNil)
	req.Header.Set("Content-Type", "application/json")
	if asUser > 0 {
		req.Header.Set(middleware.UserIDHeader, strconv.Itoa(asUser))
	}

	resp, err := http.DefaultClient.Do(req)
	So(err, ShouldBeNil)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	So(err, ShouldBeNil)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		So(json.Unmarshal(raw, &decoded), ShouldBeNil)
	}
	return resp.StatusCode, decoded
}

func idOf(body map[string]interface{}, key string) int {
	return int(body[key].(map[string]interface{})["id"].(float64))
}

func TestAPI(t *testing.T) {
	Convey("Given the API on a fresh database", t, func() {
		api := apiClient{baseURL: newTestServer(t).URL}
		const scorer = services.BootstrapScorerID

		Convey("Health and metrics need no identity", func() {
			status, body := api.do(http.MethodGet, "/healthz", 0, nil)
			So(status, ShouldEqual, http.StatusOK)
			So(body["status"], ShouldEqual, "ok")

			resp, err := http.Get(api.baseURL + "/metrics")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("Requests without identity are rejected", func() {
			status, _ := api.do(http.MethodGet, "/series", 0, nil)
			So(status, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("Unknown identities are rejected by the gate", func() {
			status, _ := api.do(http.MethodGet, "/series", 999, nil)
			So(status, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("Login issues a token that authenticates requests", func() {
			status, body := api.do(http.MethodPost, "/auth/login", 0, map[string]interface{}{"user_id": scorer, "password": "scorer-password"})
			So(status, ShouldEqual, http.StatusOK)
			token, _ := body["token"].(string)
			So(token, ShouldNotBeBlank)

			req, _ := http.NewRequest(http.MethodGet, api.baseURL+"/users/1", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			status, _ = api.do(http.MethodPost, "/auth/login", 0, map[string]interface{}{"user_id": scorer, "password": "wrong-password"})
			So(status, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("A full series can be scored", func() {
			status, body := api.do(http.MethodPost, "/users", scorer, map[string]interface{}{"name": "Cap", "role": "captain"})
			So(status, ShouldEqual, http.StatusCreated)
			captain := idOf(body, "user")

			_, body = api.do(http.MethodPost, "/users", scorer, map[string]interface{}{"name": "Pl", "role": "player"})
			player := idOf(body, "user")

			status, body = api.do(http.MethodPost, "/series", scorer, map[string]interface{}{
				"name": "Spring Cup", "start_date": "2024-03-01", "end_date": "2024-05-01",
			})
			So(status, ShouldEqual, http.StatusCreated)
			series := idOf(body, "series")

			_, body = api.do(http.MethodPost, "/teams", scorer, map[string]interface{}{"name": "A", "series_id": series, "captain_id": captain})
			teamA := idOf(body, "team")
			_, body = api.do(http.MethodPost, "/teams", scorer, map[string]interface{}{"name": "B", "series_id": series, "captain_id": captain})
			teamB := idOf(body, "team")

			status, _ = api.do(http.MethodPost, "/teams/"+strconv.Itoa(teamA)+"/members", scorer, map[string]interface{}{"user_id": player})
			So(status, ShouldEqual, http.StatusCreated)
			status, _ = api.do(http.MethodPost, "/teams/"+strconv.Itoa(teamA)+"/members", scorer, map[string]interface{}{"user_id": player})
			So(status, ShouldEqual, http.StatusConflict)

			_, body = api.do(http.MethodPost, "/rounds", scorer, map[string]interface{}{"series_id": series, "name": "R1"})
			round := idOf(body, "round")

			status, _ = api.do(http.MethodPost, "/rounds", player, map[string]interface{}{"series_id": series, "name": "R2"})
			So(status, ShouldEqual, http.StatusForbidden)

			status, _ = api.do(http.MethodGet, "/series/"+strconv.Itoa(series)+"/standings", player, nil)
			So(status, ShouldEqual, http.StatusNotFound)

			status, _ = api.do(http.MethodPost, "/team-points", scorer, map[string]interface{}{"round_id": round, "team_id": teamA, "points": 20})
			So(status, ShouldEqual, http.StatusCreated)
			status, _ = api.do(http.MethodPost, "/team-points", scorer, map[string]interface{}{"round_id": round, "team_id": teamB, "points": 25})
			So(status, ShouldEqual, http.StatusCreated)

			status, body = api.do(http.MethodGet, "/series/"+strconv.Itoa(series)+"/standings", player, nil)
			So(status, ShouldEqual, http.StatusOK)
			So(body["man_of_the_series"], ShouldBeNil)
			So(body["player_table"], ShouldBeEmpty)

			status, _ = api.do(http.MethodPost, "/player-performance", scorer, map[string]interface{}{"round_id": round, "player_id": player, "score": 50})
			So(status, ShouldEqual, http.StatusCreated)

			status, body = api.do(http.MethodGet, "/series/"+strconv.Itoa(series)+"/standings", player, nil)
			So(status, ShouldEqual, http.StatusOK)
			winner := body["winner_team"].(map[string]interface{})
			So(int(winner["team_id"].(float64)), ShouldEqual, teamB)
			mos := body["man_of_the_series"].(map[string]interface{})
			So(int(mos["player_id"].(float64)), ShouldEqual, player)

			status, body = api.do(http.MethodGet, "/rounds/"+strconv.Itoa(round)+"/man-of-match", captain, nil)
			So(status, ShouldEqual, http.StatusOK)
			So(int(body["player"].(map[string]interface{})["player_id"].(float64)), ShouldEqual, player)

			status, _ = api.do(http.MethodPost, "/series/"+strconv.Itoa(series)+"/standings/export", scorer, nil)
			So(status, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("Series longer than 92 days are rejected", func() {
			status, _ := api.do(http.MethodPost, "/series", scorer, map[string]interface{}{
				"name": "Marathon", "start_date": "2024-01-01", "end_date": "2024-04-03",
			})
			So(status, ShouldEqual, http.StatusBadRequest)
		})

		Convey("The seventh scorer conflicts", func() {
			for i := 0; i < services.MaxScorers-1; i++ {
				status, _ := api.do(http.MethodPost, "/users", scorer, map[string]interface{}{"name": "S", "role": "scorer"})
				So(status, ShouldEqual, http.StatusCreated)
			}
			status, _ := api.do(http.MethodPost, "/users", scorer, map[string]interface{}{"name": "S7", "role": "scorer"})
			So(status, ShouldEqual, http.StatusConflict)
		})
	})
}
