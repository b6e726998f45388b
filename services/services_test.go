package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Dosada05/series-points/db"
	"github.com/Dosada05/series-points/models"
	"github.com/Dosada05/series-points/repositories"
	"github.com/Dosada05/series-points/storage"
)

const testSecret = "test-secret"

type testEnv struct {
	ctx  context.Context
	conn *sql.DB

	users     UserService
	series    SeriesService
	teams     TeamService
	rounds    RoundService
	scores    ScoreService
	standings StandingsService
	auth      AuthService

	notifier *recordingNotifier
	uploader *memoryUploader
}

type recordingNotifier struct {
	mu       sync.Mutex
	rooms    []string
	messages []interface{}
}

func (n *recordingNotifier) BroadcastToRoom(room string, message interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rooms = append(n.rooms, room)
	n.messages = append(n.messages, message)
}

type memoryUploader struct {
	objects map[string][]byte
}

func (u *memoryUploader) Upload(_ context.Context, key string, _ string, reader io.Reader) (*storage.UploadResult, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.objects[key] = body
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(_ context.Context, key string) error {
	delete(u.objects, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

// newTestEnv wires every service against a fresh sqlite file and seeds the
// bootstrap scorer (id 1).
func newTestEnv(t *testing.T, withUploader bool) *testEnv {
	ctx := context.Background()
	conn, err := db.Connect(db.DriverSQLite, filepath.Join(t.TempDir(), "series.db"), 5*time.Second)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Migrate(ctx, conn, db.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userRepo := repositories.NewUserRepository(conn, db.DriverSQLite)
	seriesRepo := repositories.NewSeriesRepository(conn)
	teamRepo := repositories.NewTeamRepository(conn)
	roundRepo := repositories.NewRoundRepository(conn)
	scoreRepo := repositories.NewScoreRepository(conn)
	gate := NewAccessGate(userRepo)

	env := &testEnv{
		ctx:      ctx,
		conn:     conn,
		notifier: &recordingNotifier{},
	}
	var uploader storage.FileUploader
	if withUploader {
		env.uploader = &memoryUploader{objects: map[string][]byte{}}
		uploader = env.uploader
	}

	env.users = NewUserService(conn, userRepo, teamRepo, gate, logger)
	env.series = NewSeriesService(seriesRepo, gate)
	env.teams = NewTeamService(teamRepo, seriesRepo, userRepo, gate)
	env.rounds = NewRoundService(roundRepo, seriesRepo, gate)
	env.scores = NewScoreService(scoreRepo, roundRepo, teamRepo, userRepo, gate, env.notifier, logger)
	env.standings = NewStandingsService(scoreRepo, roundRepo, seriesRepo, gate, uploader, logger)
	env.auth = NewAuthService(userRepo, []byte(testSecret), time.Hour)

	if _, err := env.users.EnsureBootstrapScorer(ctx, "Default Scorer", "bootstrap-pass"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return env
}

func (e *testEnv) user(name string, role models.UserRole) *models.User {
	u, err := e.users.CreateUser(e.ctx, BootstrapScorerID, CreateUserInput{Name: name, Role: role})
	So(err, ShouldBeNil)
	return u
}

func (e *testEnv) seriesFor(name string) *models.Series {
	s, err := e.series.CreateSeries(e.ctx, BootstrapScorerID, CreateSeriesInput{
		Name:      name,
		StartDate: models.NewDate(2024, time.March, 1),
		EndDate:   models.NewDate(2024, time.March, 31),
	})
	So(err, ShouldBeNil)
	return s
}

func (e *testEnv) team(name string, seriesID, captainID int) *models.Team {
	team, err := e.teams.CreateTeam(e.ctx, BootstrapScorerID, CreateTeamInput{Name: name, SeriesID: seriesID, CaptainID: captainID})
	So(err, ShouldBeNil)
	return team
}

func (e *testEnv) round(seriesID int, name string) *models.Round {
	r, err := e.rounds.CreateRound(e.ctx, BootstrapScorerID, CreateRoundInput{SeriesID: seriesID, Name: name})
	So(err, ShouldBeNil)
	return r
}

func (e *testEnv) points(roundID, teamID, points int) {
	_, err := e.scores.RecordTeamPoints(e.ctx, BootstrapScorerID, RecordTeamPointsInput{RoundID: roundID, TeamID: teamID, Points: points})
	So(err, ShouldBeNil)
}

func (e *testEnv) performance(roundID, playerID, score int, flagged bool) {
	_, err := e.scores.RecordPlayerPerformance(e.ctx, BootstrapScorerID, RecordPlayerPerformanceInput{
		RoundID: roundID, PlayerID: playerID, Score: score, ManOfMatch: flagged,
	})
	So(err, ShouldBeNil)
}

func countScorers(e *testEnv) int {
	var n int
	So(e.conn.QueryRowContext(e.ctx, `SELECT COUNT(*) FROM users WHERE role = 'scorer'`).Scan(&n), ShouldBeNil)
	return n
}

func TestBootstrapScorer(t *testing.T) {
	Convey("Given a seeded database", t, func() {
		env := newTestEnv(t, false)

		Convey("The bootstrap scorer has id 1", func() {
			u, err := env.users.GetUser(env.ctx, BootstrapScorerID, BootstrapScorerID)
			So(err, ShouldBeNil)
			So(u.Name, ShouldEqual, "Default Scorer")
			So(u.Role, ShouldEqual, models.RoleScorer)
			So(u.PasswordHash, ShouldBeNil)
		})

		Convey("Seeding again is a no-op", func() {
			_, err := env.users.EnsureBootstrapScorer(env.ctx, "Other", "")
			So(err, ShouldBeNil)
			So(countScorers(env), ShouldEqual, 1)
		})

		Convey("New users get ids after the seed", func() {
			u := env.user("Alice", models.RolePlayer)
			So(u.ID, ShouldBeGreaterThan, BootstrapScorerID)
		})
	})
}

func TestScorerQuota(t *testing.T) {
	Convey("Given the bootstrap scorer", t, func() {
		env := newTestEnv(t, false)

		Convey("Five more scorers fit and the seventh is rejected", func() {
			for i := 0; i < MaxScorers-1; i++ {
				env.user("Scorer", models.RoleScorer)
			}
			_, err := env.users.CreateUser(env.ctx, BootstrapScorerID, CreateUserInput{Name: "Extra", Role: models.RoleScorer})
			So(errors.Is(err, ErrQuotaExceeded), ShouldBeTrue)
			So(countScorers(env), ShouldEqual, MaxScorers)

			Convey("Other roles are unaffected", func() {
				u := env.user("Player", models.RolePlayer)
				So(u.Role, ShouldEqual, models.RolePlayer)
			})
		})

		Convey("Concurrent creations never exceed the quota", func() {
			const attempts = 20
			var (
				wg       sync.WaitGroup
				mu       sync.Mutex
				created  int
				rejected int
				other    []error
			)
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := env.users.CreateUser(env.ctx, BootstrapScorerID, CreateUserInput{Name: "Racer", Role: models.RoleScorer})
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						created++
					case errors.Is(err, ErrQuotaExceeded):
						rejected++
					default:
						other = append(other, err)
					}
				}()
			}
			wg.Wait()

			So(other, ShouldBeEmpty)
			So(created, ShouldEqual, MaxScorers-1)
			So(rejected, ShouldEqual, attempts-(MaxScorers-1))
			So(countScorers(env), ShouldEqual, MaxScorers)
		})
	})
}

func TestUserValidation(t *testing.T) {
	Convey("Given the bootstrap scorer", t, func() {
		env := newTestEnv(t, false)

		Convey("Unknown roles are rejected", func() {
			_, err := env.users.CreateUser(env.ctx, BootstrapScorerID, CreateUserInput{Name: "X", Role: "coach"})
			So(err, ShouldEqual, ErrInvalidRole)
		})

		Convey("Blank names are rejected", func() {
			_, err := env.users.CreateUser(env.ctx, BootstrapScorerID, CreateUserInput{Name: "  ", Role: models.RolePlayer})
			So(errors.Is(err, ErrValidationFailed), ShouldBeTrue)
		})

		Convey("Short passwords are rejected", func() {
			short := "abc"
			_, err := env.users.CreateUser(env.ctx, BootstrapScorerID, CreateUserInput{Name: "X", Role: models.RolePlayer, Password: &short})
			So(errors.Is(err, ErrPasswordTooShort), ShouldBeTrue)
		})

		Convey("Unknown callers cannot create users", func() {
			_, err := env.users.CreateUser(env.ctx, 999, CreateUserInput{Name: "X", Role: models.RolePlayer})
			So(err, ShouldEqual, ErrUnknownIdentity)
		})

		Convey("Users can be filtered by role", func() {
			env.user("Cap", models.RoleCaptain)
			env.user("P1", models.RolePlayer)
			env.user("P2", models.RolePlayer)
			role := models.RolePlayer
			players, err := env.users.ListUsers(env.ctx, BootstrapScorerID, &role)
			So(err, ShouldBeNil)
			So(players, ShouldHaveLength, 2)
		})

		Convey("Missing users are reported", func() {
			_, err := env.users.GetUser(env.ctx, BootstrapScorerID, 404)
			So(err, ShouldEqual, ErrUserNotFound)
		})
	})
}

func TestSeriesDuration(t *testing.T) {
	Convey("Given a scorer creating series", t, func() {
		env := newTestEnv(t, false)
		start := models.NewDate(2024, time.January, 1)

		create := func(end models.Date) (*models.Series, error) {
			return env.series.CreateSeries(env.ctx, BootstrapScorerID, CreateSeriesInput{Name: "Cup", StartDate: start, EndDate: end})
		}

		Convey("92 days is accepted", func() {
			s, err := create(start.AddDays(92))
			So(err, ShouldBeNil)
			So(s.ID, ShouldBeGreaterThan, 0)

			got, err := env.series.GetSeries(env.ctx, BootstrapScorerID, s.ID)
			So(err, ShouldBeNil)
			So(got.StartDate.String(), ShouldEqual, "2024-01-01")
			So(got.EndDate.String(), ShouldEqual, "2024-04-02")
		})

		Convey("93 days is rejected", func() {
			_, err := create(start.AddDays(93))
			So(errors.Is(err, ErrInvalidDuration), ShouldBeTrue)
		})

		Convey("An end before the start is rejected", func() {
			_, err := create(start.AddDays(-1))
			So(errors.Is(err, ErrInvalidDuration), ShouldBeTrue)
		})

		Convey("A zero length series is rejected", func() {
			_, err := create(start)
			So(errors.Is(err, ErrInvalidDuration), ShouldBeTrue)
		})

		Convey("A missing name is rejected", func() {
			_, err := env.series.CreateSeries(env.ctx, BootstrapScorerID, CreateSeriesInput{StartDate: start, EndDate: start.AddDays(3)})
			So(errors.Is(err, ErrValidationFailed), ShouldBeTrue)
		})
	})
}

func TestAccessGate(t *testing.T) {
	Convey("Given a captain and a player", t, func() {
		env := newTestEnv(t, false)
		captain := env.user("Cap", models.RoleCaptain)
		player := env.user("Pl", models.RolePlayer)
		series := env.seriesFor("Spring")

		for _, reader := range []*models.User{captain, player} {
			reader := reader
			Convey("Role "+string(reader.Role)+" can read", func() {
				got, err := env.series.GetSeries(env.ctx, reader.ID, series.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Spring")

				list, err := env.rounds.ListRoundsBySeries(env.ctx, reader.ID, series.ID)
				So(err, ShouldBeNil)
				So(list, ShouldBeEmpty)
			})

			Convey("Role "+string(reader.Role)+" cannot create a round", func() {
				_, err := env.rounds.CreateRound(env.ctx, reader.ID, CreateRoundInput{SeriesID: series.ID, Name: "R1"})
				So(err, ShouldEqual, ErrForbidden)
			})
		}

		Convey("Unknown identities are rejected on reads", func() {
			_, err := env.series.ListSeries(env.ctx, 0)
			So(err, ShouldEqual, ErrUnknownIdentity)
		})
	})
}

func TestTeamsAndMembership(t *testing.T) {
	Convey("Given a series with a captain", t, func() {
		env := newTestEnv(t, false)
		series := env.seriesFor("Summer")
		captain := env.user("Cap", models.RoleCaptain)

		Convey("A team with two added members lists exactly those two", func() {
			team := env.team("Tigers", series.ID, captain.ID)
			p1 := env.user("P1", models.RolePlayer)
			p2 := env.user("P2", models.RolePlayer)
			env.user("Bystander", models.RolePlayer)

			_, err := env.teams.AddMember(env.ctx, BootstrapScorerID, team.ID, p1.ID)
			So(err, ShouldBeNil)
			_, err = env.teams.AddMember(env.ctx, BootstrapScorerID, team.ID, p2.ID)
			So(err, ShouldBeNil)

			members, err := env.users.ListTeamMembers(env.ctx, captain.ID, team.ID)
			So(err, ShouldBeNil)
			So(members, ShouldHaveLength, 2)
			So(members[0].ID, ShouldEqual, p1.ID)
			So(members[1].ID, ShouldEqual, p2.ID)

			detail, err := env.teams.GetTeam(env.ctx, p1.ID, team.ID)
			So(err, ShouldBeNil)
			So(detail.Captain.ID, ShouldEqual, captain.ID)
			So(detail.Members, ShouldHaveLength, 2)

			Convey("Adding a member twice conflicts", func() {
				_, err := env.teams.AddMember(env.ctx, BootstrapScorerID, team.ID, p1.ID)
				So(err, ShouldEqual, ErrMembershipConflict)
			})

			Convey("Scorers cannot be members", func() {
				_, err := env.teams.AddMember(env.ctx, BootstrapScorerID, team.ID, BootstrapScorerID)
				So(err, ShouldEqual, ErrInvalidMemberRole)
			})
		})

		Convey("The captain must have role captain", func() {
			player := env.user("P", models.RolePlayer)
			_, err := env.teams.CreateTeam(env.ctx, BootstrapScorerID, CreateTeamInput{Name: "X", SeriesID: series.ID, CaptainID: player.ID})
			So(err, ShouldEqual, ErrInvalidCaptain)
		})

		Convey("The series must exist", func() {
			_, err := env.teams.CreateTeam(env.ctx, BootstrapScorerID, CreateTeamInput{Name: "X", SeriesID: 77, CaptainID: captain.ID})
			So(err, ShouldEqual, ErrSeriesNotFound)
		})

		Convey("Members of a missing team are not found", func() {
			_, err := env.users.ListTeamMembers(env.ctx, BootstrapScorerID, 77)
			So(err, ShouldEqual, ErrTeamNotFound)
		})
	})
}

func TestScoreLedger(t *testing.T) {
	Convey("Given a round with a team and a player", t, func() {
		env := newTestEnv(t, false)
		series := env.seriesFor("Autumn")
		captain := env.user("Cap", models.RoleCaptain)
		team := env.team("Lions", series.ID, captain.ID)
		round := env.round(series.ID, "Round 1")
		player := env.user("P", models.RolePlayer)

		Convey("Entries are stored and broadcast to the series room", func() {
			env.points(round.ID, team.ID, 12)
			env.performance(round.ID, player.ID, 40, true)

			scores, err := env.scores.ListRoundScores(env.ctx, player.ID, round.ID)
			So(err, ShouldBeNil)
			So(scores.TeamPoints, ShouldHaveLength, 1)
			So(scores.TeamPoints[0].Points, ShouldEqual, 12)
			So(scores.Performances, ShouldHaveLength, 1)
			So(scores.Performances[0].ManOfMatch, ShouldBeTrue)

			So(env.notifier.rooms, ShouldResemble, []string{"series_" + strconv.Itoa(series.ID), "series_" + strconv.Itoa(series.ID)})
		})

		Convey("Teams from another series are rejected", func() {
			other := env.seriesFor("Other")
			stranger := env.team("Strangers", other.ID, captain.ID)
			_, err := env.scores.RecordTeamPoints(env.ctx, BootstrapScorerID, RecordTeamPointsInput{RoundID: round.ID, TeamID: stranger.ID, Points: 1})
			So(errors.Is(err, ErrTeamNotInSeries), ShouldBeTrue)
		})

		Convey("Missing rounds are reported", func() {
			_, err := env.scores.RecordTeamPoints(env.ctx, BootstrapScorerID, RecordTeamPointsInput{RoundID: 999, TeamID: team.ID, Points: 1})
			So(err, ShouldEqual, ErrRoundNotFound)
		})

		Convey("Players cannot record scores", func() {
			_, err := env.scores.RecordPlayerPerformance(env.ctx, player.ID, RecordPlayerPerformanceInput{RoundID: round.ID, PlayerID: player.ID, Score: 99})
			So(err, ShouldEqual, ErrForbidden)
			So(env.notifier.rooms, ShouldBeEmpty)
		})
	})
}

func TestAggregations(t *testing.T) {
	Convey("Given a series with two teams and three players", t, func() {
		env := newTestEnv(t, true)
		series := env.seriesFor("Winter")
		captain := env.user("Cap", models.RoleCaptain)
		teamA := env.team("A", series.ID, captain.ID)
		teamB := env.team("B", series.ID, captain.ID)
		r1 := env.round(series.ID, "R1")
		r2 := env.round(series.ID, "R2")
		p1 := env.user("P1", models.RolePlayer)
		p2 := env.user("P2", models.RolePlayer)
		p3 := env.user("P3", models.RolePlayer)

		Convey("Aggregations over empty ledgers have no data", func() {
			_, err := env.standings.ManOfMatch(env.ctx, p1.ID, r1.ID)
			So(errors.Is(err, ErrNoData), ShouldBeTrue)
			_, err = env.standings.WinnerTeam(env.ctx, p1.ID, series.ID)
			So(errors.Is(err, ErrNoData), ShouldBeTrue)
			_, err = env.standings.ManOfSeries(env.ctx, p1.ID, series.ID)
			So(errors.Is(err, ErrNoData), ShouldBeTrue)
			_, err = env.standings.SeriesStandings(env.ctx, p1.ID, series.ID)
			So(errors.Is(err, ErrNoData), ShouldBeTrue)
		})

		Convey("Man of the match ties go to the lowest id on every call", func() {
			env.performance(r1.ID, p1.ID, 10, false)
			env.performance(r1.ID, p2.ID, 15, false)
			env.performance(r1.ID, p3.ID, 15, false)

			for i := 0; i < 5; i++ {
				mom, err := env.standings.ManOfMatch(env.ctx, captain.ID, r1.ID)
				So(err, ShouldBeNil)
				So(mom.Player.PlayerID, ShouldEqual, p2.ID)
				So(mom.Player.Points, ShouldEqual, 15)
			}
		})

		Convey("A flagged player is the man of the match", func() {
			env.performance(r1.ID, p1.ID, 5, true)
			env.performance(r1.ID, p2.ID, 30, false)

			mom, err := env.standings.ManOfMatch(env.ctx, captain.ID, r1.ID)
			So(err, ShouldBeNil)
			So(mom.Player.PlayerID, ShouldEqual, p1.ID)
		})

		Convey("Missing rounds are reported", func() {
			_, err := env.standings.ManOfMatch(env.ctx, captain.ID, 999)
			So(err, ShouldEqual, ErrRoundNotFound)
		})

		Convey("With points over two rounds", func() {
			env.points(r1.ID, teamA.ID, 10)
			env.points(r2.ID, teamA.ID, 10)
			env.points(r1.ID, teamB.ID, 5)
			env.points(r2.ID, teamB.ID, 20)

			Convey("The team with the highest total wins", func() {
				winner, err := env.standings.WinnerTeam(env.ctx, p1.ID, series.ID)
				So(err, ShouldBeNil)
				So(winner.TeamID, ShouldEqual, teamB.ID)
				So(winner.Points, ShouldEqual, 25)
			})

			Convey("Standings report the winner before any performance is recorded", func() {
				table, err := env.standings.SeriesStandings(env.ctx, p1.ID, series.ID)
				So(err, ShouldBeNil)
				So(table.WinnerTeam.TeamID, ShouldEqual, teamB.ID)
				So(table.WinnerTeam.Points, ShouldEqual, 25)
				So(table.TeamTable, ShouldHaveLength, 2)
				So(table.ManOfSeries, ShouldBeNil)
				So(table.PlayerTable, ShouldBeEmpty)
			})

			Convey("And performances recorded", func() {
				env.performance(r1.ID, p1.ID, 30, false)
				env.performance(r2.ID, p3.ID, 20, false)
				env.performance(r2.ID, p3.ID, 15, false)

				Convey("The player with the highest series total is man of the series", func() {
					top, err := env.standings.ManOfSeries(env.ctx, p1.ID, series.ID)
					So(err, ShouldBeNil)
					So(top.PlayerID, ShouldEqual, p3.ID)
					So(top.Points, ShouldEqual, 35)
				})

				Convey("Standings carry ranked tables", func() {
					table, err := env.standings.SeriesStandings(env.ctx, p1.ID, series.ID)
					So(err, ShouldBeNil)
					So(table.WinnerTeam.TeamID, ShouldEqual, teamB.ID)
					So(table.ManOfSeries.PlayerID, ShouldEqual, p3.ID)
					So(table.TeamTable, ShouldHaveLength, 2)
					So(table.TeamTable[0].TeamID, ShouldEqual, teamB.ID)
					So(table.PlayerTable, ShouldHaveLength, 2)
					So(table.PlayerTable[1].PlayerID, ShouldEqual, p1.ID)
				})

				Convey("Scorers can export the standings", func() {
					result, err := env.standings.ExportStandings(env.ctx, BootstrapScorerID, series.ID)
					So(err, ShouldBeNil)
					So(result.Key, ShouldStartWith, "standings/series-"+strconv.Itoa(series.ID)+"/")
					So(result.Key, ShouldEndWith, ".json")
					So(result.URL, ShouldEqual, "https://cdn.test/"+result.Key)
					So(bytes.Contains(env.uploader.objects[result.Key], []byte(`"winner_team"`)), ShouldBeTrue)
				})

				Convey("Readers cannot export", func() {
					_, err := env.standings.ExportStandings(env.ctx, p1.ID, series.ID)
					So(err, ShouldEqual, ErrForbidden)
				})
			})
		})
	})

	Convey("Without storage exports are unavailable", t, func() {
		env := newTestEnv(t, false)
		series := env.seriesFor("Dry")
		_, err := env.standings.ExportStandings(env.ctx, BootstrapScorerID, series.ID)
		So(err, ShouldEqual, ErrExportUnavailable)
	})
}

func TestLogin(t *testing.T) {
	Convey("Given the bootstrap scorer with a password", t, func() {
		env := newTestEnv(t, false)

		Convey("The right password issues a token", func() {
			res, err := env.auth.Login(env.ctx, LoginInput{UserID: BootstrapScorerID, Password: "bootstrap-pass"})
			So(err, ShouldBeNil)
			So(res.Token, ShouldNotBeBlank)
			So(res.User.ID, ShouldEqual, BootstrapScorerID)
			So(res.User.PasswordHash, ShouldBeNil)
		})

		Convey("A wrong password is rejected", func() {
			_, err := env.auth.Login(env.ctx, LoginInput{UserID: BootstrapScorerID, Password: "nope-nope"})
			So(err, ShouldEqual, ErrAuthInvalidCredentials)
		})

		Convey("Users without a password cannot log in", func() {
			u := env.user("NoPass", models.RolePlayer)
			_, err := env.auth.Login(env.ctx, LoginInput{UserID: u.ID, Password: "whatever1"})
			So(err, ShouldEqual, ErrAuthInvalidCredentials)
		})

		Convey("Unknown users are rejected", func() {
			_, err := env.auth.Login(env.ctx, LoginInput{UserID: 404, Password: "whatever1"})
			So(err, ShouldEqual, ErrAuthInvalidCredentials)
		})
	})
}

func TestTranslateRepoError(t *testing.T) {
	Convey("Repository sentinels map onto service errors", t, func() {
		cases := []struct {
			repo    error
			service error
		}{
			{repositories.ErrUserNotFound, ErrUserNotFound},
			{repositories.ErrSeriesNotFound, ErrSeriesNotFound},
			{repositories.ErrTeamNotFound, ErrTeamNotFound},
			{repositories.ErrRoundNotFound, ErrRoundNotFound},
			{repositories.ErrMembershipConflict, ErrMembershipConflict},
			{repositories.ErrUserConflict, ErrUserConflict},
		}
		for _, c := range cases {
			So(translateRepoError(c.repo), ShouldEqual, c.service)
		}

		unknown := errors.New("connection reset")
		So(translateRepoError(unknown), ShouldEqual, unknown)
		So(translateRepoError(nil), ShouldBeNil)
	})

	Convey("Every not found error is a kind of ErrNotFound", t, func() {
		for _, err := range []error{ErrUserNotFound, ErrSeriesNotFound, ErrTeamNotFound, ErrRoundNotFound} {
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		}
		So(ErrRoundNotFound.Error(), ShouldEqual, "round not found")
		So(errors.Is(ErrNoData, ErrNotFound), ShouldBeFalse)
	})
}
