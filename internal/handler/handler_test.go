package handler_test

// End-to-end handler tests: the full route table served over httptest
// against an in-memory SQLite database, with the in-process session
// store behind the real cookie middleware. Event publishing stays off.

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/streamtv/streamtv/internal/config"
	"github.com/streamtv/streamtv/internal/handler"
	"github.com/streamtv/streamtv/internal/middleware"
	"github.com/streamtv/streamtv/internal/repository"
	"github.com/streamtv/streamtv/internal/router"
	"github.com/streamtv/streamtv/internal/session"
)

const testSchema = `
CREATE TABLE customer (
    custID      TEXT PRIMARY KEY,
    username    TEXT NOT NULL,
    password    TEXT NOT NULL,
    fname       TEXT NOT NULL,
    lname       TEXT NOT NULL,
    email       TEXT NOT NULL,
    creditcard  TEXT NOT NULL,
    membersince TEXT NOT NULL
);
CREATE TABLE shows (
    showID        TEXT PRIMARY KEY,
    title         TEXT NOT NULL,
    premiere_year INTEGER NOT NULL,
    network       TEXT NOT NULL,
    creator       TEXT NOT NULL,
    category      TEXT NOT NULL
);
CREATE TABLE episode (
    showID    TEXT NOT NULL,
    episodeID TEXT NOT NULL,
    title     TEXT NOT NULL,
    airdate   TEXT NOT NULL,
    PRIMARY KEY (showID, episodeID)
);
CREATE TABLE actor (
    actID TEXT PRIMARY KEY,
    fname TEXT NOT NULL,
    lname TEXT NOT NULL
);
CREATE TABLE main_cast (
    showID TEXT NOT NULL,
    actID  TEXT NOT NULL,
    role   TEXT NOT NULL
);
CREATE TABLE recurring_cast (
    showID    TEXT NOT NULL,
    actID     TEXT NOT NULL,
    episodeID TEXT NOT NULL,
    role      TEXT NOT NULL
);
CREATE TABLE cust_queue (
    custID     TEXT NOT NULL,
    showID     TEXT NOT NULL,
    dateQueued TEXT NOT NULL
);
CREATE TABLE watched (
    custID      TEXT NOT NULL,
    showID      TEXT NOT NULL,
    episodeID   TEXT NOT NULL,
    datewatched TEXT NOT NULL
);
`

var catalogSeed = []string{
	"INSERT INTO shows VALUES ('S01','Band of Brothers',2001,'HBO','Spielberg','Drama')",
	"INSERT INTO shows VALUES ('S02','Ozark',2017,'Netflix','Dubuque','Crime')",
	"INSERT INTO episode VALUES ('S01','1AAA','Currahee','01-09-09')",
	"INSERT INTO episode VALUES ('S01','1AAB','Day of Days','01-09-16')",
	"INSERT INTO episode VALUES ('S01','2AAA','Points','02-09-09')",
	"INSERT INTO actor VALUES ('A01','Anna','Lee')",
	"INSERT INTO actor VALUES ('A02','Dan','Ford')",
	"INSERT INTO actor VALUES ('A03','Grace','Hill')",
	"INSERT INTO main_cast VALUES ('S01','A01','Winters')",
	"INSERT INTO main_cast VALUES ('S01','A02','Nixon')",
	"INSERT INTO recurring_cast VALUES ('S01','A03','1AAA','Medic')",
	"INSERT INTO recurring_cast VALUES ('S01','A03','1AAB','Medic')",
	"INSERT INTO recurring_cast VALUES ('S02','A03','3BBB','Agent')",
}

// testApp is the fully wired application under test. The write-side
// repositories are exposed so tests can move their clocks.
type testApp struct {
	e         *echo.Echo
	db        *sql.DB
	customers *repository.CustomerRepo
	queue     *repository.QueueRepo
	watched   *repository.WatchedRepo
}

func dayClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	for _, stmt := range catalogSeed {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	cfg := config.Config{
		Env:           "test",
		SessionSecret: "test-secret",
		SessionTTLMin: 30,
		BcryptCost:    4,
	}
	sessions := session.NewMemoryStore(time.Hour)

	customers := repository.NewCustomerRepo(db)
	customers.Now = dayClock(2024, time.June, 1)
	custQueue := repository.NewQueueRepo(db)
	custQueue.Now = dayClock(2024, time.June, 1)
	watched := repository.NewWatchedRepo(db)
	watched.Now = dayClock(2024, time.June, 1)

	shows := repository.NewShowRepo(db)
	actors := repository.NewActorRepo(db)
	episodes := repository.NewEpisodeRepo(db)

	h := router.Handlers{
		Auth: handler.NewAuthHandler(cfg, customers, sessions),
		Catalog: &handler.CatalogHandler{
			Shows: shows, Actors: actors, Episodes: episodes,
			Queue: custQueue, Customers: customers,
		},
		Queue: &handler.QueueHandler{Queue: custQueue},
		Watched: &handler.WatchedHandler{
			Watched: watched, Episodes: episodes, Shows: shows,
			Customers: customers, PublishEvents: false,
		},
		Search: &handler.SearchHandler{Search: repository.NewSearchRepo(db)},
	}

	e := echo.New()
	e.Use(middleware.ResolveSession(cfg.SessionSecret, sessions))
	router.Register(e, h, router.Middlewares{})

	return &testApp{e: e, db: db, customers: customers, queue: custQueue, watched: watched}
}

// do runs one request through the app and decodes the JSON body.
func (a *testApp) do(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

// sessionCookie pulls the session cookie out of a response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func registerForm(uname string) url.Values {
	return url.Values{
		"uname":     {uname},
		"password":  {"secret1"},
		"password2": {"secret1"},
		"fname":     {"Alice"},
		"lname":     {"Smith"},
		"email":     {uname + "@example.com"},
		"cc":        {"4111111111111111"},
	}
}

// register creates an account and returns the logged-in session cookie.
func (a *testApp) register(t *testing.T, uname string) *http.Cookie {
	t.Helper()
	rec, _ := a.do(t, http.MethodPost, "/register", registerForm(uname))
	require.Equal(t, http.StatusCreated, rec.Code)
	return sessionCookie(t, rec)
}
