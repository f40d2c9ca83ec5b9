package repository_test

// Shared fixtures for the repository tests. The suite runs the real SQL
// against an in-memory SQLite database; every query in the repositories
// is kept portable between MySQL and SQLite (dates are computed in Go,
// no engine-specific functions), so what passes here runs unchanged
// against the production store.

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
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

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection keeps every statement on the same in-memory DB.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func seedCustomer(t *testing.T, db *sql.DB, custID, username string) {
	t.Helper()
	mustExec(t, db,
		"INSERT INTO customer (custID, username, password, fname, lname, email, creditcard, membersince) VALUES (?,?,?,?,?,?,?,?)",
		custID, username, "x", "First", "Last", username+"@example.com", "4111", "24-01-01")
}

func seedCatalog(t *testing.T, db *sql.DB) {
	t.Helper()
	mustExec(t, db, "INSERT INTO shows VALUES ('S01','Band of Brothers',2001,'HBO','Spielberg','Drama')")
	mustExec(t, db, "INSERT INTO shows VALUES ('S02','Ozark',2017,'Netflix','Dubuque','Crime')")
	mustExec(t, db, "INSERT INTO episode VALUES ('S01','1AAA','Currahee','01-09-09')")
	mustExec(t, db, "INSERT INTO episode VALUES ('S01','1AAB','Day of Days','01-09-16')")
	mustExec(t, db, "INSERT INTO episode VALUES ('S01','2AAA','Points','02-09-09')")
	mustExec(t, db, "INSERT INTO actor VALUES ('A01','Anna','Lee')")
	mustExec(t, db, "INSERT INTO actor VALUES ('A02','Dan','Ford')")
	mustExec(t, db, "INSERT INTO actor VALUES ('A03','Grace','Hill')")
	mustExec(t, db, "INSERT INTO main_cast VALUES ('S01','A01','Winters')")
	mustExec(t, db, "INSERT INTO main_cast VALUES ('S01','A02','Nixon')")
	// A03 recurs on two S01 episodes under one role.
	mustExec(t, db, "INSERT INTO recurring_cast VALUES ('S01','A03','1AAA','Medic')")
	mustExec(t, db, "INSERT INTO recurring_cast VALUES ('S01','A03','1AAB','Medic')")
	mustExec(t, db, "INSERT INTO recurring_cast VALUES ('S02','A03','3BBB','Agent')")
}

// fixedClock returns a clock stuck at the given date.
func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}
