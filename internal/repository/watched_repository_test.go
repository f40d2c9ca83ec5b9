package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/streamtv/streamtv/internal/repository"
)

func newWatchedRepo(t *testing.T) *repository.WatchedRepo {
	t.Helper()
	r := repository.NewWatchedRepo(openTestDB(t))
	r.Now = fixedClock(2024, time.January, 1)
	seedCatalog(t, r.DB)
	seedCustomer(t, r.DB, "cust001", "alice1")
	return r
}

func watchedDate(t *testing.T, repo *repository.WatchedRepo) string {
	t.Helper()
	var date string
	err := repo.DB.QueryRow(
		"SELECT datewatched FROM watched WHERE custID = 'cust001' AND showID = 'S01' AND episodeID = '1AAA'").Scan(&date)
	if err != nil {
		t.Fatalf("scan datewatched: %v", err)
	}
	return date
}

func TestWatchFirstTimeInsertsToday(t *testing.T) {
	repo := newWatchedRepo(t)
	out, err := repo.Watch(context.Background(), "cust001", "S01", "1AAA")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if out != repository.WatchRecorded {
		t.Fatalf("expected WatchRecorded, got %v", out)
	}
	if !out.Recorded() {
		t.Fatal("first watch should count as recorded")
	}
	if got := watchedDate(t, repo); got != "24-01-01" {
		t.Fatalf("expected datewatched 24-01-01, got %q", got)
	}
}

func TestWatchSameDayLeavesRowAlone(t *testing.T) {
	repo := newWatchedRepo(t)
	ctx := context.Background()

	if _, err := repo.Watch(ctx, "cust001", "S01", "1AAA"); err != nil {
		t.Fatalf("first watch: %v", err)
	}
	out, err := repo.Watch(ctx, "cust001", "S01", "1AAA")
	if err != nil {
		t.Fatalf("second watch: %v", err)
	}
	if out != repository.WatchAlreadyToday {
		t.Fatalf("expected WatchAlreadyToday, got %v", out)
	}
	if out.Recorded() {
		t.Fatal("same-day watch must not count as recorded")
	}
	if got := watchedDate(t, repo); got != "24-01-01" {
		t.Fatalf("date should be unchanged, got %q", got)
	}
}

func TestWatchNextDayUpdatesInPlace(t *testing.T) {
	repo := newWatchedRepo(t)
	ctx := context.Background()

	if _, err := repo.Watch(ctx, "cust001", "S01", "1AAA"); err != nil {
		t.Fatalf("first watch: %v", err)
	}

	repo.Now = fixedClock(2024, time.January, 2)
	out, err := repo.Watch(ctx, "cust001", "S01", "1AAA")
	if err != nil {
		t.Fatalf("rewatch: %v", err)
	}
	if out != repository.WatchRecordedRewatch {
		t.Fatalf("expected WatchRecordedRewatch, got %v", out)
	}
	if got := watchedDate(t, repo); got != "24-01-02" {
		t.Fatalf("expected datewatched 24-01-02, got %q", got)
	}

	// Still exactly one row for the triple.
	var count int
	if err := repo.DB.QueryRow("SELECT COUNT(*) FROM watched WHERE custID = 'cust001' AND showID = 'S01' AND episodeID = '1AAA'").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one watched row, got %d", count)
	}
}

func TestWatchKeepsEpisodesIndependent(t *testing.T) {
	repo := newWatchedRepo(t)
	ctx := context.Background()

	if _, err := repo.Watch(ctx, "cust001", "S01", "1AAA"); err != nil {
		t.Fatalf("watch 1AAA: %v", err)
	}
	out, err := repo.Watch(ctx, "cust001", "S01", "1AAB")
	if err != nil {
		t.Fatalf("watch 1AAB: %v", err)
	}
	if out != repository.WatchRecorded {
		t.Fatalf("expected WatchRecorded for a different episode, got %v", out)
	}
}

func TestListForShowFiltersByShowAndCustomer(t *testing.T) {
	repo := newWatchedRepo(t)
	ctx := context.Background()
	seedCustomer(t, repo.DB, "cust002", "bob22")

	if _, err := repo.Watch(ctx, "cust001", "S01", "1AAA"); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if _, err := repo.Watch(ctx, "cust001", "S01", "1AAB"); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if _, err := repo.Watch(ctx, "cust002", "S01", "1AAA"); err != nil {
		t.Fatalf("watch: %v", err)
	}

	rows, err := repo.ListForShow(ctx, "alice1", "S01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows for alice1, got %d", len(rows))
	}
	byEpisode := map[string]string{}
	for _, row := range rows {
		byEpisode[row.EpisodeID] = row.Title
		if row.DateWatched != "24-01-01" {
			t.Fatalf("unexpected datewatched %q", row.DateWatched)
		}
	}
	if byEpisode["1AAA"] != "Currahee" || byEpisode["1AAB"] != "Day of Days" {
		t.Fatalf("unexpected episode titles: %v", byEpisode)
	}

	rows, err = repo.ListForShow(ctx, "alice1", "S02")
	if err != nil {
		t.Fatalf("list other show: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows for S02, got %d", len(rows))
	}
}
