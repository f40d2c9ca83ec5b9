package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/streamtv/streamtv/internal/model"
	"github.com/streamtv/streamtv/internal/utils"
)

// WatchOutcome is the result of recording a watch event.
type WatchOutcome int

const (
	// WatchRecorded means a row was inserted: the first watch of this
	// episode by this customer.
	WatchRecorded WatchOutcome = iota
	// WatchRecordedRewatch means an existing row's date was moved
	// forward: a re-watch on a later day.
	WatchRecordedRewatch
	// WatchAlreadyToday means the episode was already watched today; the
	// row is left untouched. At most one watch event counts per calendar
	// day per episode.
	WatchAlreadyToday
)

// Recorded reports whether the outcome wrote a watch date (first watch or
// later-day re-watch).
func (o WatchOutcome) Recorded() bool {
	return o == WatchRecorded || o == WatchRecordedRewatch
}

// WatchedRepo manages the `watched` table. At most one row exists per
// (custID, showID, episodeID) triple; re-watches update the date in
// place, rows are never deleted.
type WatchedRepo struct {
	DB *sql.DB
	// Now is the clock used for datewatched. Overridable in tests.
	Now func() time.Time
}

func NewWatchedRepo(db *sql.DB) *WatchedRepo {
	return &WatchedRepo{DB: db, Now: time.Now}
}

// Watch records that the customer watched the episode today. Three cases:
// no existing row inserts one dated today; an existing row dated today is
// left alone (WatchAlreadyToday); an existing row with an earlier date is
// updated to today. The date comparison is literal string equality on the
// stored "y-m-d" value.
func (r *WatchedRepo) Watch(ctx context.Context, custID, showID, episodeID string) (WatchOutcome, error) {
	today := utils.ServiceDate(r.Now())

	var dateWatched string
	err := r.DB.QueryRowContext(ctx,
		"SELECT datewatched FROM watched WHERE custID = ? AND showID = ? AND episodeID = ?",
		custID, showID, episodeID).Scan(&dateWatched)
	switch {
	case err == sql.ErrNoRows:
		_, err = r.DB.ExecContext(ctx,
			"INSERT INTO watched (custID, showID, episodeID, datewatched) VALUES (?, ?, ?, ?)",
			custID, showID, episodeID, today)
		if err != nil {
			return 0, err
		}
		return WatchRecorded, nil
	case err != nil:
		return 0, err
	case dateWatched == today:
		return WatchAlreadyToday, nil
	default:
		_, err = r.DB.ExecContext(ctx,
			"UPDATE watched SET datewatched = ? WHERE custID = ? AND showID = ? AND episodeID = ?",
			today, custID, showID, episodeID)
		if err != nil {
			return 0, err
		}
		return WatchRecordedRewatch, nil
	}
}

// ListForShow returns the episodes of one show the customer has watched,
// with episode titles and watch dates. Empty slice when none.
func (r *WatchedRepo) ListForShow(ctx context.Context, username, showID string) ([]model.WatchedRow, error) {
	const q = `SELECT w.showID, w.episodeID, e.title, w.datewatched
	           FROM watched w
	           JOIN customer c ON c.custID = w.custID
	           JOIN episode e ON e.showID = w.showID AND e.episodeID = w.episodeID
	           WHERE c.username = ? AND w.showID = ?`
	rows, err := r.DB.QueryContext(ctx, q, username, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.WatchedRow
	for rows.Next() {
		var row model.WatchedRow
		if err := rows.Scan(&row.ShowID, &row.EpisodeID, &row.Title, &row.DateWatched); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
