package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/streamtv/streamtv/internal/model"
	"github.com/streamtv/streamtv/internal/utils"
)

// QueueRepo manages the `cust_queue` table. A queue entry is created
// lazily the first time a logged-in viewer opens a show's info page; no
// explicit add-to-queue action exists. At most one row per
// (custID, showID) pair.
type QueueRepo struct {
	DB *sql.DB
	// Now is the clock used for dateQueued. Overridable in tests.
	Now func() time.Time
}

func NewQueueRepo(db *sql.DB) *QueueRepo {
	return &QueueRepo{DB: db, Now: time.Now}
}

// IsQueued reports whether the customer behind username already has the
// show in their queue.
func (r *QueueRepo) IsQueued(ctx context.Context, username, showID string) (bool, error) {
	const q = `SELECT q.dateQueued
	           FROM cust_queue q
	           JOIN customer c ON c.custID = q.custID
	           WHERE c.username = ? AND q.showID = ?
	           LIMIT 1`
	var date string
	err := r.DB.QueryRowContext(ctx, q, username, showID).Scan(&date)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// EnqueueIfAbsent inserts a queue entry dated today unless one already
// exists for (customer, show). It returns true when a new row was
// created. The check-then-insert is not serialized against concurrent
// first views; two simultaneous requests can race, which the store's own
// constraints are expected to absorb.
func (r *QueueRepo) EnqueueIfAbsent(ctx context.Context, custID, username, showID string) (bool, error) {
	queued, err := r.IsQueued(ctx, username, showID)
	if err != nil {
		return false, err
	}
	if queued {
		return false, nil
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO cust_queue (custID, showID, dateQueued) VALUES (?, ?, ?)",
		custID, showID, utils.ServiceDate(r.Now()))
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListForCustomer returns everything the customer has queued, joined with
// the contact fields the queue page displays. Empty slice when nothing is
// queued.
func (r *QueueRepo) ListForCustomer(ctx context.Context, username string) ([]model.QueueRow, error) {
	const q = `SELECT c.fname, c.lname, c.email, q.dateQueued, s.title, s.showID
	           FROM customer c
	           JOIN cust_queue q ON q.custID = c.custID
	           JOIN shows s ON s.showID = q.showID
	           WHERE c.username = ?`
	rows, err := r.DB.QueryContext(ctx, q, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.QueueRow
	for rows.Next() {
		var row model.QueueRow
		if err := rows.Scan(&row.Fname, &row.Lname, &row.Email, &row.DateQueued, &row.Title, &row.ShowID); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
