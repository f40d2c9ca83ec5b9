package repository

import (
	"context"
	"database/sql"

	"github.com/streamtv/streamtv/internal/model"
)

// ActorRepo manages read access to actors and their filmography.
type ActorRepo struct {
	db *sql.DB
}

func NewActorRepo(db *sql.DB) *ActorRepo {
	return &ActorRepo{db: db}
}

// GetByID retrieves an actor by ID, ErrNotFound when absent.
func (r *ActorRepo) GetByID(ctx context.Context, actID string) (model.Actor, error) {
	var a model.Actor
	err := r.db.QueryRowContext(ctx,
		"SELECT actID, fname, lname FROM actor WHERE actID = ?", actID).
		Scan(&a.ActID, &a.Fname, &a.Lname)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Actor{}, ErrNotFound
		}
		return model.Actor{}, err
	}
	return a, nil
}

// MainRoles returns every (show, role) pair from the actor's main-cast
// memberships.
func (r *ActorRepo) MainRoles(ctx context.Context, actID string) ([]model.ActorCredit, error) {
	const q = `SELECT s.showID, s.title, a.fname, a.lname, mc.role
	           FROM shows s
	           JOIN main_cast mc ON mc.showID = s.showID
	           JOIN actor a ON a.actID = mc.actID
	           WHERE mc.actID = ?`
	return r.credits(ctx, q, actID)
}

// GuestRoles returns the actor's recurring-cast credits grouped by role.
// Grouping by role rather than by show is carried over from the upstream
// behavior this service replaces; a role played on two shows collapses
// into one row.
func (r *ActorRepo) GuestRoles(ctx context.Context, actID string) ([]model.ActorCredit, error) {
	const q = `SELECT MIN(s.showID) AS showID, MIN(s.title) AS title,
	                  MIN(a.fname) AS fname, MIN(a.lname) AS lname, rc.role
	           FROM shows s
	           JOIN recurring_cast rc ON rc.showID = s.showID
	           JOIN actor a ON a.actID = rc.actID
	           WHERE rc.actID = ?
	           GROUP BY rc.role`
	return r.credits(ctx, q, actID)
}

func (r *ActorRepo) credits(ctx context.Context, q, actID string) ([]model.ActorCredit, error) {
	rows, err := r.db.QueryContext(ctx, q, actID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var credits []model.ActorCredit
	for rows.Next() {
		var c model.ActorCredit
		if err := rows.Scan(&c.ShowID, &c.Title, &c.Fname, &c.Lname, &c.Role); err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}
