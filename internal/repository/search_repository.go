package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/streamtv/streamtv/internal/model"
)

// SearchRepo runs the catalog search: case-insensitive substring match
// over show titles and actor names. No ranking; results come back in
// whatever order the store returns them.
type SearchRepo struct {
	db *sql.DB
}

func NewSearchRepo(db *sql.DB) *SearchRepo {
	return &SearchRepo{db: db}
}

// Shows returns the shows whose title contains term (case-insensitive).
func (r *SearchRepo) Shows(ctx context.Context, term string) ([]model.Show, error) {
	const q = `SELECT title, showID FROM shows WHERE LOWER(title) LIKE ?`
	rows, err := r.db.QueryContext(ctx, q, pattern(term))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Show
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.Title, &s.ShowID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Actors returns the actors whose first OR last name contains term
// (case-insensitive); either field matching is enough.
func (r *SearchRepo) Actors(ctx context.Context, term string) ([]model.Actor, error) {
	const q = `SELECT actID, fname, lname FROM actor
	           WHERE LOWER(fname) LIKE ? OR LOWER(lname) LIKE ?`
	p := pattern(term)
	rows, err := r.db.QueryContext(ctx, q, p, p)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Actor
	for rows.Next() {
		var a model.Actor
		if err := rows.Scan(&a.ActID, &a.Fname, &a.Lname); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func pattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
