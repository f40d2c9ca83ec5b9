// Package repository contains data access logic for the streamTV catalog.
// This file covers the `shows` table and its cast relations. All lookups
// are read-only; empty result sets are valid and reported as ErrNotFound
// (single rows) or empty slices (lists).
package repository

import (
	"context"
	"database/sql"

	"github.com/streamtv/streamtv/internal/model"
)

// ShowRepo manages read access to shows and their cast.
type ShowRepo struct {
	db *sql.DB
}

func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying sql.DB for callers that need to combine
// catalog reads with other repositories in one transaction.
func (r *ShowRepo) DB() *sql.DB {
	return r.db
}

// GetByID retrieves a show by its ID. It returns ErrNotFound if there is
// no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, showID string) (model.Show, error) {
	const q = `SELECT title, premiere_year, network, creator, category, showID
	           FROM shows WHERE showID = ?`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, showID).Scan(
		&s.Title, &s.PremiereYear, &s.Network, &s.Creator, &s.Category, &s.ShowID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Show{}, ErrNotFound
		}
		return model.Show{}, err
	}
	return s, nil
}

// MainCast returns the main-cast members of a show, one row per actor.
func (r *ShowRepo) MainCast(ctx context.Context, showID string) ([]model.CastMember, error) {
	const q = `SELECT a.actID, a.fname, a.lname, mc.role
	           FROM actor a
	           JOIN main_cast mc ON mc.actID = a.actID
	           WHERE mc.showID = ?`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cast []model.CastMember
	for rows.Next() {
		var m model.CastMember
		if err := rows.Scan(&m.ActID, &m.Fname, &m.Lname, &m.Role); err != nil {
			return nil, err
		}
		cast = append(cast, m)
	}
	return cast, rows.Err()
}

// GuestCast returns the recurring (guest) cast of a show aggregated to one
// row per actor. Recurring entries are stored per episode, so the count
// is the number of rows collapsed for that actor.
func (r *ShowRepo) GuestCast(ctx context.Context, showID string) ([]model.GuestCastMember, error) {
	const q = `SELECT a.actID, a.fname, a.lname, MIN(rc.role) AS role, COUNT(*) AS appearances
	           FROM actor a
	           JOIN recurring_cast rc ON rc.actID = a.actID
	           WHERE rc.showID = ?
	           GROUP BY a.actID, a.fname, a.lname`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cast []model.GuestCastMember
	for rows.Next() {
		var g model.GuestCastMember
		if err := rows.Scan(&g.ActID, &g.Fname, &g.Lname, &g.Role, &g.Appearances); err != nil {
			return nil, err
		}
		cast = append(cast, g)
	}
	return cast, rows.Err()
}
