package repository

import (
	"context"
	"database/sql"

	"github.com/streamtv/streamtv/internal/model"
)

// EpisodeRepo manages read access to episodes and their per-episode cast.
type EpisodeRepo struct {
	db *sql.DB
}

func NewEpisodeRepo(db *sql.DB) *EpisodeRepo {
	return &EpisodeRepo{db: db}
}

// ListByShow returns every episode of a show. The season number is the
// first character of the episode identifier.
func (r *EpisodeRepo) ListByShow(ctx context.Context, showID string) ([]model.EpisodeSummary, error) {
	const q = `SELECT s.title AS sTitle, e.title AS eTitle, e.airdate,
	                  s.showID AS sID, e.episodeID AS eID
	           FROM episode e
	           JOIN shows s ON s.showID = e.showID
	           WHERE s.showID = ?`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var eps []model.EpisodeSummary
	for rows.Next() {
		var e model.EpisodeSummary
		if err := rows.Scan(&e.ShowTitle, &e.EpisodeTitle, &e.Airdate, &e.ShowID, &e.EpisodeID); err != nil {
			return nil, err
		}
		e.Season = seasonOf(e.EpisodeID)
		eps = append(eps, e)
	}
	return eps, rows.Err()
}

// GetByID returns a single episode header joined with its show title.
// ErrNotFound when the (show, episode) pair does not exist.
func (r *EpisodeRepo) GetByID(ctx context.Context, showID, episodeID string) (model.EpisodeDetail, error) {
	const q = `SELECT s.title AS sTitle, e.title AS eTitle, e.airdate,
	                  s.showID AS sID, e.episodeID AS eID
	           FROM episode e
	           JOIN shows s ON s.showID = e.showID
	           WHERE s.showID = ? AND e.episodeID = ?`
	var d model.EpisodeDetail
	err := r.db.QueryRowContext(ctx, q, showID, episodeID).
		Scan(&d.ShowTitle, &d.EpisodeTitle, &d.Airdate, &d.ShowID, &d.EpisodeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.EpisodeDetail{}, ErrNotFound
		}
		return model.EpisodeDetail{}, err
	}
	return d, nil
}

// MainCast returns the show's main cast in the context of one episode.
// The join through `episode` keeps the result empty when the episode
// itself does not exist.
func (r *EpisodeRepo) MainCast(ctx context.Context, showID, episodeID string) ([]model.CastMember, error) {
	const q = `SELECT a.fname, a.lname, mc.role, mc.actID
	           FROM actor a
	           JOIN main_cast mc ON mc.actID = a.actID
	           JOIN episode e ON e.showID = mc.showID
	           WHERE e.showID = ? AND e.episodeID = ?`
	return r.castRows(ctx, q, showID, episodeID)
}

// GuestCast returns the recurring cast credited on one specific episode,
// deduplicated to one row per actor.
func (r *EpisodeRepo) GuestCast(ctx context.Context, showID, episodeID string) ([]model.CastMember, error) {
	const q = `SELECT a.fname, a.lname, MIN(rc.role) AS role, rc.actID
	           FROM actor a
	           JOIN recurring_cast rc ON rc.actID = a.actID
	           WHERE rc.showID = ? AND rc.episodeID = ?
	           GROUP BY rc.actID, a.fname, a.lname`
	return r.castRows(ctx, q, showID, episodeID)
}

func (r *EpisodeRepo) castRows(ctx context.Context, q, showID, episodeID string) ([]model.CastMember, error) {
	rows, err := r.db.QueryContext(ctx, q, showID, episodeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cast []model.CastMember
	for rows.Next() {
		var m model.CastMember
		if err := rows.Scan(&m.Fname, &m.Lname, &m.Role, &m.ActID); err != nil {
			return nil, err
		}
		cast = append(cast, m)
	}
	return cast, rows.Err()
}

// seasonOf derives the season from an episode identifier; the first
// character encodes the season number.
func seasonOf(episodeID string) string {
	if episodeID == "" {
		return ""
	}
	return episodeID[:1]
}
