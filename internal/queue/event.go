// Package queue defines message payloads exchanged over the message broker.
package queue

// EpisodeWatchedEvent is published after a watch is recorded or its date
// moved forward. It carries enough for downstream consumers to log or
// feed analytics without querying the primary database. Same-day repeat
// watches publish nothing.
type EpisodeWatchedEvent struct {
	CustID       string `json:"cust_id"`
	Username     string `json:"username"`
	ShowID       string `json:"show_id"`
	ShowTitle    string `json:"show_title"`
	EpisodeID    string `json:"episode_id"`
	EpisodeTitle string `json:"episode_title"`
	DateWatched  string `json:"date_watched"`
	Rewatch      bool   `json:"rewatch"`
	RecordedAt   string `json:"recorded_at"`
}
