package model

// QueueRow is one show in a customer's queue, joined with the customer
// contact fields the queue page displays.
type QueueRow struct {
	Fname      string `json:"fname"`
	Lname      string `json:"lname"`
	Email      string `json:"email"`
	DateQueued string `json:"datequeued"`
	Title      string `json:"title"`
	ShowID     string `json:"showID"`
}

// WatchedRow is one watched episode of a show for a customer. DateWatched
// uses the service date format ("y-m-d") and is updated in place on
// re-watch; at most one row exists per (customer, show, episode).
type WatchedRow struct {
	ShowID      string `json:"showID"`
	EpisodeID   string `json:"episodeID"`
	Title       string `json:"title"`
	DateWatched string `json:"datewatched"`
}
