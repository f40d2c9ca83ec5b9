package model

// Show mirrors a row of the `shows` table.
type Show struct {
	ShowID       string `json:"showID"`
	Title        string `json:"title"`
	PremiereYear int    `json:"premiere_year"`
	Network      string `json:"network"`
	Creator      string `json:"creator"`
	Category     string `json:"category"`
}

// Episode mirrors a row of the `episode` table. EpisodeID is unique within
// its show and its first character encodes the season number.
type Episode struct {
	ShowID    string `json:"showID"`
	EpisodeID string `json:"episodeID"`
	Title     string `json:"title"`
	Airdate   string `json:"airdate"`
}

// Actor mirrors a row of the `actor` table.
type Actor struct {
	ActID string `json:"actID"`
	Fname string `json:"fname"`
	Lname string `json:"lname"`
}

// CastMember is one main-cast row for a show or episode: the actor plus the
// role they play.
type CastMember struct {
	ActID string `json:"actID"`
	Fname string `json:"fname"`
	Lname string `json:"lname"`
	Role  string `json:"role"`
}

// GuestCastMember is one aggregated recurring-cast row. Recurring entries
// are stored per episode, so Appearances counts the rows collapsed into
// this one actor.
type GuestCastMember struct {
	ActID       string `json:"actID"`
	Fname       string `json:"fname"`
	Lname       string `json:"lname"`
	Role        string `json:"role"`
	Appearances int    `json:"appearances"`
}

// ActorCredit is one (show, role) pair on an actor's filmography page.
type ActorCredit struct {
	ShowID string `json:"showID"`
	Title  string `json:"title"`
	Fname  string `json:"fname"`
	Lname  string `json:"lname"`
	Role   string `json:"role"`
}

// EpisodeSummary is one row of a show's episode listing. Season is derived
// from the first character of the episode identifier.
type EpisodeSummary struct {
	ShowTitle    string `json:"sTitle"`
	EpisodeTitle string `json:"eTitle"`
	Airdate      string `json:"airdate"`
	ShowID       string `json:"sID"`
	EpisodeID    string `json:"eID"`
	Season       string `json:"season"`
}

// EpisodeDetail is the episode header returned by the episode info page.
type EpisodeDetail struct {
	ShowTitle    string `json:"sTitle"`
	EpisodeTitle string `json:"eTitle"`
	Airdate      string `json:"airdate"`
	ShowID       string `json:"sID"`
	EpisodeID    string `json:"eID"`
}
