package utils

import "time"

// serviceDateLayout matches the date format the original data set uses for
// membersince, dateQueued and datewatched: two-digit year, dash separated.
// Reproduced exactly for compatibility with existing rows; widening the
// year is a data migration, not a code change here.
const serviceDateLayout = "06-01-02"

// ServiceDate formats t in the store's date format.
func ServiceDate(t time.Time) string {
	return t.Format(serviceDateLayout)
}

// Today returns the current date in the store's date format.
func Today() string {
	return ServiceDate(time.Now())
}
