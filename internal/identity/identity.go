// Package identity issues record identifiers and creation timestamps for all
// persisted entities. Identifiers are random UUIDs assigned by the server at
// insert time; clients never supply them.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// TimeFormat is the timestamp layout stored in DATETIME columns (UTC).
const TimeFormat = "2006-01-02 15:04:05"

// DateFormat is the calendar-date layout accepted for show, act and expense dates.
const DateFormat = "2006-01-02"

// NewID returns a fresh UUID string for use as a record primary key.
func NewID() string {
	return uuid.NewString()
}

// Now returns the current UTC time in the DB timestamp layout.
func Now() string {
	return time.Now().UTC().Format(TimeFormat)
}
