// Package models holds the records persisted by the store.
package models

import "github.com/ayoisaiah/tracker/internal/timeutil"

// Activity is something the operator tracks time against.
type Activity struct {
	Name       string  `json:"name"`
	AddedWhen  string  `json:"added_when"`
	ID         int64   `json:"id"`
	GroupID    int     `json:"group_id"`
	HoursTotal float64 `json:"hours_total"`
	Activated  bool    `json:"is_activated"`
}

// LedgerEntry is the hours recorded for one activity on one date.
type LedgerEntry struct {
	timeutil.Date
	ActivityID int64   `json:"id_activity"`
	Hours      float64 `json:"hours_on_day"`
}

// NewLedgerEntry returns an entry for the given activity and date.
func NewLedgerEntry(activityID int64, date timeutil.Date, hours float64) LedgerEntry {
	return LedgerEntry{
		Date:       date,
		ActivityID: activityID,
		Hours:      hours,
	}
}

// DateString returns the entry date as YYYY-MM-DD.
func (e LedgerEntry) DateString() string {
	return e.Date.String()
}

// ActivityHours joins an activity with hours logged over some period.
type ActivityHours struct {
	Name       string  `json:"name"`
	ID         int64   `json:"id"`
	GroupID    int     `json:"group_id"`
	Hours      float64 `json:"hours"`
	HoursTotal float64 `json:"hours_total"`
}
