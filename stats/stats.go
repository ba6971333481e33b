// Package stats reports the hours logged over the last few days
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/ayoisaiah/tracker/internal/timeutil"
	"github.com/ayoisaiah/tracker/internal/ui"
	"github.com/ayoisaiah/tracker/store"
)

const noEntriesMsg = "No entries were recorded in the specified time range"

// Report holds the hours logged per group and per activity over a range of
// days ending yesterday.
type Report struct {
	From          string          `json:"from"`
	To            string          `json:"to"`
	Days          int             `json:"days"`
	ReachedOldest bool            `json:"reached_oldest_entry"`
	Groups        []GroupStats    `json:"groups"`
	Activities    []ActivityStats `json:"activities"`
}

type GroupStats struct {
	GroupID   int     `json:"group_id"`
	Hours     float64 `json:"hours"`
	AvgPerDay float64 `json:"avg_per_day"`
}

type ActivityStats struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	GroupID    int     `json:"group_id"`
	Hours      float64 `json:"hours"`
	AvgPerDay  float64 `json:"avg_per_day"`
	HoursTotal float64 `json:"hours_total"`
}

// Empty reports whether no hours were found.
func (r *Report) Empty() bool {
	return len(r.Activities) == 0
}

// Dates lists the dates of the days days before today, newest first. The
// list stops at oldest when it is reached, and reached says so.
func Dates(today time.Time, days int, oldest string) (dates []string, reached bool) {
	day := timeutil.RoundToStart(today)

	for i := 1; i <= days; i++ {
		date := day.AddDate(0, 0, -i).Format(timeutil.DateLayout)
		dates = append(dates, date)

		if date == oldest {
			return dates, true
		}
	}

	return dates, false
}

// Compute builds the report for the last days days, today excluded.
func Compute(
	ctx context.Context,
	db store.DB,
	days int,
	today time.Time,
) (*Report, error) {
	if days < 1 {
		return nil, errInvalidDays.Fmt(days)
	}

	oldest, _, err := db.OldestLedgerDate(ctx)
	if err != nil {
		return nil, err
	}

	dates, reached := Dates(today, days, oldest)

	rows, err := db.LedgerForDates(ctx, dates)
	if err != nil {
		return nil, err
	}

	r := &Report{
		From:          dates[len(dates)-1],
		To:            dates[0],
		Days:          len(dates),
		ReachedOldest: reached,
		Groups:        []GroupStats{},
		Activities:    make([]ActivityStats, 0, len(rows)),
	}

	n := float64(r.Days)
	groups := make(map[int]float64)

	for _, row := range rows {
		groups[row.GroupID] += row.Hours

		r.Activities = append(r.Activities, ActivityStats{
			ID:         row.ID,
			Name:       row.Name,
			GroupID:    row.GroupID,
			Hours:      timeutil.Round4(row.Hours),
			AvgPerDay:  timeutil.Round4(row.Hours / n),
			HoursTotal: timeutil.Round4(row.HoursTotal),
		})
	}

	for id, hours := range groups {
		r.Groups = append(r.Groups, GroupStats{
			GroupID:   id,
			Hours:     timeutil.Round4(hours),
			AvgPerDay: timeutil.Round4(hours / n),
		})
	}

	slices.SortFunc(r.Groups, func(a, b GroupStats) int {
		return a.GroupID - b.GroupID
	})

	return r, nil
}

// PrintJSON writes the report as indented JSON.
func PrintJSON(w io.Writer, r *Report) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// Print writes the report as tables.
func Print(w io.Writer, r *Report) {
	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("Reporting period: %s - %s (%d days)", r.From, r.To, r.Days)

	fmt.Fprint(w, header)

	if r.ReachedOldest {
		fmt.Fprintf(w, "Oldest entry in the ledger is %s\n", r.From)
	}

	if r.Empty() {
		pterm.Fprintln(w, noEntriesMsg)
		return
	}

	groups := [][]string{{"Group", "Hours", "Avg/Day"}}
	for _, g := range r.Groups {
		groups = append(groups, []string{
			strconv.Itoa(g.GroupID),
			fmt.Sprintf("%7.2f", g.Hours),
			fmt.Sprintf("%.2f", g.AvgPerDay),
		})
	}

	activities := [][]string{{"ID", "Activity", "Worked", "Avg/Day", "Total"}}
	for _, a := range r.Activities {
		activities = append(activities, []string{
			strconv.FormatInt(a.ID, 10),
			ui.Highlight(a.Name),
			fmt.Sprintf("%.2f", a.Hours),
			fmt.Sprintf("%.2f", a.AvgPerDay),
			ui.Green(timeutil.HoursToClock(a.HoursTotal)),
		})
	}

	pterm.Fprintln(w, "Group stats:")
	ui.PrintTable(groups, w)
	pterm.Fprintln(w, "Activity stats:")
	ui.PrintTable(activities, w)
}
