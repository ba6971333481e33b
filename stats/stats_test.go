package stats_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tracker/internal/models"
	"github.com/ayoisaiah/tracker/internal/testutil"
	"github.com/ayoisaiah/tracker/internal/timeutil"
	"github.com/ayoisaiah/tracker/stats"
	"github.com/ayoisaiah/tracker/store"
)

type TestCase struct {
	Name       string
	GoldenFile string
	Days       int
	Snapshot   []byte
}

func (t TestCase) Output() (out []byte, name string) {
	return t.Snapshot, t.GoldenFile
}

var today = time.Date(2024, time.March, 10, 15, 0, 0, 0, time.Local)

// seed fills an in-memory store with a week and a bit of history.
func seed(t *testing.T) store.DB {
	t.Helper()

	ctx := context.Background()

	db, err := store.NewSQLite(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	activities := []struct {
		name  string
		group int
		total float64
	}{
		{"reading", 1, 2},
		{"coding", 2, 5.25},
		{"writing", 1, 1},
	}

	for _, a := range activities {
		id, err := db.AddActivity(ctx, &models.Activity{
			Name:      a.name,
			GroupID:   a.group,
			AddedWhen: "2024-03-01",
			Activated: true,
		})
		require.NoError(t, err)
		require.NoError(t, db.SetActivityTotal(ctx, id, a.total))
	}

	rows := []struct {
		date  string
		id    int64
		hours float64
	}{
		{"2024-03-09", 1, 1.5},
		{"2024-03-05", 1, 0.5},
		{"2024-03-08", 2, 2.25},
		{"2024-03-02", 3, 1},
		{"2024-03-10", 2, 3},
	}

	for _, r := range rows {
		day, err := timeutil.ParseDate(r.date)
		require.NoError(t, err)
		require.NoError(t, db.InsertLedgerRow(ctx, models.NewLedgerEntry(r.id, day, r.hours)))
	}

	return db
}

func TestReportJSON(t *testing.T) {
	cases := []TestCase{
		{Name: "last seven days", GoldenFile: "last_week", Days: 7},
		{Name: "stops at the oldest entry", GoldenFile: "stops_at_oldest", Days: 30},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			db := seed(t)

			r, err := stats.Compute(context.Background(), db, tc.Days, today)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, stats.PrintJSON(&buf, r))

			tc.Snapshot = buf.Bytes()

			testutil.CompareGoldenFile(t, tc)
		})
	}
}

func TestDates(t *testing.T) {
	dates, reached := stats.Dates(today, 3, "")
	assert.Equal(t, []string{"2024-03-09", "2024-03-08", "2024-03-07"}, dates)
	assert.False(t, reached)

	dates, reached = stats.Dates(today, 10, "2024-03-08")
	assert.Equal(t, []string{"2024-03-09", "2024-03-08"}, dates)
	assert.True(t, reached)

	dates, _ = stats.Dates(time.Date(2024, time.March, 1, 0, 5, 0, 0, time.Local), 2, "")
	assert.Equal(t, []string{"2024-02-29", "2024-02-28"}, dates)
}

func TestReportEmpty(t *testing.T) {
	db, err := store.NewSQLite(":memory:")
	require.NoError(t, err)

	defer db.Close()

	r, err := stats.Compute(context.Background(), db, 5, today)
	require.NoError(t, err)

	assert.True(t, r.Empty())
	assert.Equal(t, 5, r.Days)

	var buf bytes.Buffer
	stats.Print(&buf, r)

	assert.Contains(t, buf.String(), "No entries were recorded")
}

func TestReportPrint(t *testing.T) {
	r, err := stats.Compute(context.Background(), seed(t), 7, today)
	require.NoError(t, err)

	var buf bytes.Buffer
	stats.Print(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "Group stats:")
	assert.Contains(t, out, "coding")
	assert.NotContains(t, out, "writing")
}

func TestComputeRejectsNonPositiveDays(t *testing.T) {
	db, err := store.NewSQLite(":memory:")
	require.NoError(t, err)

	defer db.Close()

	_, err = stats.Compute(context.Background(), db, 0, today)
	assert.Error(t, err)
}
