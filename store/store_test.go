package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tracker/internal/models"
	"github.com/ayoisaiah/tracker/internal/timeutil"
	"github.com/ayoisaiah/tracker/store"
)

// openStores returns one empty store per backend.
func openStores(t *testing.T) map[string]store.DB {
	t.Helper()

	sq, err := store.NewSQLite(":memory:")
	require.NoError(t, err)

	bo, err := store.NewBolt(filepath.Join(t.TempDir(), "test.bolt"))
	require.NoError(t, err)

	t.Cleanup(func() {
		sq.Close()
		bo.Close()
	})

	return map[string]store.DB{
		store.DriverSQLite: sq,
		store.DriverBolt:   bo,
	}
}

func addActivity(t *testing.T, db store.DB, name string, group int) int64 {
	t.Helper()

	id, err := db.AddActivity(context.Background(), &models.Activity{
		Name:      name,
		GroupID:   group,
		AddedWhen: "2024-01-01",
		Activated: true,
	})
	require.NoError(t, err)

	return id
}

func entry(t *testing.T, id int64, date string, hours float64) models.LedgerEntry {
	t.Helper()

	d, err := timeutil.ParseDate(date)
	require.NoError(t, err)

	return models.NewLedgerEntry(id, d, hours)
}

func TestLedgerRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, db := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			id := addActivity(t, db, "reading", 1)

			_, err := db.LedgerHours(ctx, id, "2024-03-05")
			assert.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, db.InsertLedgerRow(ctx, entry(t, id, "2024-03-05", 0.1667)))

			hours, err := db.LedgerHours(ctx, id, "2024-03-05")
			require.NoError(t, err)
			assert.Equal(t, 0.1667, hours)

			require.NoError(t, db.UpdateLedgerHours(ctx, id, "2024-03-05", 1.25))

			hours, err = db.LedgerHours(ctx, id, "2024-03-05")
			require.NoError(t, err)
			assert.Equal(t, 1.25, hours)

			err = db.UpdateLedgerHours(ctx, id, "2024-03-06", 1)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestActivityTotal(t *testing.T) {
	ctx := context.Background()

	for name, db := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			id := addActivity(t, db, "coding", 2)

			total, err := db.ActivityTotal(ctx, id)
			require.NoError(t, err)
			assert.Zero(t, total)

			require.NoError(t, db.SetActivityTotal(ctx, id, 12.3333))

			total, err = db.ActivityTotal(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, 12.3333, total)

			_, err = db.ActivityTotal(ctx, id+100)
			assert.ErrorIs(t, err, store.ErrActivityNotFound)

			err = db.SetActivityTotal(ctx, id+100, 1)
			assert.ErrorIs(t, err, store.ErrActivityNotFound)
		})
	}
}

func TestActivities(t *testing.T) {
	ctx := context.Background()

	for name, db := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			first := addActivity(t, db, "reading", 1)
			second := addActivity(t, db, "running", 3)

			assert.NotEqual(t, first, second)

			require.NoError(t, db.SetActivated(ctx, first, false))

			active, err := db.Activities(ctx, false)
			require.NoError(t, err)
			require.Len(t, active, 1)
			assert.Equal(t, "running", active[0].Name)

			all, err := db.Activities(ctx, true)
			require.NoError(t, err)
			assert.Len(t, all, 2)

			a, err := db.Activity(ctx, first)
			require.NoError(t, err)

			want := &models.Activity{
				ID:        first,
				Name:      "reading",
				GroupID:   1,
				AddedWhen: "2024-01-01",
			}
			if diff := cmp.Diff(want, a); diff != "" {
				t.Errorf("activity mismatch (-want +got):\n%s", diff)
			}

			require.NoError(t, db.SetActivated(ctx, first, true))

			active, err = db.Activities(ctx, false)
			require.NoError(t, err)
			assert.Len(t, active, 2)

			err = db.SetActivated(ctx, 999, true)
			assert.ErrorIs(t, err, store.ErrActivityNotFound)

			_, err = db.Activity(ctx, 999)
			assert.ErrorIs(t, err, store.ErrActivityNotFound)
		})
	}
}

func TestLedgerForDates(t *testing.T) {
	ctx := context.Background()

	for name, db := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			reading := addActivity(t, db, "reading", 1)
			coding := addActivity(t, db, "coding", 2)
			addActivity(t, db, "idle", 2)

			rows := []models.LedgerEntry{
				entry(t, reading, "2024-03-03", 1.5),
				entry(t, reading, "2024-03-04", 0.25),
				entry(t, coding, "2024-03-04", 2),
				entry(t, coding, "2024-03-09", 4),
			}

			for _, r := range rows {
				require.NoError(t, db.InsertLedgerRow(ctx, r))
			}

			require.NoError(t, db.SetActivityTotal(ctx, coding, 6))

			got, err := db.LedgerForDates(ctx, []string{"2024-03-03", "2024-03-04"})
			require.NoError(t, err)

			want := []models.ActivityHours{
				{ID: reading, Name: "reading", GroupID: 1, Hours: 1.75},
				{ID: coding, Name: "coding", GroupID: 2, Hours: 2, HoursTotal: 6},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ledger mismatch (-want +got):\n%s", diff)
			}

			got, err = db.LedgerForDates(ctx, []string{"2023-01-01"})
			require.NoError(t, err)
			assert.Empty(t, got)

			oldest, ok, err := db.OldestLedgerDate(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "2024-03-03", oldest)
		})
	}
}

func TestOldestLedgerDateEmpty(t *testing.T) {
	for name, db := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := db.OldestLedgerDate(context.Background())
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productivity.db")

	db, err := store.NewSQLite(path)
	require.NoError(t, err)

	id := addActivity(t, db, "reading", 1)
	require.NoError(t, db.Close())

	db, err = store.NewSQLite(path)
	require.NoError(t, err)

	defer db.Close()

	a, err := db.Activity(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "reading", a.Name)
}

func TestSQLiteMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productivity.db")

	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	_, err = raw.Exec(`CREATE TABLE unrelated (id INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	_, err = store.NewSQLite(path)
	assert.ErrorIs(t, err, store.ErrMalformedDB)
}

func TestBoltAlreadyRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "productivity.bolt")

	db, err := store.NewBolt(path)
	require.NoError(t, err)

	defer db.Close()

	_, err = store.NewBolt(path)
	assert.ErrorIs(t, err, store.ErrAlreadyRunning)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := store.Open("mongo", "")
	assert.ErrorIs(t, err, store.ErrUnknownDriver)
}
