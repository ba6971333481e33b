package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/tracker/internal/models"
	"github.com/ayoisaiah/tracker/internal/osutil"
)

const (
	activityBucket = "activities"
	historyBucket  = "history"
)

// Bolt is a BoltDB store. Ledger keys are "date|activity id" so a cursor
// walks them in date order.
type Bolt struct {
	*bolt.DB
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	db, err := bolt.Open(
		pathToDB,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewBolt returns a wrapper to a BoltDB connection.
func NewBolt(dbPath string) (*Bolt, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{activityBucket, historyBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	slog.Debug("bolt store opened", slog.String("path", dbPath))

	return &Bolt{db}, nil
}

func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))

	return b
}

func ledgerKey(activityID int64, date string) []byte {
	return []byte(date + "|" + strconv.FormatInt(activityID, 10))
}

func getActivity(tx *bolt.Tx, activityID int64) (*models.Activity, error) {
	v := tx.Bucket([]byte(activityBucket)).Get(itob(activityID))
	if v == nil {
		return nil, ErrActivityNotFound.Fmt(activityID)
	}

	var a models.Activity
	if err := json.Unmarshal(v, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

func putActivity(tx *bolt.Tx, a *models.Activity) error {
	v, err := json.Marshal(a)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(activityBucket)).Put(itob(a.ID), v)
}

func getEntry(tx *bolt.Tx, activityID int64, date string) (*models.LedgerEntry, error) {
	v := tx.Bucket([]byte(historyBucket)).Get(ledgerKey(activityID, date))
	if v == nil {
		return nil, ErrNotFound.Fmt(activityID, date)
	}

	var e models.LedgerEntry
	if err := json.Unmarshal(v, &e); err != nil {
		return nil, err
	}

	return &e, nil
}

func putEntry(tx *bolt.Tx, e *models.LedgerEntry) error {
	v, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return tx.Bucket([]byte(historyBucket)).
		Put(ledgerKey(e.ActivityID, e.DateString()), v)
}

func (c *Bolt) LedgerHours(
	_ context.Context,
	activityID int64,
	date string,
) (float64, error) {
	var hours float64

	err := c.View(func(tx *bolt.Tx) error {
		e, err := getEntry(tx, activityID, date)
		if err != nil {
			return err
		}

		hours = e.Hours

		return nil
	})

	return hours, err
}

func (c *Bolt) InsertLedgerRow(_ context.Context, entry models.LedgerEntry) error {
	return c.Update(func(tx *bolt.Tx) error {
		return putEntry(tx, &entry)
	})
}

func (c *Bolt) UpdateLedgerHours(
	_ context.Context,
	activityID int64,
	date string,
	hours float64,
) error {
	return c.Update(func(tx *bolt.Tx) error {
		e, err := getEntry(tx, activityID, date)
		if err != nil {
			return err
		}

		e.Hours = hours

		return putEntry(tx, e)
	})
}

func (c *Bolt) ActivityTotal(ctx context.Context, activityID int64) (float64, error) {
	a, err := c.Activity(ctx, activityID)
	if err != nil {
		return 0, err
	}

	return a.HoursTotal, nil
}

func (c *Bolt) SetActivityTotal(
	_ context.Context,
	activityID int64,
	total float64,
) error {
	return c.Update(func(tx *bolt.Tx) error {
		a, err := getActivity(tx, activityID)
		if err != nil {
			return err
		}

		a.HoursTotal = total

		return putActivity(tx, a)
	})
}

func (c *Bolt) AddActivity(_ context.Context, a *models.Activity) (int64, error) {
	err := c.Update(func(tx *bolt.Tx) error {
		seq, err := tx.Bucket([]byte(activityBucket)).NextSequence()
		if err != nil {
			return err
		}

		a.ID = int64(seq)

		return putActivity(tx, a)
	})
	if err != nil {
		return 0, err
	}

	return a.ID, nil
}

func (c *Bolt) SetActivated(
	_ context.Context,
	activityID int64,
	activated bool,
) error {
	return c.Update(func(tx *bolt.Tx) error {
		a, err := getActivity(tx, activityID)
		if err != nil {
			return err
		}

		a.Activated = activated

		return putActivity(tx, a)
	})
}

func (c *Bolt) Activities(_ context.Context, all bool) ([]models.Activity, error) {
	var activities []models.Activity

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(activityBucket)).ForEach(func(_, v []byte) error {
			var a models.Activity
			if err := json.Unmarshal(v, &a); err != nil {
				return err
			}

			if all || a.Activated {
				activities = append(activities, a)
			}

			return nil
		})
	})

	return activities, err
}

func (c *Bolt) Activity(_ context.Context, activityID int64) (*models.Activity, error) {
	var a *models.Activity

	err := c.View(func(tx *bolt.Tx) error {
		var err error

		a, err = getActivity(tx, activityID)

		return err
	})

	return a, err
}

func (c *Bolt) LedgerForDates(
	_ context.Context,
	dates []string,
) ([]models.ActivityHours, error) {
	sums := make(map[int64]float64)

	var ids []int64

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(historyBucket)).Cursor()

		for _, date := range dates {
			prefix := []byte(date + "|")

			for k, v := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cur.Next() {
				var e models.LedgerEntry
				if err := json.Unmarshal(v, &e); err != nil {
					return err
				}

				if _, ok := sums[e.ActivityID]; !ok {
					ids = append(ids, e.ActivityID)
				}

				sums[e.ActivityID] += e.Hours
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(ids)

	result := make([]models.ActivityHours, 0, len(ids))

	err = c.View(func(tx *bolt.Tx) error {
		for _, id := range ids {
			a, err := getActivity(tx, id)
			if err != nil {
				return err
			}

			result = append(result, models.ActivityHours{
				Name:       a.Name,
				ID:         a.ID,
				GroupID:    a.GroupID,
				Hours:      sums[id],
				HoursTotal: a.HoursTotal,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, nil
	}

	return result, nil
}

func (c *Bolt) OldestLedgerDate(_ context.Context) (string, bool, error) {
	var date string

	err := c.View(func(tx *bolt.Tx) error {
		k, _ := tx.Bucket([]byte(historyBucket)).Cursor().First()
		if k == nil {
			return nil
		}

		before, _, _ := bytes.Cut(k, []byte("|"))
		date = string(before)

		return nil
	})

	return date, date != "", err
}
