package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/tracker/internal/models"
)

const schema = `
CREATE TABLE activities (
	id INTEGER PRIMARY KEY,
	group_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	added_when TEXT NOT NULL,
	is_activated INTEGER NOT NULL DEFAULT 1,
	hours_total NUMERIC NOT NULL DEFAULT 0.0
);

CREATE TABLE history (
	id_activity INTEGER NOT NULL,
	year INTEGER NOT NULL,
	month INTEGER NOT NULL,
	day INTEGER NOT NULL,
	weeknumber INTEGER NOT NULL,
	hours_on_day NUMERIC NOT NULL DEFAULT 0.0,
	date TEXT NOT NULL,
	FOREIGN KEY (id_activity) REFERENCES activities(id)
);
`

const expectedTables = 2

// SQLite is a store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and if necessary creates) the database at path. An
// existing database must contain exactly the activities and history tables.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// a single connection keeps ":memory:" databases alive across queries
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLite{db: db}

	if err := s.bootstrap(path); err != nil {
		db.Close()
		return nil, err
	}

	slog.Debug("sqlite store opened", slog.String("path", path))

	return s, nil
}

func (s *SQLite) bootstrap(path string) error {
	var tables int

	err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type = 'table'`,
	).Scan(&tables)
	if err != nil {
		return fmt.Errorf("count tables: %w", err)
	}

	switch tables {
	case 0:
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}

		slog.Info("created database schema", slog.String("path", path))

		return nil
	case expectedTables:
		return nil
	default:
		return ErrMalformedDB.Fmt(path, tables)
	}
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) LedgerHours(
	ctx context.Context,
	activityID int64,
	date string,
) (float64, error) {
	var hours float64

	err := s.db.QueryRowContext(ctx, `
		SELECT hours_on_day FROM history
		WHERE id_activity = ? AND date = ?
	`, activityID, date).Scan(&hours)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound.Fmt(activityID, date)
	}

	if err != nil {
		return 0, fmt.Errorf("scan ledger hours: %w", err)
	}

	return hours, nil
}

func (s *SQLite) InsertLedgerRow(
	ctx context.Context,
	entry models.LedgerEntry,
) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history
		(id_activity, year, month, day, weeknumber, hours_on_day, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ActivityID, entry.Year, entry.Month, entry.Day, entry.Week,
		entry.Hours, entry.DateString())
	if err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}

	return nil
}

func (s *SQLite) UpdateLedgerHours(
	ctx context.Context,
	activityID int64,
	date string,
	hours float64,
) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE history SET hours_on_day = ?
		WHERE id_activity = ? AND date = ?
	`, hours, activityID, date)
	if err != nil {
		return fmt.Errorf("update ledger row: %w", err)
	}

	return expectAffected(res, ErrNotFound.Fmt(activityID, date))
}

func (s *SQLite) ActivityTotal(
	ctx context.Context,
	activityID int64,
) (float64, error) {
	var total float64

	err := s.db.QueryRowContext(ctx,
		`SELECT hours_total FROM activities WHERE id = ?`, activityID,
	).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrActivityNotFound.Fmt(activityID)
	}

	if err != nil {
		return 0, fmt.Errorf("scan activity total: %w", err)
	}

	return total, nil
}

func (s *SQLite) SetActivityTotal(
	ctx context.Context,
	activityID int64,
	total float64,
) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE activities SET hours_total = ? WHERE id = ?`,
		total, activityID,
	)
	if err != nil {
		return fmt.Errorf("update activity total: %w", err)
	}

	return expectAffected(res, ErrActivityNotFound.Fmt(activityID))
}

func (s *SQLite) AddActivity(
	ctx context.Context,
	a *models.Activity,
) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO activities
		(name, group_id, added_when, is_activated, hours_total)
		VALUES (?, ?, ?, ?, ?)
	`, a.Name, a.GroupID, a.AddedWhen, a.Activated, a.HoursTotal)
	if err != nil {
		return 0, fmt.Errorf("insert activity: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("activity id: %w", err)
	}

	a.ID = id

	return id, nil
}

func (s *SQLite) SetActivated(
	ctx context.Context,
	activityID int64,
	activated bool,
) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE activities SET is_activated = ? WHERE id = ?`,
		activated, activityID,
	)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}

	return expectAffected(res, ErrActivityNotFound.Fmt(activityID))
}

const activityColumns = `id, group_id, name, added_when, is_activated, hours_total`

func scanActivity(row interface{ Scan(...any) error }) (models.Activity, error) {
	var a models.Activity

	err := row.Scan(
		&a.ID, &a.GroupID, &a.Name, &a.AddedWhen, &a.Activated, &a.HoursTotal,
	)

	return a, err
}

func (s *SQLite) Activities(
	ctx context.Context,
	all bool,
) ([]models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`
	if !all {
		query += ` WHERE is_activated = 1`
	}

	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity

	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}

		activities = append(activities, a)
	}

	return activities, rows.Err()
}

func (s *SQLite) Activity(
	ctx context.Context,
	activityID int64,
) (*models.Activity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = ?`,
		activityID,
	)

	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound.Fmt(activityID)
	}

	if err != nil {
		return nil, fmt.Errorf("scan activity: %w", err)
	}

	return &a, nil
}

func (s *SQLite) LedgerForDates(
	ctx context.Context,
	dates []string,
) ([]models.ActivityHours, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	args := make([]any, len(dates))
	for i := range dates {
		args[i] = dates[i]
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(dates)), ", ")

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.group_id, a.name, a.hours_total, SUM(h.hours_on_day)
		FROM activities a INNER JOIN history h ON a.id = h.id_activity
		WHERE h.date IN (`+placeholders+`)
		GROUP BY a.id
		ORDER BY a.id ASC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var result []models.ActivityHours

	for rows.Next() {
		var ah models.ActivityHours
		if err := rows.Scan(&ah.ID, &ah.GroupID, &ah.Name, &ah.HoursTotal,
			&ah.Hours); err != nil {
			return nil, fmt.Errorf("scan ledger: %w", err)
		}

		result = append(result, ah)
	}

	return result, rows.Err()
}

func (s *SQLite) OldestLedgerDate(ctx context.Context) (string, bool, error) {
	var date sql.NullString

	err := s.db.QueryRowContext(ctx, `SELECT MIN(date) FROM history`).
		Scan(&date)
	if err != nil {
		return "", false, fmt.Errorf("scan oldest date: %w", err)
	}

	return date.String, date.Valid, nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
