package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/jxs13/timespan/internal/decompose"
	"github.com/jxs13/timespan/internal/duration"
)

const timeLayout = time.RFC3339Nano

// Entry is a single journaled decomposition.
// Start and End are zero when the duration was given as a raw nanosecond count.
type Entry struct {
	ID            int64
	CreatedAt     time.Time
	Start         time.Time
	End           time.Time
	Duration      duration.Duration
	Path          decompose.Path
	Decomposition decompose.Decomposition
}

func NewEntry(start, end time.Time, d duration.Duration) Entry {
	return Entry{
		Start:         start,
		End:           end,
		Duration:      d,
		Path:          decompose.PathOf(d),
		Decomposition: decompose.Decompose(d),
	}
}

type Store struct {
	db *sql.DB
}

// New expects a migrated database, see migrations.Migrate.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record returns the id of the new entry. A zero CreatedAt is set to the current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Path == "" {
		e.Path = decompose.PathOf(e.Duration)
	}

	dec := e.Decomposition
	res, err := s.db.ExecContext(ctx, `
INSERT INTO decompositions (
	created_at, start_time, end_time, nanoseconds, path, sign,
	years, months, weeks, days, hours, minutes, seconds,
	milliseconds, microseconds, remainder_ns
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.CreatedAt.UnixNano(),
		formatTime(e.Start),
		formatTime(e.End),
		e.Duration.Nanoseconds().String(),
		string(e.Path),
		dec.Sign,
		dec.Years,
		dec.Months,
		dec.Weeks,
		dec.Days,
		dec.Hours,
		dec.Minutes,
		dec.Seconds,
		dec.Milliseconds,
		dec.Microseconds,
		dec.Nanoseconds,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record decomposition: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get id of recorded decomposition: %w", err)
	}
	return id, nil
}

// List returns the newest entries first. A limit <= 0 returns all entries.
func (s *Store) List(ctx context.Context, limit int) (entries []Entry, err error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT
	id, created_at, start_time, end_time, nanoseconds, path, sign,
	years, months, weeks, days, hours, minutes, seconds,
	milliseconds, microseconds, remainder_ns
FROM decompositions
ORDER BY created_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list decompositions: %w", err)
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decompositions: %w", err)
	}
	return entries, nil
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM decompositions`)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func scan(rows *sql.Rows) (Entry, error) {
	var (
		e              Entry
		createdAt      int64
		start, end, ns string
		path           string
		dec            = &e.Decomposition
	)
	err := rows.Scan(
		&e.ID,
		&createdAt,
		&start,
		&end,
		&ns,
		&path,
		&dec.Sign,
		&dec.Years,
		&dec.Months,
		&dec.Weeks,
		&dec.Days,
		&dec.Hours,
		&dec.Minutes,
		&dec.Seconds,
		&dec.Milliseconds,
		&dec.Microseconds,
		&dec.Nanoseconds,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to scan decomposition: %w", err)
	}

	e.CreatedAt = time.Unix(0, createdAt)
	e.Path = decompose.Path(path)

	e.Start, err = parseTime(start)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid start time of entry %d: %w", e.ID, err)
	}
	e.End, err = parseTime(end)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid end time of entry %d: %w", e.ID, err)
	}

	total, ok := new(big.Int).SetString(ns, 10)
	if !ok {
		return Entry{}, fmt.Errorf("invalid nanoseconds of entry %d: %q", e.ID, ns)
	}
	e.Duration, err = duration.FromBig(total)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid nanoseconds of entry %d: %w", e.ID, err)
	}
	return e, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s)
}
