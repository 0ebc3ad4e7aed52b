package tasks

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// doneAdoptWindow is how close DoneAt must sit to CreatedAt for a DONE
// observation to adopt the current time as the real completion time.
// A freshly created record has DoneAt == CreatedAt, so the first scan that
// sees the task marked DONE stamps it.
const doneAdoptWindow = 90 * time.Second

// timeFormat is the on-disk timestamp format.
const timeFormat = time.RFC3339

// ErrTaskUnknown indicates the requested task id has no persisted record.
var ErrTaskUnknown = errors.New("task id not found in store")

// Store is the durable per-task metadata store, a SQLite sidecar the engine
// treats as a simple key-value map. All writes are write-through.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the task metadata store under dir.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "tasks.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS task_data (
			id TEXT PRIMARY KEY,
			snooze_until TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			done_at TEXT NOT NULL,
			priority REAL NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize task store schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get looks up the persisted record for a task id.
func (s *Store) Get(id string) (*Data, error) {
	row := s.db.QueryRow(
		`SELECT snooze_until, created_at, done_at, priority FROM task_data WHERE id = ?`, id)

	var snooze, created, done string
	var prio float64
	if err := row.Scan(&snooze, &created, &done, &prio); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskUnknown
		}
		return nil, fmt.Errorf("failed to read task %q: %w", id, err)
	}

	d := &Data{Priority: prio}
	var err error
	if d.CreatedAt, err = parseStamp(created); err != nil {
		return nil, fmt.Errorf("task %q has bad created_at: %w", id, err)
	}
	if d.DoneAt, err = parseStamp(done); err != nil {
		return nil, fmt.Errorf("task %q has bad done_at: %w", id, err)
	}
	if snooze != "" {
		if d.SnoozeUntil, err = parseStamp(snooze); err != nil {
			return nil, fmt.Errorf("task %q has bad snooze_until: %w", id, err)
		}
	}
	return d, nil
}

// Put persists a record for a task id, replacing any existing one.
func (s *Store) Put(id string, d *Data) error {
	snooze := ""
	if !d.SnoozeUntil.IsZero() {
		snooze = d.SnoozeUntil.Format(timeFormat)
	}
	_, err := s.db.Exec(`
		INSERT INTO task_data (id, snooze_until, created_at, done_at, priority)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			snooze_until = excluded.snooze_until,
			created_at = excluded.created_at,
			done_at = excluded.done_at,
			priority = excluded.priority
	`, id, snooze, d.CreatedAt.Format(timeFormat), d.DoneAt.Format(timeFormat), d.Priority)
	if err != nil {
		return fmt.Errorf("failed to persist task %q: %w", id, err)
	}
	return nil
}

// Attach merges persisted metadata into freshly scanned tasks.
//
// Tasks with no record get a fresh one stamped with now and persisted
// immediately. A task observed as DONE whose DoneAt still sits at its
// creation stamp adopts now as its completion time; this is how the store
// learns completion without an explicit completion API.
func (s *Store) Attach(ts []Task, now time.Time) error {
	for i := range ts {
		t := &ts[i]
		d, err := s.Get(t.ID())
		if errors.Is(err, ErrTaskUnknown) {
			d = &Data{CreatedAt: now, DoneAt: now}
			if err := s.Put(t.ID(), d); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if t.State == StateDone && absDuration(d.DoneAt.Sub(d.CreatedAt)) < doneAdoptWindow {
			d.DoneAt = now
			if err := s.Put(t.ID(), d); err != nil {
				return err
			}
		}

		t.Data = d
	}
	return nil
}

// Snooze sets the snooze deadline for a task id. Read-modify-write,
// last write wins.
func (s *Store) Snooze(id string, until time.Time) error {
	d, err := s.Get(id)
	if err != nil {
		return err
	}
	d.SnoozeUntil = until
	return s.Put(id, d)
}

// Bump adjusts the manual priority offset for a task id.
func (s *Store) Bump(id string, delta float64) error {
	d, err := s.Get(id)
	if err != nil {
		return err
	}
	d.Priority += delta
	return s.Put(id, d)
}

func parseStamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeFormat, s)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
