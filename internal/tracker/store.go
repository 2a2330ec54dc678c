package tracker

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rnwolfe/tally/internal/calendar"
)

// Store handles tracker persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a new tracker store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const trackerColumns = `id, title, kind, color, behavior, goal_enabled, goal_target,
	countdown, start_date, end_date, last_reset, created_at`

// Add validates t, assigns an id when it has none, and inserts it together
// with its activity log.
func (s *Store) Add(t *Tracker) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Color == "" {
		t.Color = DefaultColor
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("adding tracker: %w", err)
	}
	defer tx.Rollback()

	if err := insertTracker(tx, *t); err != nil {
		return fmt.Errorf("adding tracker: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("adding tracker: %w", err)
	}
	return nil
}

func insertTracker(tx *sql.Tx, t Tracker) error {
	row := toRow(t)
	_, err := tx.Exec(
		`INSERT INTO trackers (`+trackerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.id, row.title, row.kind, row.color, row.behavior, row.goalEnabled, row.goalTarget,
		row.countdown, row.startDate, row.endDate, row.lastReset, row.createdAt,
	)
	if err != nil {
		return err
	}
	for d, marked := range t.Log {
		if _, err := tx.Exec(
			`INSERT INTO activity (tracker_id, day, marked) VALUES (?, ?, ?)`,
			t.ID, d.String(), boolInt(marked),
		); err != nil {
			return fmt.Errorf("writing activity for %s: %w", d, err)
		}
	}
	return nil
}

// Resolve maps a full id or a unique id prefix to a tracker id. The prefix
// is compared byte for byte; it is never a pattern.
func (s *Store) Resolve(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrNotFound
	}

	rows, err := s.db.Query(`SELECT id FROM trackers WHERE substr(id, 1, length(?)) = ? ORDER BY id LIMIT 2`, prefix, prefix)
	if err != nil {
		return "", fmt.Errorf("resolving tracker %q: %w", prefix, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	}
	return "", fmt.Errorf("%w: %q matches more than one tracker", ErrAmbiguous, prefix)
}

// Get returns a single tracker, with its log, by id or unique prefix.
func (s *Store) Get(idOrPrefix string) (*Tracker, error) {
	id, err := s.Resolve(idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`SELECT `+trackerColumns+` FROM trackers WHERE id = ?`, id)
	t, err := scanTracker(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, idOrPrefix)
		}
		return nil, fmt.Errorf("getting tracker %s: %w", id, err)
	}

	logs, err := s.loadLogs(`WHERE tracker_id = ?`, id)
	if err != nil {
		return nil, err
	}
	t.Log = logs[id]
	if t.Log == nil {
		t.Log = ActivityLog{}
	}
	return t, nil
}

// List returns every tracker with its log, oldest first.
func (s *Store) List() ([]Tracker, error) {
	rows, err := s.db.Query(`SELECT ` + trackerColumns + ` FROM trackers ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing trackers: %w", err)
	}
	defer rows.Close()

	var trackers []Tracker
	for rows.Next() {
		t, err := scanTracker(rows)
		if err != nil {
			return nil, fmt.Errorf("listing trackers: %w", err)
		}
		trackers = append(trackers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logs, err := s.loadLogs("")
	if err != nil {
		return nil, err
	}
	for i := range trackers {
		trackers[i].Log = logs[trackers[i].ID]
		if trackers[i].Log == nil {
			trackers[i].Log = ActivityLog{}
		}
	}
	return trackers, nil
}

// Count returns the number of trackers per type.
func (s *Store) Count() (habits int, events int, err error) {
	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM trackers GROUP BY kind`)
	if err != nil {
		return 0, 0, fmt.Errorf("counting trackers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return 0, 0, err
		}
		switch Type(kind) {
		case TypeHabit:
			habits = n
		case TypeEvent:
			events = n
		}
	}
	return habits, events, rows.Err()
}

// Toggle flips the mark for day and returns the new state.
func (s *Store) Toggle(id string, day calendar.Day) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("toggling %s: %w", day, err)
	}
	defer tx.Rollback()

	var marked int
	err = tx.QueryRow(`SELECT marked FROM activity WHERE tracker_id = ? AND day = ?`, id, day.String()).Scan(&marked)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		marked = 0
	case err != nil:
		return false, fmt.Errorf("toggling %s: %w", day, err)
	}

	// Same semantics as ActivityLog.Toggle: a marked day loses its key,
	// anything else becomes marked.
	now := marked == 0
	if now {
		_, err = tx.Exec(
			`INSERT INTO activity (tracker_id, day, marked) VALUES (?, ?, 1)
			 ON CONFLICT(tracker_id, day) DO UPDATE SET marked = 1`,
			id, day.String(),
		)
	} else {
		_, err = tx.Exec(`DELETE FROM activity WHERE tracker_id = ? AND day = ?`, id, day.String())
	}
	if err != nil {
		return false, fmt.Errorf("toggling %s: %w", day, err)
	}
	return now, tx.Commit()
}

// Relapse records a relapse on day for a quit habit: the day is marked and
// becomes the habit's last reset.
func (s *Store) Relapse(id string, day calendar.Day) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	h, ok := t.Kind.(Habit)
	if !ok || h.Behavior != Quit {
		return fmt.Errorf("%w: only quit habits can relapse", ErrInvalid)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("recording relapse: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO activity (tracker_id, day, marked) VALUES (?, ?, 1)
		 ON CONFLICT(tracker_id, day) DO UPDATE SET marked = 1`,
		t.ID, day.String(),
	); err != nil {
		return fmt.Errorf("recording relapse: %w", err)
	}
	if _, err := tx.Exec(`UPDATE trackers SET last_reset = ? WHERE id = ?`, day.String(), t.ID); err != nil {
		return fmt.Errorf("recording relapse: %w", err)
	}
	return tx.Commit()
}

// Update saves editable fields of t. The start date is immutable and is
// never written after creation.
func (s *Store) Update(t Tracker) error {
	if err := t.Validate(); err != nil {
		return err
	}
	row := toRow(t)
	res, err := s.db.Exec(
		`UPDATE trackers SET title = ?, color = ?, behavior = ?, goal_enabled = ?, goal_target = ?,
		 countdown = ?, end_date = ?, last_reset = ? WHERE id = ? AND kind = ?`,
		row.title, row.color, row.behavior, row.goalEnabled, row.goalTarget,
		row.countdown, row.endDate, row.lastReset, row.id, row.kind,
	)
	if err != nil {
		return fmt.Errorf("updating tracker: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, t.ID)
	}
	return nil
}

// Delete removes a tracker and its activity.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM trackers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tracker: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	// Explicit cleanup keeps this correct even when foreign keys are off.
	if _, err := s.db.Exec(`DELETE FROM activity WHERE tracker_id = ?`, id); err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole tracker set for ts in one transaction.
func (s *Store) ReplaceAll(ts []Tracker) error {
	for _, t := range ts {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tracker %q: %w", t.Title, err)
		}
		if t.ID == "" {
			return fmt.Errorf("%w: tracker %q has no id", ErrInvalid, t.Title)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("replacing trackers: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM activity`); err != nil {
		return fmt.Errorf("clearing activity: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM trackers`); err != nil {
		return fmt.Errorf("clearing trackers: %w", err)
	}
	for _, t := range ts {
		if t.Color == "" {
			t.Color = DefaultColor
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = time.Now().UTC()
		}
		if err := insertTracker(tx, t); err != nil {
			return fmt.Errorf("restoring %q: %w", t.Title, err)
		}
	}
	return tx.Commit()
}

// loadLogs reads activity rows grouped by tracker id.
func (s *Store) loadLogs(where string, args ...any) (map[string]ActivityLog, error) {
	rows, err := s.db.Query(`SELECT tracker_id, day, marked FROM activity `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("loading activity: %w", err)
	}
	defer rows.Close()

	logs := make(map[string]ActivityLog)
	for rows.Next() {
		var id, dayStr string
		var marked int
		if err := rows.Scan(&id, &dayStr, &marked); err != nil {
			return nil, err
		}
		d, err := calendar.Parse(dayStr)
		if err != nil {
			return nil, fmt.Errorf("activity for %s: %w", id, err)
		}
		if logs[id] == nil {
			logs[id] = ActivityLog{}
		}
		logs[id][d] = marked == 1
	}
	return logs, rows.Err()
}

// trackerRow is the flat column form of a Tracker.
type trackerRow struct {
	id, title, kind, color, behavior string
	goalEnabled, goalTarget          int
	countdown                        int
	startDate                        string
	endDate, lastReset               sql.NullString
	createdAt                        string
}

func toRow(t Tracker) trackerRow {
	row := trackerRow{
		id:        t.ID,
		title:     strings.TrimSpace(t.Title),
		kind:      string(t.Type()),
		color:     t.Color,
		startDate: t.Start.String(),
		createdAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
	switch k := t.Kind.(type) {
	case Habit:
		row.behavior = string(k.Behavior)
		row.goalEnabled = boolInt(k.Goal.Enabled)
		row.goalTarget = k.Goal.TargetDays
		row.endDate = nullDay(k.End)
		row.lastReset = nullDay(k.LastReset)
	case Event:
		row.countdown = boolInt(k.CountDown)
		row.endDate = nullDay(k.End)
	}
	return row
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTracker(sc scanner) (*Tracker, error) {
	var row trackerRow
	if err := sc.Scan(&row.id, &row.title, &row.kind, &row.color, &row.behavior,
		&row.goalEnabled, &row.goalTarget, &row.countdown, &row.startDate,
		&row.endDate, &row.lastReset, &row.createdAt); err != nil {
		return nil, err
	}

	start, err := calendar.Parse(row.startDate)
	if err != nil {
		return nil, fmt.Errorf("tracker %s start: %w", row.id, err)
	}
	end, err := parseNullDay(row.endDate)
	if err != nil {
		return nil, fmt.Errorf("tracker %s end: %w", row.id, err)
	}

	t := &Tracker{
		ID:    row.id,
		Title: row.title,
		Color: row.color,
		Start: start,
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, row.createdAt)

	switch Type(row.kind) {
	case TypeHabit:
		lastReset, err := parseNullDay(row.lastReset)
		if err != nil {
			return nil, fmt.Errorf("tracker %s last reset: %w", row.id, err)
		}
		behavior, err := ParseBehavior(row.behavior)
		if err != nil {
			return nil, err
		}
		t.Kind = Habit{
			Behavior:  behavior,
			Goal:      Goal{Enabled: row.goalEnabled == 1, TargetDays: row.goalTarget},
			End:       end,
			LastReset: lastReset,
		}
	case TypeEvent:
		t.Kind = Event{CountDown: row.countdown == 1, End: end}
	default:
		return nil, fmt.Errorf("tracker %s has unknown kind %q", row.id, row.kind)
	}
	return t, nil
}

func nullDay(d *calendar.Day) sql.NullString {
	if d == nil || d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullDay(s sql.NullString) (*calendar.Day, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := calendar.Parse(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
