// Package backup writes and restores snapshots of every tracker.
//
// A snapshot is a JSON document. When a passphrase is given it is encrypted
// with age (scrypt) and ASCII-armored, so it can be kept anywhere. Files are
// written atomically: temp file, fsync, then rename.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/rnwolfe/tally/internal/calendar"
	"github.com/rnwolfe/tally/internal/tracker"
)

// Version is the snapshot format written by this build.
const Version = 1

var (
	// ErrWrongPassphrase is returned when an encrypted snapshot can't be
	// opened with the given passphrase.
	ErrWrongPassphrase = errors.New("wrong passphrase")
	// ErrCorrupted is returned when a snapshot can't be read or parsed.
	ErrCorrupted = errors.New("backup is corrupted or unreadable")
	// ErrPassphraseRequired is returned when reading an encrypted snapshot
	// without a passphrase.
	ErrPassphraseRequired = errors.New("backup is encrypted; a passphrase is required")
)

// Snapshot is the decoded content of a backup.
type Snapshot struct {
	Version    int
	ExportedAt time.Time
	Trackers   []tracker.Tracker
}

type snapshotJSON struct {
	Version    int           `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Trackers   []trackerJSON `json:"trackers"`
}

type trackerJSON struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Type      tracker.Type   `json:"type"`
	Color     string         `json:"color"`
	Start     calendar.Day   `json:"start"`
	CreatedAt time.Time      `json:"created_at"`
	Behavior  string         `json:"behavior,omitempty"`
	Goal      int            `json:"goal_days,omitempty"`
	LastReset *calendar.Day  `json:"last_reset,omitempty"`
	CountDown bool           `json:"countdown,omitempty"`
	End       *calendar.Day  `json:"end,omitempty"`
	Marked    []calendar.Day `json:"marked"`
}

func toJSON(t tracker.Tracker) trackerJSON {
	out := trackerJSON{
		ID:        t.ID,
		Title:     t.Title,
		Type:      t.Type(),
		Color:     t.Color,
		Start:     t.Start,
		CreatedAt: t.CreatedAt,
		Marked:    t.Log.MarkedDays(),
	}
	switch k := t.Kind.(type) {
	case tracker.Habit:
		out.Behavior = string(k.Behavior)
		if k.Goal.Enabled {
			out.Goal = k.Goal.TargetDays
		}
		out.LastReset = k.LastReset
		out.End = k.End
	case tracker.Event:
		out.CountDown = k.CountDown
		out.End = k.End
	}
	return out
}

func (j trackerJSON) tracker() (tracker.Tracker, error) {
	t := tracker.Tracker{
		ID:        j.ID,
		Title:     j.Title,
		Color:     j.Color,
		Start:     j.Start,
		CreatedAt: j.CreatedAt,
		Log:       make(tracker.ActivityLog, len(j.Marked)),
	}
	for _, d := range j.Marked {
		t.Log[d] = true
	}

	switch j.Type {
	case tracker.TypeHabit:
		b, err := tracker.ParseBehavior(j.Behavior)
		if err != nil {
			return t, err
		}
		t.Kind = tracker.Habit{
			Behavior:  b,
			Goal:      tracker.Goal{Enabled: j.Goal > 0, TargetDays: j.Goal},
			End:       j.End,
			LastReset: j.LastReset,
		}
	case tracker.TypeEvent:
		t.Kind = tracker.Event{CountDown: j.CountDown, End: j.End}
	default:
		return t, fmt.Errorf("%w: unknown tracker type %q", tracker.ErrInvalid, j.Type)
	}
	return t, t.Validate()
}

// Encode writes a snapshot of ts to w. An empty passphrase writes plain
// JSON.
func Encode(w io.Writer, ts []tracker.Tracker, exportedAt time.Time, passphrase string) error {
	doc := snapshotJSON{
		Version:    Version,
		ExportedAt: exportedAt.UTC(),
		Trackers:   make([]trackerJSON, 0, len(ts)),
	}
	for _, t := range ts {
		doc.Trackers = append(doc.Trackers, toJSON(t))
	}

	plain, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing backup: %w", err)
	}
	plain = append(plain, '\n')

	if passphrase == "" {
		_, err = w.Write(plain)
		return err
	}
	return encrypt(w, plain, passphrase)
}

// Decode reads a snapshot from r and validates every tracker in it.
func Decode(r io.Reader, passphrase string) (*Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}

	if IsEncrypted(raw) {
		if passphrase == "" {
			return nil, ErrPassphraseRequired
		}
		if raw, err = decrypt(raw, passphrase); err != nil {
			return nil, err
		}
	}

	var doc snapshotJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing JSON: %v", ErrCorrupted, err)
	}
	if doc.Version < 1 || doc.Version > Version {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupted, doc.Version)
	}

	snap := &Snapshot{
		Version:    doc.Version,
		ExportedAt: doc.ExportedAt,
		Trackers:   make([]tracker.Tracker, 0, len(doc.Trackers)),
	}
	seen := make(map[string]bool, len(doc.Trackers))
	for i, j := range doc.Trackers {
		if j.ID == "" || seen[j.ID] {
			return nil, fmt.Errorf("%w: tracker %d has a missing or duplicate id", ErrCorrupted, i+1)
		}
		seen[j.ID] = true

		t, err := j.tracker()
		if err != nil {
			return nil, fmt.Errorf("tracker %q: %w", j.Title, err)
		}
		snap.Trackers = append(snap.Trackers, t)
	}
	return snap, nil
}

// IsEncrypted reports whether raw looks like an armored age file.
func IsEncrypted(raw []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte(armor.Header))
}

// Export writes every tracker in st to path and returns how many it wrote.
func Export(st *tracker.Store, path, passphrase string, now time.Time) (int, error) {
	ts, err := st.List()
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, ts, now, passphrase); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return 0, fmt.Errorf("creating backup directory: %w", err)
	}
	if err := atomicWrite(path, buf.Bytes()); err != nil {
		return 0, err
	}
	return len(ts), nil
}

// Import replaces the contents of st with the snapshot at path. Nothing is
// changed unless the whole snapshot decodes and validates.
func Import(st *tracker.Store, path, passphrase string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()

	snap, err := Decode(f, passphrase)
	if err != nil {
		return nil, err
	}
	if err := st.ReplaceAll(snap.Trackers); err != nil {
		return nil, err
	}
	return snap, nil
}

func encrypt(w io.Writer, plain []byte, passphrase string) error {
	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating age recipient: %w", err)
	}

	aw := armor.NewWriter(w)
	ew, err := age.Encrypt(aw, recipient)
	if err != nil {
		return fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := ew.Write(plain); err != nil {
		return fmt.Errorf("encrypting backup: %w", err)
	}
	if err := ew.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := aw.Close(); err != nil {
		return fmt.Errorf("finalizing armor: %w", err)
	}
	return nil
}

func decrypt(raw []byte, passphrase string) ([]byte, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}

	r, err := age.Decrypt(armor.NewReader(bytes.NewReader(raw)), identity)
	if err != nil {
		// age has no typed error for a bad passphrase; match its wording.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	plain, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted data: %v", ErrCorrupted, err)
	}
	return plain, nil
}

// atomicWrite writes data to path through a temp file in the same directory.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tally-backup-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	name := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(name)
		}
	}()

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting backup permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("committing backup: %w", err)
	}
	committed = true
	return nil
}
