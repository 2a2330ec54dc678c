package tracker

import (
	"errors"
	"testing"

	"github.com/rnwolfe/tally/internal/calendar"
)

var day = calendar.MustParse

func dayPtr(s string) *calendar.Day {
	d := day(s)
	return &d
}

func TestParseBehavior(t *testing.T) {
	tests := []struct {
		in      string
		want    Behavior
		wantErr bool
	}{
		{"", Build, false},
		{"build", Build, false},
		{"Do", Build, false},
		{" quit ", Quit, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBehavior(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBehavior(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBehavior(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if err != nil && !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseBehavior(%q) error %v is not ErrInvalid", tt.in, err)
		}
	}
}

func TestGoalEnd(t *testing.T) {
	start := day("2026-01-01")
	tests := []struct {
		name string
		goal Goal
		want string
	}{
		{"disabled", Goal{TargetDays: 21}, ""},
		{"zero", Goal{Enabled: true}, ""},
		{"negative", Goal{Enabled: true, TargetDays: -4}, ""},
		{"one day", Goal{Enabled: true, TargetDays: 1}, "2026-01-01"},
		{"three weeks", Goal{Enabled: true, TargetDays: 21}, "2026-01-21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Habit{Goal: tt.goal}.GoalEnd(start)
			switch {
			case tt.want == "" && got != nil:
				t.Fatalf("GoalEnd = %s, want nil", got)
			case tt.want != "" && (got == nil || *got != day(tt.want)):
				t.Fatalf("GoalEnd = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Tracker{Title: "Read", Start: day("2026-01-01"), Kind: Habit{Behavior: Build}}

	tests := []struct {
		name    string
		mutate  func(*Tracker)
		wantErr bool
	}{
		{"valid habit", func(*Tracker) {}, false},
		{"valid countdown", func(tr *Tracker) { tr.Kind = Event{CountDown: true, End: dayPtr("2026-06-01")} }, false},
		{"valid count up", func(tr *Tracker) { tr.Kind = Event{} }, false},
		{"empty title", func(tr *Tracker) { tr.Title = "  " }, true},
		{"unknown color", func(tr *Tracker) { tr.Color = "mauve" }, true},
		{"known color", func(tr *Tracker) { tr.Color = "green" }, false},
		{"missing start", func(tr *Tracker) { tr.Start = calendar.Day{} }, true},
		{"missing kind", func(tr *Tracker) { tr.Kind = nil }, true},
		{"bad behavior", func(tr *Tracker) { tr.Kind = Habit{Behavior: "sometimes"} }, true},
		{"negative goal", func(tr *Tracker) { tr.Kind = Habit{Behavior: Build, Goal: Goal{TargetDays: -1}} }, true},
		{"goal without length", func(tr *Tracker) { tr.Kind = Habit{Behavior: Build, Goal: Goal{Enabled: true}} }, true},
		{"countdown without end", func(tr *Tracker) { tr.Kind = Event{CountDown: true} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := valid
			tt.mutate(&tr)
			err := tr.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() error %v is not ErrInvalid", err)
			}
		})
	}
}

func TestTrackerType(t *testing.T) {
	if got := (Tracker{Kind: Habit{}}).Type(); got != TypeHabit {
		t.Errorf("habit Type() = %q", got)
	}
	if got := (Tracker{Kind: Event{}}).Type(); got != TypeEvent {
		t.Errorf("event Type() = %q", got)
	}
	if got := (Tracker{}).Type(); got != "" {
		t.Errorf("empty Type() = %q", got)
	}
}

func TestShortID(t *testing.T) {
	if got := (Tracker{ID: "0123456789abcdef"}).ShortID(); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := (Tracker{ID: "abc"}).ShortID(); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}

func TestActivityLog(t *testing.T) {
	log := ActivityLog{}
	d := day("2026-01-05")

	if log.Marked(d) {
		t.Fatal("empty log reports a mark")
	}
	if !log.Toggle(d) || !log.Marked(d) {
		t.Fatal("Toggle on unmarked day should mark it")
	}
	if log.Toggle(d) || log.Marked(d) {
		t.Fatal("Toggle on marked day should clear it")
	}
	if _, present := log[d]; present {
		t.Fatal("cleared day should lose its key")
	}

	// A reset marker reads as unmarked and toggles to marked.
	log[d] = false
	if log.Marked(d) {
		t.Fatal("reset marker reads as marked")
	}
	if !log.Toggle(d) {
		t.Fatal("Toggle on reset marker should mark it")
	}
}

func TestMarkedDaysSorted(t *testing.T) {
	log := ActivityLog{
		day("2026-03-01"): true,
		day("2025-12-31"): true,
		day("2026-01-15"): false,
		day("2026-01-02"): true,
	}
	got := log.MarkedDays()
	want := []calendar.Day{day("2025-12-31"), day("2026-01-02"), day("2026-03-01")}
	if len(got) != len(want) {
		t.Fatalf("MarkedDays = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MarkedDays = %v, want %v", got, want)
		}
	}
}

func TestClone(t *testing.T) {
	log := ActivityLog{day("2026-01-01"): true}
	c := log.Clone()
	c.Toggle(day("2026-01-02"))
	if log.Marked(day("2026-01-02")) {
		t.Fatal("Clone shares storage with the original")
	}
}
