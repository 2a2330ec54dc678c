package cmd

import (
	"testing"
	"time"

	"github.com/rnwolfe/tally/internal/calendar"
)

func TestToday(t *testing.T) {
	t.Setenv(todayEnv, "2026-02-14")
	got, err := today()
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if got != calendar.MustParse("2026-02-14") {
		t.Fatalf("today = %s, want 2026-02-14", got)
	}

	t.Setenv(todayEnv, "Feb 14")
	if _, err := today(); err == nil {
		t.Fatal("expected an error for a malformed TALLY_TODAY")
	}

	t.Setenv(todayEnv, "")
	got, err = today()
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if want := calendar.Today(time.Now()); got != want {
		t.Fatalf("today = %s, want %s", got, want)
	}
}

func TestDayValue(t *testing.T) {
	now := calendar.MustParse("2026-03-01")
	fallback := calendar.MustParse("2000-01-01")

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2026-01-15", "2026-01-15", false},
		{"today", "2026-03-01", false},
		{"Yesterday", "2026-02-28", false},
		{"tomorrow", "2026-03-02", false},
		{"01/15/2026", "", true},
		{"next week", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v dayValue
			err := v.Set(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if v.IsSet() {
					t.Fatal("a rejected value should leave the flag unset")
				}
				return
			}
			if err != nil {
				t.Fatalf("Set: %v", err)
			}
			if got := v.Resolve(now, fallback); got != calendar.MustParse(tt.want) {
				t.Fatalf("Resolve = %s, want %s", got, tt.want)
			}
		})
	}

	var unset dayValue
	if unset.IsSet() || unset.Resolve(now, fallback) != fallback {
		t.Fatal("an unset flag should resolve to the fallback")
	}
	if unset.Type() != "date" {
		t.Fatalf("Type = %q", unset.Type())
	}
}

func TestIndent(t *testing.T) {
	if got := indent("a\nb", "  "); got != "  a\n  b" {
		t.Fatalf("indent = %q", got)
	}
}
