package game

import (
	"strings"
	"testing"
)

func TestEventLog_FilterAndCount(t *testing.T) {
	el := NewEventLog(false)
	el.Add(1, "--", "state", "change", "playing", 0)
	el.Add(5, "S0", "spawn", "placed", "cell=(3,4)", 0)
	el.Add(9, "S1", "capture", "player_caught", "dist=0.40", 0)
	el.Add(9, "--", "state", "change", "lost", 0)

	if got := el.CountCategory("state", ""); got != 2 {
		t.Fatalf("expected 2 state entries, got %d", got)
	}
	if got := el.CountCategory("state", "change"); got != 2 {
		t.Fatalf("expected 2 state/change entries, got %d", got)
	}
	if got := el.CountCategory("", "player_caught"); got != 1 {
		t.Fatalf("expected 1 player_caught entry, got %d", got)
	}
	if got := el.Filter("capture", ""); len(got) != 1 || got[0].Actor != "S1" {
		t.Fatalf("capture filter returned %v", got)
	}
	if got := el.Filter("nope", ""); got != nil {
		t.Fatalf("expected nil for no matches, got %v", got)
	}
}

func TestEventLog_VerboseGating(t *testing.T) {
	quiet := NewEventLog(false)
	quiet.AddVerbose(1, "P", "move", "position", "(0.00,0.00)", 0)
	if len(quiet.Entries()) != 0 {
		t.Fatal("verbose entries should be dropped when verbose is off")
	}

	loud := NewEventLog(true)
	loud.AddVerbose(1, "P", "move", "position", "(0.00,0.00)", 0)
	if len(loud.Entries()) != 1 {
		t.Fatal("verbose entries should be kept when verbose is on")
	}
}

func TestEventLogEntry_String(t *testing.T) {
	e := EventLogEntry{Tick: 42, Actor: "S1", Category: "capture", Key: "player_caught", Value: "dist=0.58"}
	got := e.String()
	if !strings.HasPrefix(got, "[T=042]") {
		t.Fatalf("expected zero-padded tick prefix, got %q", got)
	}
	for _, want := range []string{"S1", "capture", "player_caught", "dist=0.58"} {
		if !strings.Contains(got, want) {
			t.Fatalf("formatted entry %q missing %q", got, want)
		}
	}
}
