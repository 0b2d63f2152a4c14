package game

import "fmt"

// EventLogEntry is one recorded event during a session.
type EventLogEntry struct {
	Tick     int
	Actor    string  // "P" for the player, "S0".."Sn" for pursuers, "--" for session events
	Category string  // state, spawn, move, capture, record
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] S1   capture  player_caught  dist=0.58
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// EventLog collects structured events during a session. It is unbounded and
// machine-readable; the headless runner and tests consume it, the ebiten
// frontend ignores it unless verbose logging is on.
type EventLog struct {
	entries []EventLogEntry
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-tick position
// entries are also recorded.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(tick int, actor, category, key, value string, numVal float64) {
	el.entries = append(el.entries, EventLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(tick, actor, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	return el.entries
}

// Filter returns entries matching the given category and/or key. Pass the
// empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns the number of entries matching category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}
