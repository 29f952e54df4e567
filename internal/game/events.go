package game

import (
	"fmt"
	"strings"
)

// Event categories and keys recorded by a World.
const (
	CategoryEnemy   = "enemy"
	CategoryPlayer  = "player"
	CategoryToken   = "token"
	CategorySession = "session"

	KeyEnemyExit      = "exit"
	KeyEnemyHit       = "hit"
	KeyPlayerCross    = "cross"
	KeyPlayerMove     = "move"
	KeyPlayerGameOver = "game_over"
	KeyTokenCollect   = "collect"
	KeyTokenExpire    = "expire"
	KeySessionHalt    = "halt"
	KeySessionRestart = "restart"
)

// Event is one thing that happened during a tick.
type Event struct {
	Tick     int
	Entity   string // "E0".."En", "P", "T", or "--" for session events
	Category string
	Key      string
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
	Verbose  bool    // high-frequency event, dropped by non-verbose logs
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] E3   enemy    hit        lives 3 → 2
func (e Event) String() string {
	return fmt.Sprintf("[T=%04d] %-4s %-8s %-10s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// Listener receives every event a World emits, in order. Delivery is
// serialized with the tick, so a listener never sees two events at once.
type Listener interface {
	HandleEvent(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// EventLog collects events for tests and reports. It is unbounded.
type EventLog struct {
	entries []Event
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, high-frequency events
// such as enemies leaving the field and player moves are kept too.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// HandleEvent records e.
func (l *EventLog) HandleEvent(e Event) {
	if e.Verbose && !l.verbose {
		return
	}
	l.entries = append(l.entries, e)
}

// Entries returns all recorded events.
func (l *EventLog) Entries() []Event {
	return l.entries
}

// Filter returns events matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.entries {
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

// Count returns the number of events matching category and key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// Reset drops every recorded event.
func (l *EventLog) Reset() {
	l.entries = l.entries[:0]
}

// Format returns all entries as a multi-line string.
func (l *EventLog) Format() string {
	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
