package journal

import (
	"strings"
	"time"
)

// Level is the severity of a journal entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

// Entry is a single journal line. It is immutable once built.
type Entry struct {
	at      time.Time
	level   Level
	message string
}

// NewEntry builds an entry stamped at the given time.
// A zero time lets the channel stamp the entry when it is appended,
// which keeps lines in write order.
func NewEntry(level Level, message string, at time.Time) Entry {
	return Entry{
		at:      at,
		level:   level,
		message: message,
	}
}

// Info builds an INFO entry stamped by the channel.
func Info(message string) Entry {
	return NewEntry(LevelInfo, message, time.Time{})
}

// Error builds an ERROR entry stamped by the channel.
func Error(message string) Entry {
	return NewEntry(LevelError, message, time.Time{})
}

// Time returns the entry timestamp, zero when the channel stamps it.
func (e Entry) Time() time.Time {
	return e.at
}

// Level returns the entry level.
func (e Entry) Level() Level {
	return e.level
}

// Message returns the entry message as given.
func (e Entry) Message() string {
	return e.message
}

// lineBreaks folds multi-line messages so every entry is exactly one line.
var lineBreaks = strings.NewReplacer("\r\n", " | ", "\n", " | ", "\r", " | ")

func formatLine(timestamp, message string) string {
	var b strings.Builder

	b.Grow(len(timestamp) + len(message) + 4)
	b.WriteByte('[')
	b.WriteString(timestamp)
	b.WriteString("] ")
	b.WriteString(lineBreaks.Replace(message))
	b.WriteByte('\n')

	return b.String()
}
