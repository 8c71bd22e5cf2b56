package result

import (
	"encoding/json"
	"fmt"
)

// Level classifies a diagnostic message.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "Warning"
	case LevelError:
		return "Error"
	default:
		return "Info"
	}
}

// Message is a human readable diagnostic attached to a result.
type Message struct {
	Level Level
	Text  string
}

// String renders the message with its level prefix, e.g. "Warning: ...".
func (m Message) String() string {
	return m.Level.String() + ": " + m.Text
}

// MarshalJSON encodes the message as its rendered string.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Messages accumulates diagnostics in the order they were produced.
type Messages []Message

// Infof appends an info message.
func (ms *Messages) Infof(format string, args ...any) {
	*ms = append(*ms, Message{Level: LevelInfo, Text: fmt.Sprintf(format, args...)})
}

// Warnf appends a warning message.
func (ms *Messages) Warnf(format string, args ...any) {
	*ms = append(*ms, Message{Level: LevelWarning, Text: fmt.Sprintf(format, args...)})
}

// Errorf appends an error message.
func (ms *Messages) Errorf(format string, args ...any) {
	*ms = append(*ms, Message{Level: LevelError, Text: fmt.Sprintf(format, args...)})
}

// HasLevel reports whether any message has the given level.
func (ms Messages) HasLevel(level Level) bool {
	for _, m := range ms {
		if m.Level == level {
			return true
		}
	}
	return false
}
