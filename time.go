package sidemail

import (
	"encoding/json"
	"time"
)

// Time is a timestamp as used by the Sidemail API, e.g. createdAt or scheduledAt.
// Missing values decode to the zero time and the zero time encodes as null.
type Time struct {
	time.Time
}

// NewTime wraps t.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (m *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" || string(data) == `""` {
		m.Time = time.Time{}
		return nil
	}

	return json.Unmarshal(data, &m.Time)
}

// MarshalJSON implements the [json.Marshaler] interface.
func (m Time) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("null"), nil
	}

	return json.Marshal(m.UTC().Format(time.RFC3339Nano))
}
