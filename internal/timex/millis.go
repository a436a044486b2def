package timex

import (
	"bytes"
	"encoding/json"
	"time"
)

// Millis is a point in time serialized as milliseconds since the Unix epoch,
// the representation used by backup files and persisted records.
type Millis struct {
	time.Time
}

// NewMillis truncates t to millisecond precision so a value survives a
// JSON round trip unchanged.
func NewMillis(t time.Time) Millis {
	return Millis{Time: time.UnixMilli(t.UnixMilli())}
}

// Now returns the current wall-clock time as Millis.
func Now() Millis {
	return NewMillis(time.Now())
}

// MarshalJSON writes the timestamp as an integer. The zero value is written
// as 0.
func (m Millis) MarshalJSON() ([]byte, error) {
	if m.IsZero() {
		return []byte("0"), nil
	}
	return json.Marshal(m.UnixMilli())
}

// UnmarshalJSON reads an integer (or float) millisecond timestamp. null and 0
// leave the zero time.
func (m *Millis) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		m.Time = time.Time{}
		return nil
	}
	var ms float64
	if err := json.Unmarshal(b, &ms); err != nil {
		return err
	}
	if ms == 0 {
		m.Time = time.Time{}
		return nil
	}
	m.Time = time.UnixMilli(int64(ms))
	return nil
}

// Before reports whether m is earlier than other.
func (m Millis) Before(other Millis) bool {
	return m.Time.Before(other.Time)
}
