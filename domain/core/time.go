package core

import "time"

// Timestamp is a timezone-aware point in time.
type Timestamp time.Time

func NewTimestamp(t time.Time) Timestamp { return Timestamp(t) }
func Now() Timestamp                     { return Timestamp(time.Now()) }

func (t Timestamp) Time() time.Time   { return time.Time(t) }
func (t Timestamp) IsZero() bool      { return time.Time(t).IsZero() }
func (t Timestamp) Before(u Timestamp) bool { return time.Time(t).Before(time.Time(u)) }
func (t Timestamp) After(u Timestamp) bool  { return time.Time(t).After(time.Time(u)) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(t).MarshalJSON()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tm time.Time
	if err := tm.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Timestamp(tm)
	return nil
}

func (t Timestamp) String() string { return t.Time().Format(time.RFC3339) }
