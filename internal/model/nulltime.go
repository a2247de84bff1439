package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// NullTime is a timestamp that may be absent.
// Absent values sort before every concrete timestamp.
type NullTime struct {
	Time  time.Time
	Valid bool
}

// NewNullTime returns a present NullTime holding t
func NewNullTime(t time.Time) NullTime {
	return NullTime{Time: t, Valid: true}
}

// Compare returns -1, 0 or +1 depending on whether n sorts before, equal to, or after o.
func (n NullTime) Compare(o NullTime) int {
	switch {
	case !n.Valid && !o.Valid:
		return 0
	case !n.Valid:
		return -1
	case !o.Valid:
		return 1
	default:
		return n.Time.Compare(o.Time)
	}
}

// After reports whether n sorts strictly after o
func (n NullTime) After(o NullTime) bool {
	return n.Compare(o) > 0
}

func (n NullTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Time)
}

func (n *NullTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = NullTime{}
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	*n = NewNullTime(t)
	return nil
}
