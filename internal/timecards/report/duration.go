// Package report implements the timecard reporting core: duration
// extraction and normalization, period bucketing, and the aggregation
// rules that fold per-day timecard rows into period summaries.
package report

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// Duration is a canonical hour/minute pair with 0 <= Minutes < 60.
// Hours*60+Minutes always equals the total minutes of the source value.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// TotalMinutes returns the duration as a flat minute count.
func (d Duration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// IsZero reports whether the duration is zero.
func (d Duration) IsZero() bool {
	return d.Hours == 0 && d.Minutes == 0
}

// String formats the duration as HH:MM.
func (d Duration) String() string {
	return fmt.Sprintf("%02d:%02d", d.Hours, d.Minutes)
}

// Components is a raw hour/minute pair before normalization. Minutes may
// be 60 or more when values have been summed across rows.
type Components struct {
	Hours   int
	Minutes int
}

// Add returns the componentwise sum. Summation happens on raw components;
// the caller normalizes once at the end, never per addend.
func (c Components) Add(other Components) Components {
	return Components{
		Hours:   c.Hours + other.Hours,
		Minutes: c.Minutes + other.Minutes,
	}
}

// TotalMinutes returns the raw pair as a flat minute count.
func (c Components) TotalMinutes() int {
	return c.Hours*60 + c.Minutes
}

// Normalize converts a raw hour/minute pair into a canonical Duration,
// carrying whole hours out of the minute component. Minutes must be
// non-negative; extractors never produce negative values.
func Normalize(hours, minutes int) Duration {
	return Duration{
		Hours:   hours + minutes/60,
		Minutes: minutes % 60,
	}
}

// Normalize converts raw components into a canonical Duration.
func (c Components) Normalize() Duration {
	return Normalize(c.Hours, c.Minutes)
}

// PairComponents extracts raw components from the decomposed-numeric shape:
// two separately summed scalar columns, either of which may be NULL.
// Fractional parts from SUM() casts are discarded; missing values are zero.
func PairComponents(hours, minutes sql.NullFloat64) Components {
	var c Components
	if hours.Valid {
		c.Hours = int(hours.Float64)
	}
	if minutes.Valid {
		c.Minutes = int(minutes.Float64)
	}
	return c
}

// StructuredDuration is the structured storage shape of a duration column:
// a JSONB object with hours and minutes sub-fields. Scanning never fails;
// absent, malformed, or non-numeric values coerce to zero so reports stay
// usable against partially filled timecards.
type StructuredDuration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// Components returns the raw pre-normalization pair.
func (s StructuredDuration) Components() Components {
	return Components{Hours: s.Hours, Minutes: s.Minutes}
}

// Scan implements sql.Scanner for JSONB duration columns.
func (s *StructuredDuration) Scan(src interface{}) error {
	s.Hours, s.Minutes = 0, 0

	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	s.Hours = coerceInt(fields["hours"])
	s.Minutes = coerceInt(fields["minutes"])
	return nil
}

// Value implements driver.Valuer so timecard writes store the structured shape.
func (s StructuredDuration) Value() (driver.Value, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// coerceInt reads a JSON number or numeric string as an integer, zero on
// anything else.
func coerceInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		// Try a quoted numeric string before giving up.
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0
		}
		n = json.Number(str)
	}

	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := strconv.ParseFloat(n.String(), 64); err == nil {
		return int(f)
	}
	return 0
}
