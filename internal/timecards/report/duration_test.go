package report_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcac/timecards-backend/internal/timecards/report"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		hours   int
		minutes int
		want    report.Duration
	}{
		{"already canonical", 2, 30, report.Duration{Hours: 2, Minutes: 30}},
		{"zero", 0, 0, report.Duration{Hours: 0, Minutes: 0}},
		{"exact hour carry", 0, 60, report.Duration{Hours: 1, Minutes: 0}},
		{"minutes overflow", 1, 90, report.Duration{Hours: 2, Minutes: 30}},
		{"large overflow", 1, 135, report.Duration{Hours: 3, Minutes: 15}},
		{"minutes only", 0, 300, report.Duration{Hours: 5, Minutes: 0}},
		{"boundary below carry", 4, 59, report.Duration{Hours: 4, Minutes: 59}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := report.Normalize(tc.hours, tc.minutes)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_PreservesTotalMinutes(t *testing.T) {
	for hours := 0; hours <= 3; hours++ {
		for minutes := 0; minutes <= 200; minutes += 7 {
			got := report.Normalize(hours, minutes)
			assert.GreaterOrEqual(t, got.Minutes, 0)
			assert.Less(t, got.Minutes, 60)
			assert.Equal(t, hours*60+minutes, got.TotalMinutes(),
				"normalize(%d, %d) must not lose minutes", hours, minutes)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first := report.Normalize(1, 135)
	second := report.Normalize(first.Hours, first.Minutes)
	assert.Equal(t, first, second)
}

func TestPairComponents(t *testing.T) {
	t.Run("both null extracts zero", func(t *testing.T) {
		c := report.PairComponents(sql.NullFloat64{}, sql.NullFloat64{})
		assert.Equal(t, report.Components{}, c)
	})

	t.Run("valid values pass through unnormalized", func(t *testing.T) {
		c := report.PairComponents(
			sql.NullFloat64{Float64: 2, Valid: true},
			sql.NullFloat64{Float64: 75, Valid: true},
		)
		assert.Equal(t, report.Components{Hours: 2, Minutes: 75}, c)
	})

	t.Run("null minutes only", func(t *testing.T) {
		c := report.PairComponents(sql.NullFloat64{Float64: 3, Valid: true}, sql.NullFloat64{})
		assert.Equal(t, report.Components{Hours: 3, Minutes: 0}, c)
	})
}

func TestStructuredDuration_Scan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want report.Components
	}{
		{"nil scans to zero", nil, report.Components{}},
		{"object with both fields", []byte(`{"hours": 2, "minutes": 75}`), report.Components{Hours: 2, Minutes: 75}},
		{"missing minutes", []byte(`{"hours": 4}`), report.Components{Hours: 4}},
		{"string-typed numbers", []byte(`{"hours": "1", "minutes": "30"}`), report.Components{Hours: 1, Minutes: 30}},
		{"non-numeric fields coerce to zero", []byte(`{"hours": "n/a", "minutes": null}`), report.Components{}},
		{"malformed json coerces to zero", []byte(`not json`), report.Components{}},
		{"empty object", []byte(`{}`), report.Components{}},
		{"string source", `{"hours": 7, "minutes": 5}`, report.Components{Hours: 7, Minutes: 5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s report.StructuredDuration
			err := s.Scan(tc.src)
			require.NoError(t, err, "scanning never fails")
			assert.Equal(t, tc.want, s.Components())
		})
	}
}

func TestStructuredDuration_Value(t *testing.T) {
	s := report.StructuredDuration{Hours: 6, Minutes: 45}
	v, err := s.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"hours": 6, "minutes": 45}`, string(v.([]byte)))
}

func TestComponents_Add(t *testing.T) {
	a := report.Components{Hours: 1, Minutes: 90}
	b := report.Components{Hours: 0, Minutes: 45}
	sum := a.Add(b)

	// Raw sums stay raw; no carry until the final normalize.
	assert.Equal(t, report.Components{Hours: 1, Minutes: 135}, sum)
	assert.Equal(t, report.Duration{Hours: 3, Minutes: 15}, sum.Normalize())
}
