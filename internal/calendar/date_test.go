package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d)

	for _, bad := range []string{"", "2024-13-01", "2023-02-29", "29/02/2024", "2024-02-29T10:00:00Z"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func TestFromTime_DropsOffsetOnce(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 23:30 local del 9 de marzo ya es 10 de marzo en UTC.
	tm := time.Date(2024, time.March, 9, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-03-09", FromTime(tm).String())
}

func TestAddMonths_ClampsToLastDay(t *testing.T) {
	cases := []struct {
		from   string
		months int
		want   string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", 1, "2024-04-30"},
		{"2024-08-31", 6, "2025-02-28"},
		{"2024-11-15", 2, "2025-01-15"},
		{"2024-05-15", 24, "2026-05-15"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-01-10", -12, "2023-01-10"},
	}
	for _, tc := range cases {
		d, err := Parse(tc.from)
		require.NoError(t, err)
		assert.Equal(t, tc.want, d.AddMonths(tc.months).String(), "%s %+d", tc.from, tc.months)
	}
}

func TestAddDays_CrossesMonthAndYear(t *testing.T) {
	d := New(2024, time.December, 28)
	assert.Equal(t, "2025-01-04", d.AddDays(7).String())
}

func TestNextBusinessDay(t *testing.T) {
	sat := New(2024, time.March, 9)
	sun := New(2024, time.March, 10)
	mon := New(2024, time.March, 11)
	wed := New(2024, time.March, 13)

	assert.Equal(t, mon, NextBusinessDay(sat))
	assert.Equal(t, mon, NextBusinessDay(sun))
	assert.Equal(t, mon, NextBusinessDay(mon))
	assert.Equal(t, wed, NextBusinessDay(wed))
}

func TestMonthsBetween(t *testing.T) {
	birth := New(2024, time.January, 15)

	assert.Equal(t, 0, MonthsBetween(birth, New(2024, time.February, 14)))
	assert.Equal(t, 1, MonthsBetween(birth, New(2024, time.February, 15)))
	assert.Equal(t, 12, MonthsBetween(birth, New(2025, time.January, 20)))
	assert.Equal(t, 0, MonthsBetween(birth, New(2024, time.January, 1)))
	assert.Equal(t, -1, MonthsBetween(birth, New(2023, time.December, 10)))
}

func TestMonthBoundsAndBetween(t *testing.T) {
	first, last := MonthBounds(2024, time.February)
	assert.Equal(t, "2024-02-01", first.String())
	assert.Equal(t, "2024-02-29", last.String())

	assert.True(t, New(2024, time.February, 29).Between(first, last))
	assert.True(t, first.Between(first, last))
	assert.False(t, New(2024, time.March, 1).Between(first, last))
}

func TestJSON(t *testing.T) {
	type wrapper struct {
		Due  Date  `json:"due"`
		Done *Date `json:"done,omitempty"`
	}

	b, err := json.Marshal(wrapper{Due: New(2024, time.January, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-01-05"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2024-01-05","done":"2024-01-08"}`), &w))
	require.NotNil(t, w.Done)
	assert.Equal(t, "2024-01-08", w.Done.String())

	assert.Error(t, json.Unmarshal([]byte(`{"due":"05/01/2024"}`), &w))
}
