package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearMonth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    YearMonth
		wantErr bool
	}{
		{name: "valid", input: "2023-02", want: NewYearMonth(2023, time.February)},
		{name: "single digit month", input: "2024-1", want: NewYearMonth(2024, time.January)},
		{name: "surrounding spaces", input: " 2023-12 ", want: NewYearMonth(2023, time.December)},
		{name: "month zero", input: "2023-00", wantErr: true},
		{name: "month thirteen", input: "2023-13", wantErr: true},
		{name: "missing month", input: "2023", wantErr: true},
		{name: "letters", input: "abcd-ef", wantErr: true},
		{name: "short year", input: "23-02", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYearMonth(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidYearMonth)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYearMonth_Ordering(t *testing.T) {
	feb22 := NewYearMonth(2022, time.February)
	feb23 := NewYearMonth(2023, time.February)
	mar23 := NewYearMonth(2023, time.March)

	assert.True(t, feb22.Before(feb23))
	assert.True(t, feb23.Before(mar23))
	assert.True(t, feb22.Before(mar23))
	assert.True(t, mar23.After(feb22))
	assert.Equal(t, 0, feb23.Compare(NewYearMonth(2023, time.February)))
	assert.False(t, feb23.Before(feb23))
}

func TestYearMonth_Next(t *testing.T) {
	assert.Equal(t, NewYearMonth(2023, time.March), NewYearMonth(2023, time.February).Next())
	assert.Equal(t, NewYearMonth(2024, time.January), NewYearMonth(2023, time.December).Next())
}

func TestYearMonth_StartOfNextMonth(t *testing.T) {
	got := NewYearMonth(2023, time.December).StartOfNextMonth()
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), got)

	got = NewYearMonth(2023, time.June).StartOfNextMonth()
	assert.Equal(t, time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2023, time.January, 31},
		{2023, time.February, 28},
		{2024, time.February, 29},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2023, time.April, 30},
		{2023, time.June, 30},
		{2023, time.September, 30},
		{2023, time.November, 30},
		{2023, time.December, 31},
	}

	for _, tt := range tests {
		t.Run(NewYearMonth(tt.year, tt.month).String(), func(t *testing.T) {
			assert.Equal(t, tt.want, DaysIn(tt.year, tt.month))
		})
	}
}

func TestAddMonths(t *testing.T) {
	noon := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{name: "plain", from: noon(2023, 2, 10), n: 3, want: noon(2023, 5, 10)},
		{name: "across year", from: noon(2023, 11, 10), n: 3, want: noon(2024, 2, 10)},
		{name: "clamp to february", from: noon(2023, 1, 31), n: 1, want: noon(2023, 2, 28)},
		{name: "clamp to leap february", from: noon(2024, 1, 31), n: 1, want: noon(2024, 2, 29)},
		{name: "clamp to thirty", from: noon(2023, 3, 31), n: 1, want: noon(2023, 4, 30)},
		{name: "years", from: noon(2023, 2, 10), n: 36, want: noon(2026, 2, 10)},
		{name: "leap day plus a year", from: noon(2024, 2, 29), n: 12, want: noon(2025, 2, 28)},
		{name: "backwards", from: noon(2023, 1, 15), n: -2, want: noon(2022, 11, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.from, tt.n))
		})
	}
}
