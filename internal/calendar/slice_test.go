package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlice_Validation(t *testing.T) {
	tests := []struct {
		name    string
		start   YearMonth
		end     YearMonth
		wantErr error
	}{
		{
			name:    "end month before start month",
			start:   NewYearMonth(2023, time.February),
			end:     NewYearMonth(2023, time.January),
			wantErr: ErrEndMonthBeforeStart,
		},
		{
			name:    "end year before start year",
			start:   NewYearMonth(2023, time.February),
			end:     NewYearMonth(2022, time.February),
			wantErr: ErrEndYearBeforeStart,
		},
		{
			name:    "end year before start year with later month",
			start:   NewYearMonth(2023, time.February),
			end:     NewYearMonth(2022, time.December),
			wantErr: ErrEndYearBeforeStart,
		},
		{
			name:  "same month",
			start: NewYearMonth(2023, time.February),
			end:   NewYearMonth(2023, time.February),
		},
		{
			name:  "next year earlier month",
			start: NewYearMonth(2023, time.June),
			end:   NewYearMonth(2024, time.March),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSlice(tt.start, tt.end)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrInvalidSlice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.start, s.Start)
			assert.Equal(t, tt.end, s.End)
		})
	}
}

func TestSlice_Months_CyclicOrder(t *testing.T) {
	s, err := NewSlice(NewYearMonth(2023, time.June), NewYearMonth(2024, time.March))
	require.NoError(t, err)

	months := s.Months()
	require.Len(t, months, 10)

	want := []time.Month{
		time.June, time.July, time.August, time.September, time.October,
		time.November, time.December, time.January, time.February, time.March,
	}
	for i, m := range want {
		assert.Equal(t, m, months[i].Month, "index %d", i)
	}
	assert.Equal(t, 2023, months[6].Year)
	assert.Equal(t, 2024, months[7].Year)
}

func TestSlice_Months_SingleMonth(t *testing.T) {
	ym := NewYearMonth(2023, time.December)
	s, err := NewSlice(ym, ym)
	require.NoError(t, err)
	assert.Equal(t, []YearMonth{ym}, s.Months())
}

func TestSlice_Months_LengthProperty(t *testing.T) {
	starts := []YearMonth{
		NewYearMonth(2022, time.January),
		NewYearMonth(2023, time.June),
		NewYearMonth(2023, time.December),
	}
	for _, start := range starts {
		for span := 0; span < 40; span++ {
			end := start
			for i := 0; i < span; i++ {
				end = end.Next()
			}
			s, err := NewSlice(start, end)
			require.NoError(t, err)

			months := s.Months()
			wantLen := (end.Year*12 + int(end.Month)) - (start.Year*12 + int(start.Month)) + 1
			require.Len(t, months, wantLen, "slice %s", s)
			assert.Equal(t, start, months[0])
			assert.Equal(t, end, months[len(months)-1])
			for i := 1; i < len(months); i++ {
				assert.True(t, months[i-1].Before(months[i]), "slice %s not increasing at %d", s, i)
			}
		}
	}
}

func TestSlice_InBounds(t *testing.T) {
	s, err := NewSlice(NewYearMonth(2023, time.February), NewYearMonth(2024, time.June))
	require.NoError(t, err)

	assert.True(t, s.InBounds(NewYearMonth(2023, time.December)))
	assert.True(t, s.InBounds(NewYearMonth(2024, time.June)))
	assert.False(t, s.InBounds(NewYearMonth(2024, time.July)))

	dec, err := NewSlice(NewYearMonth(2023, time.June), NewYearMonth(2023, time.December))
	require.NoError(t, err)
	assert.True(t, dec.InBounds(NewYearMonth(2023, time.December)))
	assert.False(t, dec.InBounds(NewYearMonth(2024, time.January)))
	assert.Len(t, dec.Months(), 7)
}

func TestSlice_Contains(t *testing.T) {
	s, err := NewSlice(NewYearMonth(2023, time.February), NewYearMonth(2023, time.June))
	require.NoError(t, err)

	assert.False(t, s.Contains(NewYearMonth(2023, time.January)))
	assert.True(t, s.Contains(NewYearMonth(2023, time.February)))
	assert.True(t, s.Contains(NewYearMonth(2023, time.June)))
	assert.False(t, s.Contains(NewYearMonth(2023, time.July)))
}
