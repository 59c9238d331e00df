package events

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledgersim/internal/calendar"
	"ledgersim/internal/core"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustSlice(t *testing.T, sy int, sm time.Month, ey int, em time.Month) calendar.Slice {
	t.Helper()
	s, err := calendar.NewSlice(calendar.NewYearMonth(sy, sm), calendar.NewYearMonth(ey, em))
	require.NoError(t, err)
	return s
}

func dogFood(start, end time.Time, c Cadence) Recurring {
	return Recurring{
		EventType:   core.EventPayment,
		Name:        "dog food",
		AccountName: "piggybank",
		Amount:      decimal.NewFromInt(50),
		Start:       start,
		End:         end,
		Cadence:     c,
	}
}

func TestPaymentDates_Biweekly(t *testing.T) {
	slice := mustSlice(t, 2023, time.February, 2023, time.June)
	r := dogFood(date(2023, 2, 10), date(2023, 6, 16), Every(2, Weeks))

	got, err := r.PaymentDates(slice)
	require.NoError(t, err)

	want := []time.Time{
		date(2023, 2, 10), date(2023, 2, 24), date(2023, 3, 10), date(2023, 3, 24),
		date(2023, 4, 7), date(2023, 4, 21), date(2023, 5, 5), date(2023, 5, 19),
		date(2023, 6, 2), date(2023, 6, 16),
	}
	assert.Equal(t, want, got)
}

func TestPaymentDates_DoesNotIncludeDatesAfterEnd(t *testing.T) {
	slice := mustSlice(t, 2023, time.February, 2023, time.June)
	r := dogFood(date(2023, 2, 10), date(2023, 6, 15), Every(2, Weeks))

	got, err := r.PaymentDates(slice)
	require.NoError(t, err)
	require.Len(t, got, 9)
	assert.Equal(t, date(2023, 2, 10), got[0])
	assert.Equal(t, date(2023, 6, 2), got[8])
}

func TestPaymentDates_SingleDate(t *testing.T) {
	slice := mustSlice(t, 2023, time.February, 2023, time.June)
	for _, c := range []Cadence{Every(1, Days), Every(2, Weeks), Every(1, Months), Every(1, Years)} {
		r := dogFood(date(2023, 3, 1), date(2023, 3, 1), c)
		got, err := r.PaymentDates(slice)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{date(2023, 3, 1)}, got, c.String())
	}
}

func TestPaymentDates_StopsAtSliceEnd(t *testing.T) {
	slice := mustSlice(t, 2023, time.February, 2023, time.March)
	r := dogFood(date(2023, 2, 10), date(2030, 1, 1), Every(1, Weeks))

	got, err := r.PaymentDates(slice)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, date(2023, 3, 31), got[len(got)-1])
	for _, d := range got {
		assert.True(t, d.Before(date(2023, 4, 1)))
	}
}

func TestPaymentDates_Cadences(t *testing.T) {
	tests := []struct {
		name    string
		cadence Cadence
		end     time.Time
		slice   calendar.Slice
		want    []time.Time
	}{
		{
			name:    "every 3 months",
			cadence: Every(3, Months),
			end:     date(2024, 2, 10),
			slice:   mustSlice(t, 2023, time.February, 2024, time.February),
			want: []time.Time{
				date(2023, 2, 10), date(2023, 5, 10), date(2023, 8, 10),
				date(2023, 11, 10), date(2024, 2, 10),
			},
		},
		{
			name:    "every 3 years",
			cadence: Every(3, Years),
			end:     date(2035, 2, 10),
			slice:   mustSlice(t, 2023, time.February, 2035, time.February),
			want: []time.Time{
				date(2023, 2, 10), date(2026, 2, 10), date(2029, 2, 10),
				date(2032, 2, 10), date(2035, 2, 10),
			},
		},
		{
			name:    "every 5 days",
			cadence: Every(5, Days),
			end:     date(2023, 3, 2),
			slice:   mustSlice(t, 2023, time.February, 2023, time.March),
			want: []time.Time{
				date(2023, 2, 10), date(2023, 2, 15), date(2023, 2, 20),
				date(2023, 2, 25), date(2023, 3, 2),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := dogFood(date(2023, 2, 10), tt.end, tt.cadence)
			got, err := r.PaymentDates(tt.slice)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaymentDates_MonthEndClampsWithoutDrift(t *testing.T) {
	slice := mustSlice(t, 2023, time.January, 2023, time.April)
	r := dogFood(date(2023, 1, 31), date(2023, 4, 30), Every(1, Months))

	got, err := r.PaymentDates(slice)
	require.NoError(t, err)
	// each step starts from the previous occurrence, so the clamp carries over
	assert.Equal(t, []time.Time{
		date(2023, 1, 31), date(2023, 2, 28), date(2023, 3, 28), date(2023, 4, 28),
	}, got)
}

func TestToPaymentEvents(t *testing.T) {
	slice := mustSlice(t, 2023, time.February, 2023, time.June)
	r := dogFood(date(2023, 2, 10), date(2023, 6, 16), Every(2, Weeks))

	evs, err := r.ToPaymentEvents(slice)
	require.NoError(t, err)
	require.Len(t, evs, 10)

	for i, e := range evs {
		assert.Equal(t, core.EventPayment, e.EventType)
		assert.Equal(t, "dog food", e.Name)
		assert.Equal(t, "piggybank", e.AccountName)
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(50)))
		assert.Equal(t, 12, e.CompletedAt.Hour(), "event %d", i)
		assert.Equal(t, 0, e.CompletedAt.Minute())
	}
	assert.Equal(t, time.Date(2023, 2, 10, 12, 0, 0, 0, time.UTC), evs[0].CompletedAt)
	assert.Equal(t, time.Date(2023, 6, 16, 12, 0, 0, 0, time.UTC), evs[9].CompletedAt)

	assert.Equal(t, core.MarkerFirst, evs[0].Marker)
	for _, e := range evs[1:9] {
		assert.Equal(t, core.MarkerActive, e.Marker)
	}
	assert.Equal(t, core.MarkerLast, evs[9].Marker)
}

func TestToPaymentEvents_SingleOccurrenceIsLast(t *testing.T) {
	slice := mustSlice(t, 2023, time.February, 2023, time.February)
	r := dogFood(date(2023, 2, 10), date(2023, 2, 10), Every(1, Months))

	evs, err := r.ToPaymentEvents(slice)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, core.MarkerLast, evs[0].Marker)
}

func TestRecurring_Validate(t *testing.T) {
	ok := dogFood(date(2023, 2, 10), date(2023, 6, 16), Every(2, Weeks))
	assert.NoError(t, ok.Validate())

	backwards := dogFood(date(2023, 6, 16), date(2023, 2, 10), Every(2, Weeks))
	assert.ErrorIs(t, backwards.Validate(), ErrEndBeforeStart)

	zero := dogFood(date(2023, 2, 10), date(2023, 6, 16), Every(0, Weeks))
	assert.ErrorIs(t, zero.Validate(), ErrInvalidInterval)

	unknown := dogFood(date(2023, 2, 10), date(2023, 6, 16), Every(1, "fortnights"))
	assert.ErrorIs(t, unknown.Validate(), ErrUnknownUnit)
}
