package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNextDate(t *testing.T) {
	from := time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		cadence Cadence
		want    time.Time
	}{
		{Every(5, Days), date(2023, 2, 15)},
		{Every(2, Weeks), date(2023, 2, 24)},
		{Every(3, Months), date(2023, 5, 10)},
		{Every(3, Years), date(2026, 2, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.cadence.String(), func(t *testing.T) {
			got, err := NextDate(from, tt.cadence)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NextDate(from, Every(0, Days))
	assert.ErrorIs(t, err, ErrInvalidInterval)
	_, err = NextDate(from, Every(1, "hours"))
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestCadence_JSON(t *testing.T) {
	var c Cadence
	require.NoError(t, json.Unmarshal([]byte(`{"Weeks": 2}`), &c))
	assert.Equal(t, Every(2, Weeks), c)

	b, err := json.Marshal(Every(3, Months))
	require.NoError(t, err)
	assert.JSONEq(t, `{"Months": 3}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"Weeks": 2, "Days": 1}`), &c))
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"Hours": 2}`), &c), ErrUnknownUnit)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"Days": -1}`), &c), ErrInvalidInterval)
}

func TestCadence_YAML(t *testing.T) {
	var doc struct {
		Every Cadence `yaml:"every"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("every:\n  years: 1\n"), &doc))
	assert.Equal(t, Every(1, Years), doc.Every)
}
