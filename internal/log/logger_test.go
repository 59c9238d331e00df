package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", want: slog.LevelInfo, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoggerStampsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentLedger, Output: &buf})

	l.WithFields(NewFields().WithRunID("r1").WithError(errors.New("boom"))).
		WarnContext(context.Background(), "Payment 3 already exists.")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "component=ledger")
	assert.Contains(t, out, "run_id=r1")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "level=WARN")
}

func TestWithErrorSkipsNil(t *testing.T) {
	f := NewFields().WithError(nil).WithAccount("piggybank")
	_, ok := f[FieldError]
	assert.False(t, ok)
	assert.Equal(t, "piggybank", f[FieldAccount])
}
