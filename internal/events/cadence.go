// Package events expands declarative payment events into dated occurrences
// and bins them by month.
//
// This file implements the cadence steppers. Each unit (days, weeks, months,
// years) has its own Stepper that computes the next occurrence from the
// previous one.
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ledgersim/internal/calendar"
)

const (
	Days   Unit = "days"
	Weeks  Unit = "weeks"
	Months Unit = "months"
	Years  Unit = "years"
)

// Unit is the granularity of a cadence.
type Unit string

var (
	ErrUnknownUnit     = errors.New("unknown cadence unit")
	ErrInvalidInterval = errors.New("cadence interval must be positive")
)

// Cadence is "every N units".
type Cadence struct {
	Unit Unit
	N    int
}

func Every(n int, unit Unit) Cadence {
	return Cadence{Unit: unit, N: n}
}

func (c Cadence) Validate() error {
	if _, err := GetStepper(c.Unit); err != nil {
		return err
	}
	if c.N <= 0 {
		return fmt.Errorf("%w: %d %s", ErrInvalidInterval, c.N, c.Unit)
	}
	return nil
}

func (c Cadence) String() string {
	return fmt.Sprintf("every %d %s", c.N, c.Unit)
}

// Stepper computes the occurrence following last for an interval of n units.
type Stepper interface {
	Next(last time.Time, n int) time.Time
}

// DayStepper adds n days.
type DayStepper struct{}

func (DayStepper) Next(last time.Time, n int) time.Time {
	return last.AddDate(0, 0, n)
}

// WeekStepper adds 7n days.
type WeekStepper struct{}

func (WeekStepper) Next(last time.Time, n int) time.Time {
	return last.AddDate(0, 0, 7*n)
}

// MonthStepper adds n calendar months, clamping the day to the month length.
type MonthStepper struct{}

func (MonthStepper) Next(last time.Time, n int) time.Time {
	return calendar.AddMonths(last, n)
}

// YearStepper adds 12n calendar months.
type YearStepper struct{}

func (YearStepper) Next(last time.Time, n int) time.Time {
	return calendar.AddMonths(last, 12*n)
}

var steppers = map[Unit]Stepper{
	Days:   DayStepper{},
	Weeks:  WeekStepper{},
	Months: MonthStepper{},
	Years:  YearStepper{},
}

// GetStepper returns the stepper for a unit.
func GetStepper(unit Unit) (Stepper, error) {
	s, ok := steppers[unit]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, string(unit))
	}
	return s, nil
}

// NextDate returns the occurrence after last under cadence c.
func NextDate(last time.Time, c Cadence) (time.Time, error) {
	s, err := GetStepper(c.Unit)
	if err != nil {
		return time.Time{}, err
	}
	if c.N <= 0 {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidInterval, c.N)
	}
	return s.Next(last, c.N), nil
}

func parseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := steppers[u]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// cadenceDoc is the single-key form used in event files, e.g. {"Weeks": 2}.
type cadenceDoc map[string]int

func (d cadenceDoc) toCadence() (Cadence, error) {
	if len(d) != 1 {
		return Cadence{}, fmt.Errorf("cadence must have exactly one unit, got %d", len(d))
	}
	for k, n := range d {
		unit, err := parseUnit(k)
		if err != nil {
			return Cadence{}, err
		}
		c := Cadence{Unit: unit, N: n}
		return c, c.Validate()
	}
	return Cadence{}, nil
}

func (c Cadence) doc() cadenceDoc {
	name := string(c.Unit)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return cadenceDoc{name: c.N}
}

func (c Cadence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.doc())
}

func (c *Cadence) UnmarshalJSON(b []byte) error {
	var d cadenceDoc
	if err := json.Unmarshal(b, &d); err != nil {
		return fmt.Errorf("decode cadence: %w", err)
	}
	parsed, err := d.toCadence()
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Cadence) MarshalYAML() (any, error) {
	return c.doc(), nil
}

func (c *Cadence) UnmarshalYAML(node *yaml.Node) error {
	var d cadenceDoc
	if err := node.Decode(&d); err != nil {
		return fmt.Errorf("decode cadence: %w", err)
	}
	parsed, err := d.toCadence()
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
