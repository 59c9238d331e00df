package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"ledgersim/internal/core"
)

// Base names of the event sources under the events root.
const (
	RecurringSource = "reccurring"
	OneOffSource    = "one_off"
)

var sourceExts = []string{".json", ".yaml", ".yml"}

// ErrSourceNotFound is returned when no file exists for a source name.
var ErrSourceNotFound = errors.New("event source not found")

// ResolveSource finds dir/base with the first supported extension present.
func ResolveSource(dir, base string) (string, error) {
	for _, ext := range sourceExts {
		p := filepath.Join(dir, base+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSourceNotFound, filepath.Join(dir, base+sourceExts[0]))
}

// amountField accepts both numbers and strings.
type amountField struct {
	decimal.Decimal
}

func (a *amountField) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	d, err := core.ParseAmount(s)
	if err != nil {
		return fmt.Errorf("amount %s: %w", string(b), err)
	}
	a.Decimal = d
	return nil
}

func (a *amountField) UnmarshalYAML(node *yaml.Node) error {
	d, err := core.ParseAmount(node.Value)
	if err != nil {
		return fmt.Errorf("amount %q at line %d: %w", node.Value, node.Line, err)
	}
	a.Decimal = d
	return nil
}

type recurringDoc struct {
	EventType   string      `json:"event_type" yaml:"event_type"`
	Name        string      `json:"name" yaml:"name"`
	AccountName string      `json:"account_name" yaml:"account_name"`
	Amount      amountField `json:"amount" yaml:"amount"`
	Start       string      `json:"start" yaml:"start"`
	End         string      `json:"end" yaml:"end"`
	Recurrence  Cadence     `json:"recurrence" yaml:"recurrence"`
}

type oneOffDoc struct {
	EventType   string      `json:"event_type" yaml:"event_type"`
	Name        string      `json:"name" yaml:"name"`
	AccountName string      `json:"account_name" yaml:"account_name"`
	Amount      amountField `json:"amount" yaml:"amount"`
	CompletedAt string      `json:"completed_at" yaml:"completed_at"`
}

// normalizeName trims and NFC-normalizes names so that visually identical
// names resolve to the same entity.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func (d recurringDoc) toRecurring() (Recurring, error) {
	typ, err := core.ParseEventType(d.EventType)
	if err != nil {
		return Recurring{}, err
	}
	start, err := core.ParseTimestamp(d.Start)
	if err != nil {
		return Recurring{}, fmt.Errorf("start: %w", err)
	}
	end, err := core.ParseTimestamp(d.End)
	if err != nil {
		return Recurring{}, fmt.Errorf("end: %w", err)
	}
	r := Recurring{
		EventType:   typ,
		Name:        normalizeName(d.Name),
		AccountName: normalizeName(d.AccountName),
		Amount:      d.Amount.Decimal,
		Start:       start,
		End:         end,
		Cadence:     d.Recurrence,
	}
	return r, r.Validate()
}

func (d oneOffDoc) toEvent() (Event, error) {
	typ, err := core.ParseEventType(d.EventType)
	if err != nil {
		return Event{}, err
	}
	at, err := core.ParseTimestamp(d.CompletedAt)
	if err != nil {
		return Event{}, fmt.Errorf("completed_at: %w", err)
	}
	e := Event{
		EventType:   typ,
		Name:        normalizeName(d.Name),
		AccountName: normalizeName(d.AccountName),
		Amount:      d.Amount.Decimal,
		CompletedAt: at,
		Marker:      core.MarkerNone,
	}
	return e, e.Validate()
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return nil
}

// LoadRecurring reads a list of recurring events from a JSON or YAML file.
func LoadRecurring(path string) ([]Recurring, error) {
	var docs []recurringDoc
	if err := decodeFile(path, &docs); err != nil {
		return nil, err
	}
	out := make([]Recurring, 0, len(docs))
	for i, d := range docs {
		r, err := d.toRecurring()
		if err != nil {
			return nil, fmt.Errorf("%s: recurring event %d: %w", path, i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// LoadOneOff reads a list of one-off events from a JSON or YAML file.
func LoadOneOff(path string) ([]Event, error) {
	var docs []oneOffDoc
	if err := decodeFile(path, &docs); err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(docs))
	for i, d := range docs {
		e, err := d.toEvent()
		if err != nil {
			return nil, fmt.Errorf("%s: one-off event %d: %w", path, i, err)
		}
		out = append(out, e)
	}
	return out, nil
}
