package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"ledgersim/internal/calendar"
	"ledgersim/internal/ledger"
)

var ErrInvalidMessage = errors.New("invalid month message")

// AccountBalance is the ending balance of one account after a month.
type AccountBalance struct {
	AccountID int             `json:"account_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// MonthReplayedMessage announces that a month of a run has been replayed.
// Amounts travel as decimal strings.
type MonthReplayedMessage struct {
	RunID        string           `json:"run_id"`
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	Payments     int              `json:"payments"`
	Receipts     int              `json:"receipts"`
	PaymentTotal decimal.Decimal  `json:"payment_total"`
	ReceiptTotal decimal.Decimal  `json:"receipt_total"`
	Balances     []AccountBalance `json:"balances"`
	Timestamp    time.Time        `json:"timestamp"`
}

// NewMonthReplayedMessage summarises report for run runID.
func NewMonthReplayedMessage(runID string, report *ledger.MonthReport) *MonthReplayedMessage {
	msg := &MonthReplayedMessage{
		RunID:        runID,
		Year:         report.YearMonth.Year,
		Month:        int(report.YearMonth.Month),
		Payments:     len(report.Payments),
		Receipts:     len(report.Receipts),
		PaymentTotal: report.PaymentTotal(),
		ReceiptTotal: report.ReceiptTotal(),
		Balances:     make([]AccountBalance, 0, len(report.AccountBalances)),
		Timestamp:    time.Now().UTC(),
	}
	for _, b := range report.AccountBalances {
		msg.Balances = append(msg.Balances, AccountBalance{AccountID: b.AccountID, Name: b.Name, Balance: b.Balance})
	}
	return msg
}

// YearMonth is the month the message refers to.
func (m *MonthReplayedMessage) YearMonth() calendar.YearMonth {
	return calendar.NewYearMonth(m.Year, time.Month(m.Month))
}

func (m *MonthReplayedMessage) Validate() error {
	if m.RunID == "" {
		return fmt.Errorf("%w: missing run id", ErrInvalidMessage)
	}
	if m.Month < 1 || m.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidMessage, m.Month)
	}
	return nil
}

// ToJSON converts the message to JSON bytes
func (m *MonthReplayedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MonthReplayedMessageFromJSON decodes and validates a message.
func MonthReplayedMessageFromJSON(data []byte) (*MonthReplayedMessage, error) {
	var msg MonthReplayedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
