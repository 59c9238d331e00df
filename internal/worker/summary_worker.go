// Package worker turns month notifications into spreadsheet rows.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ledgersim/internal/amqp"
	"ledgersim/internal/sheets"
)

// SummaryWorker appends one row per account for every month message.
// A run/month pair is exported at most once per worker process.
type SummaryWorker struct {
	sheets sheets.SummaryWriter

	mu   sync.Mutex
	done map[string]string // run/month -> range reference
}

func NewSummaryWorker(writer sheets.SummaryWriter) *SummaryWorker {
	return &SummaryWorker{
		sheets: writer,
		done:   make(map[string]string),
	}
}

// HandleMonthMessage processes a single month message from AMQP.
func (w *SummaryWorker) HandleMonthMessage(ctx context.Context, msg *amqp.MonthReplayedMessage) error {
	key := msg.RunID + "/" + msg.YearMonth().String()

	w.mu.Lock()
	ref, seen := w.done[key]
	w.mu.Unlock()
	if seen {
		slog.InfoContext(ctx, "Month already exported, skipping",
			"run_id", msg.RunID,
			"year_month", msg.YearMonth().String(),
			"ref", ref)
		return nil
	}

	rows := Rows(msg)
	if len(rows) == 0 {
		slog.InfoContext(ctx, "Month has no account balances, nothing to export",
			"run_id", msg.RunID,
			"year_month", msg.YearMonth().String())
		return nil
	}

	ref, err := w.sheets.AppendMonthSummary(ctx, rows)
	if err != nil {
		return fmt.Errorf("append month summary: %w", err)
	}

	w.mu.Lock()
	w.done[key] = ref
	w.mu.Unlock()

	slog.InfoContext(ctx, "Month exported",
		"run_id", msg.RunID,
		"year_month", msg.YearMonth().String(),
		"rows", len(rows),
		"ref", ref)
	return nil
}

// Rows flattens msg into one row per account balance.
func Rows(msg *amqp.MonthReplayedMessage) []sheets.MonthRow {
	rows := make([]sheets.MonthRow, 0, len(msg.Balances))
	for _, b := range msg.Balances {
		rows = append(rows, sheets.MonthRow{
			RunID:        msg.RunID,
			YearMonth:    msg.YearMonth().String(),
			AccountID:    b.AccountID,
			Account:      b.Name,
			Balance:      b.Balance,
			Payments:     msg.Payments,
			Receipts:     msg.Receipts,
			PaymentTotal: msg.PaymentTotal,
			ReceiptTotal: msg.ReceiptTotal,
		})
	}
	return rows
}
