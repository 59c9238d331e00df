package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"ledgersim/internal/calendar"
	"ledgersim/internal/core"
	"ledgersim/internal/events"
	"ledgersim/internal/simulation"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
)

func header(w io.Writer, text string) {
	line := strings.Repeat("=", 60)
	green.Fprintf(w, "%s\n%s\n%s\n", line, text, line)
}

func printRunSummary(w io.Writer, res *simulation.Result, currency string) {
	header(w, fmt.Sprintf("Run %s", res.RunID))
	for _, m := range res.Months {
		fmt.Fprintf(w, "%s  payments %3d  %14s   receipts %3d  %14s\n",
			m.YearMonth,
			len(m.Payments), core.FormatAmount(m.PaymentTotal(), currency),
			len(m.Receipts), core.FormatAmount(m.ReceiptTotal(), currency))
	}
	if res.Dropped > 0 {
		yellow.Fprintf(w, "%d events fell outside the slice\n", res.Dropped)
	}
	fmt.Fprintln(w)
	yellow.Fprintln(w, "Ending balances")
	for _, b := range res.Balances {
		c := green
		if b.Balance.IsNegative() {
			c = red
		}
		c.Fprintf(w, "  %-30s %16s\n", b.Name, core.FormatAmount(b.Balance, currency))
	}
}

func printBins(w io.Writer, slice calendar.Slice, bins *events.Bins, currency string) {
	header(w, fmt.Sprintf("Events for %s", slice))
	for _, ym := range slice.Months() {
		bucket := bins.Month(ym)
		yellow.Fprintf(w, "%s (%d)\n", ym, bucket.Len())
		bucket.Each(func(id int, e events.Event) {
			sign := "-"
			if e.EventType == core.EventReceipt {
				sign = "+"
			}
			fmt.Fprintf(w, "  %3d  %s  %s%-12s  %-24s %-16s %s\n",
				id, core.FormatTimestamp(e.CompletedAt), sign,
				core.FormatAmount(e.Amount, currency), e.Name, e.AccountName, markerLabel(e.Marker))
		})
	}
	if n := bins.Dropped(); n > 0 {
		yellow.Fprintf(w, "%d events fell outside the slice\n", n)
	}
}

func markerLabel(m core.Marker) string {
	if m == core.MarkerNone {
		return ""
	}
	return m.String()
}
