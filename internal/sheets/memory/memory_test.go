package memory

import (
	"context"
	"testing"

	ports "ledgersim/internal/sheets"
)

func TestSinkAppend(t *testing.T) {
	s := New()
	ref, err := s.AppendMonthSummary(context.Background(), []ports.MonthRow{
		{RunID: "r", YearMonth: "2023-06", Account: "a"},
		{RunID: "r", YearMonth: "2023-06", Account: "b"},
	})
	if err != nil || ref != "mem:1-2" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	rows := s.Rows()
	rows[0].Account = "changed"
	if got := s.Rows()[0].Account; got != "a" {
		t.Errorf("Rows() should return a copy, got %q", got)
	}
}

func TestSinkRejectsRowWithoutRun(t *testing.T) {
	s := New()
	if _, err := s.AppendMonthSummary(context.Background(), []ports.MonthRow{{YearMonth: "2023-06"}}); err == nil {
		t.Fatal("expected error for missing run id")
	}
	if len(s.Rows()) != 0 {
		t.Error("rejected rows must not be stored")
	}
}
