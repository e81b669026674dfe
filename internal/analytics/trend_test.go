package analytics

import (
	"testing"
	"time"

	"washpos/backend/internal/domain"
)

func TestTrendZeroBaselineReportsHundredPercent(t *testing.T) {
	summary := Trend(domain.PeriodWeek, 0, refWednesday, []domain.Transaction{tx(refWednesday, 5000)})
	if summary.Percent != 100 {
		t.Fatalf("zero baseline should report 100, got %v", summary.Percent)
	}
}

func TestTrendNoSalesAgainstBaselineIsMinusHundred(t *testing.T) {
	summary := Trend(domain.PeriodWeek, 10000, refWednesday, nil)
	if summary.Percent != -100 {
		t.Fatalf("expected -100, got %v", summary.Percent)
	}
	if summary.CurrentCents != 0 {
		t.Fatalf("expected zero current sales, got %d", summary.CurrentCents)
	}
}

func TestTrendSumsFromPeriodStart(t *testing.T) {
	beforeWeek := time.Date(2024, time.January, 7, 12, 0, 0, 0, time.UTC)
	inWeek := time.Date(2024, time.January, 9, 12, 0, 0, 0, time.UTC)

	summary := Trend(domain.PeriodWeek, 1000, refWednesday, []domain.Transaction{
		tx(beforeWeek, 9999),
		tx(inWeek, 1500),
	})
	if summary.CurrentCents != 1500 {
		t.Fatalf("expected only in-week sales, got %d", summary.CurrentCents)
	}
	if summary.Percent != 50 {
		t.Fatalf("expected +50%%, got %v", summary.Percent)
	}
}

func TestTrendHasNoUpperClamp(t *testing.T) {
	// A timestamp after now still counts; the filter is start-only.
	future := refWednesday.Add(48 * time.Hour)
	summary := Trend(domain.PeriodWeek, 100, refWednesday, []domain.Transaction{tx(future, 400)})
	if summary.CurrentCents != 400 {
		t.Fatalf("expected future-stamped transaction included, got %d", summary.CurrentCents)
	}
	if summary.Percent != 300 {
		t.Fatalf("expected +300%%, got %v", summary.Percent)
	}
}

func TestTrendComparisonLabels(t *testing.T) {
	cases := map[domain.PeriodKind]string{
		domain.PeriodWeek:  "vs same week last year",
		domain.PeriodMonth: "vs same month last year",
		domain.PeriodYear:  "vs last year",
	}
	for kind, want := range cases {
		if got := Trend(kind, 100, refWednesday, nil).ComparisonLabel; got != want {
			t.Fatalf("label for %s = %q, want %q", kind, got, want)
		}
	}
}
