package analytics

import (
	"time"

	"washpos/backend/internal/domain"
)

// Trend sums every transaction from the start of the current period of
// the given kind onward and compares the result against baselineCents.
// There is no upper clamp: anything stamped after now still counts. A
// zero baseline reports +100% by convention rather than dividing by zero.
func Trend(kind domain.PeriodKind, baselineCents int64, now time.Time, txs []domain.Transaction) domain.TrendSummary {
	start := PeriodStart(kind, now)

	current := int64(0)
	for _, tx := range txs {
		if !tx.Timestamp.Before(start) {
			current += tx.TotalCents
		}
	}

	percent := 100.0
	if baselineCents != 0 {
		percent = float64(current-baselineCents) / float64(baselineCents) * 100
	}

	return domain.TrendSummary{
		Kind:            kind,
		CurrentCents:    current,
		BaselineCents:   baselineCents,
		Percent:         percent,
		ComparisonLabel: comparisonLabel(kind),
	}
}

func comparisonLabel(kind domain.PeriodKind) string {
	switch kind {
	case domain.PeriodWeek:
		return "vs same week last year"
	case domain.PeriodMonth:
		return "vs same month last year"
	default:
		return "vs last year"
	}
}
