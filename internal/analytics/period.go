// Package analytics turns the flat transaction log into calendar-aligned
// period views, trend comparisons, and product revenue rankings.
package analytics

import (
	"fmt"
	"time"

	"washpos/backend/internal/domain"
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// BuildPeriodView buckets transactions into the period selected by kind
// and offset, relative to now. Offset 0 is the period containing now,
// negative offsets page into the past. Both period boundaries are
// inclusive: a transaction stamped exactly at the start or end instant
// belongs to the period.
func BuildPeriodView(kind domain.PeriodKind, offset int, now time.Time, txs []domain.Transaction) (domain.PeriodView, error) {
	view := domain.PeriodView{
		Kind:         kind,
		Offset:       offset,
		CanGoBack:    CanGoBack(kind, offset),
		CanGoForward: CanGoForward(offset),
	}

	switch kind {
	case domain.PeriodWeek:
		start := WeekStart(now).AddDate(0, 0, offset*7)
		end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
		view.Start = start
		view.End = end
		view.Title = fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2"))

		view.Buckets = make([]domain.PeriodBucket, 7)
		for i, label := range weekdayLabels {
			view.Buckets[i].Label = label
		}
		for _, tx := range txs {
			if !inRange(tx.Timestamp, start, end) {
				continue
			}
			view.Buckets[isoWeekdayIndex(tx.Timestamp)].TotalCents += tx.TotalCents
		}

	case domain.PeriodMonth:
		year, month, _ := now.Date()
		start := time.Date(year, month+time.Month(offset), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		view.Start = start
		view.End = end
		view.Title = start.Format("January 2006")

		view.Buckets = []domain.PeriodBucket{
			{Label: "Week 1"}, {Label: "Week 2"}, {Label: "Week 3"}, {Label: "Week 4+"},
		}
		for _, tx := range txs {
			if !inRange(tx.Timestamp, start, end) {
				continue
			}
			view.Buckets[monthWeekIndex(tx.Timestamp.Day())].TotalCents += tx.TotalCents
		}

	case domain.PeriodYear:
		start := time.Date(now.Year()+offset, time.January, 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		view.Start = start
		view.End = end
		view.Title = start.Format("2006")

		view.Buckets = make([]domain.PeriodBucket, 12)
		for i := range view.Buckets {
			view.Buckets[i].Label = time.Month(i + 1).String()[:3]
		}
		for _, tx := range txs {
			if !inRange(tx.Timestamp, start, end) {
				continue
			}
			view.Buckets[int(tx.Timestamp.Month())-1].TotalCents += tx.TotalCents
		}

	default:
		return domain.PeriodView{}, fmt.Errorf("unknown period kind %q", kind)
	}

	for _, bucket := range view.Buckets {
		view.TotalCents += bucket.TotalCents
	}
	return view, nil
}

// WeekStart returns midnight on the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -(weekday - 1))
}

// PeriodStart returns the start instant of the offset-0 period of the
// given kind containing now.
func PeriodStart(kind domain.PeriodKind, now time.Time) time.Time {
	switch kind {
	case domain.PeriodWeek:
		return WeekStart(now)
	case domain.PeriodMonth:
		year, month, _ := now.Date()
		return time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
}

// isoWeekdayIndex maps Monday..Sunday to 0..6.
func isoWeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// monthWeekIndex maps a day of month to its fixed week bucket: days 1-7,
// 8-14, 15-21, and everything from 22 onward.
func monthWeekIndex(day int) int {
	idx := (day - 1) / 7
	if idx > 3 {
		idx = 3
	}
	return idx
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
