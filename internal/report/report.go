package report

import (
	"sort"
	"time"

	"pos-service/internal/models"
)

// DefaultSeriesDays is how many trailing days the revenue chart shows when no
// explicit date filter is active.
const DefaultSeriesDays = 7

// DayRevenue is one bucket of the daily revenue series.
type DayRevenue struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Total int64  `json:"total"`
}

// Summary holds the headline stats over a (possibly filtered) transaction set.
type Summary struct {
	Revenue int64 `json:"revenue"`
	Count   int   `json:"count"`
	Average int64 `json:"average"`
}

// FilterByDate returns the transactions whose creation date falls within the
// inclusive [start, end] range at calendar-day granularity; time of day is
// ignored. A nil bound is open. Input order is preserved.
func FilterByDate(txs []models.Transaction, start, end *time.Time) []models.Transaction {
	if start == nil && end == nil {
		return txs
	}

	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		day := truncateToDay(tx.CreatedAt)
		if start != nil && day.Before(truncateToDay(*start)) {
			continue
		}
		if end != nil && day.After(truncateToDay(*end)) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// DailySeries groups transactions by calendar day, summing grand totals, and
// returns the buckets in chronological order. A positive limit truncates the
// series to its most recent buckets AFTER aggregation: a day only drops off
// the chart when enough newer days exist, regardless of how the transactions
// feeding it are distributed.
func DailySeries(txs []models.Transaction, limit int) []DayRevenue {
	buckets := make(map[string]int64)
	for _, tx := range txs {
		buckets[tx.CreatedAt.Format("2006-01-02")] += tx.GrandTotal
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	if limit > 0 && len(days) > limit {
		days = days[len(days)-limit:]
	}

	out := make([]DayRevenue, len(days))
	for i, day := range days {
		out[i] = DayRevenue{Day: day, Total: buckets[day]}
	}
	return out
}

// Summarize computes revenue, count and average transaction value. The
// average of an empty set is 0, never a division by zero.
func Summarize(txs []models.Transaction) Summary {
	s := Summary{Count: len(txs)}
	for _, tx := range txs {
		s.Revenue += tx.GrandTotal
	}
	if s.Count > 0 {
		s.Average = s.Revenue / int64(s.Count)
	}
	return s
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
