package calculator

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSummary holds the settlement result for one set of payments.
type PeriodSummary struct {
	TotalSpent decimal.Decimal
	Balances   Balances
	Debts      []DebtEdge
}

// Settled reports whether nobody owes anything in this period.
func (p PeriodSummary) Settled() bool {
	return len(p.Debts) == 0
}

// MonthlySummary is a PeriodSummary for a single calendar month.
type MonthlySummary struct {
	PeriodSummary
	Year  int
	Month time.Month
	Label string // e.g. "July 2025"
}

// Summary is the all-time result plus one entry per calendar month, newest first.
type Summary struct {
	Overall PeriodSummary
	Monthly []MonthlySummary
}

// SummaryOptions configures Summarize.
type SummaryOptions struct {
	Options
	// Location decides which calendar month a payment belongs to. Defaults to UTC.
	Location *time.Location
}

// Summarize runs the engine over all payments and over each calendar month of
// payments. Every period is split among the full members list.
func Summarize(payments []PaymentForBalance, members []string, opts SummaryOptions) Summary {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	summary := Summary{Overall: summarizePeriod(payments, members, opts.Options)}

	type monthKey struct {
		year  int
		month time.Month
	}
	buckets := make(map[monthKey][]PaymentForBalance)
	for _, p := range payments {
		t := p.PaidAt.In(loc)
		key := monthKey{year: t.Year(), month: t.Month()}
		buckets[key] = append(buckets[key], p)
	}

	summary.Monthly = make([]MonthlySummary, 0, len(buckets))
	for key, bucket := range buckets {
		summary.Monthly = append(summary.Monthly, MonthlySummary{
			PeriodSummary: summarizePeriod(bucket, members, opts.Options),
			Year:          key.year,
			Month:         key.month,
			Label:         MonthLabel(key.year, key.month),
		})
	}
	sort.Slice(summary.Monthly, func(i, j int) bool {
		a, b := summary.Monthly[i], summary.Monthly[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Month > b.Month
	})

	return summary
}

// MonthLabel formats a bucket label such as "July 2025".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}

func summarizePeriod(payments []PaymentForBalance, members []string, opts Options) PeriodSummary {
	balances := ComputeBalancesWithOptions(payments, members, opts)
	return PeriodSummary{
		TotalSpent: TotalSpent(payments),
		Balances:   balances,
		Debts:      SettleDebts(balances),
	}
}
