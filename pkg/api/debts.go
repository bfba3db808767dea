package api

import "github.com/shopspring/decimal"

// Debt is a proposed transfer that settles part of the balances.
type Debt struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// MemberBalance is one member's position. Positive NetBalance = owed money.
type MemberBalance struct {
	MemberName string          `json:"member_name"`
	Paid       decimal.Decimal `json:"paid"`
	Share      decimal.Decimal `json:"share"`
	NetBalance decimal.Decimal `json:"net_balance"`
}

// GetBalancesRequest computes balances over payments in [From, To). Zero bounds are open.
type GetBalancesRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	From    int64  `json:"from" validate:"gte=0"`
	To      int64  `json:"to" validate:"gte=0"`
}

type GetBalancesResponse struct {
	MemberBalances []*MemberBalance `json:"member_balances"`
	Debts          []*Debt          `json:"debts"`
	TotalSpent     decimal.Decimal  `json:"total_spent"`
}

// PeriodSummary is the settlement for one period.
type PeriodSummary struct {
	TotalSpent decimal.Decimal `json:"total_spent"`
	Debts      []*Debt         `json:"debts"`
	Settled    bool            `json:"settled"`
}

// MonthlySummary is the settlement for one calendar month.
type MonthlySummary struct {
	Year    int32          `json:"year"`
	Month   int32          `json:"month"`
	Label   string         `json:"label"`
	Summary *PeriodSummary `json:"summary"`
}

type GetDebtSummaryRequest struct {
	GroupID string `json:"group_id" validate:"required"`
}

// GetDebtSummaryResponse holds the all-time settlement and one entry per month, newest first.
// NoMembers is set for a group without members; the summaries are then empty.
type GetDebtSummaryResponse struct {
	NoMembers bool              `json:"no_members"`
	Overall   *PeriodSummary    `json:"overall"`
	Monthly   []*MonthlySummary `json:"monthly"`
}
