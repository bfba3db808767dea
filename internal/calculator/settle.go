package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string          // Person who owes
	To     string          // Person who is owed
	Amount decimal.Decimal // Rounded to CurrencyScale
}

// position is a member's outstanding balance inside one SettleDebts call.
type position struct {
	name    string
	balance decimal.Decimal
}

// SettleDebts turns net balances into a short list of transfers that brings every
// balance to zero.
//
// Algorithm:
//   - Members within Tolerance of zero are settled and skipped
//   - Repeatedly match the largest debtor with the largest creditor (ties by name)
//   - The transfer is the smaller of the two magnitudes, so at least one side settles
//   - Transfers of Tolerance or less are applied but not emitted
//
// Edges are returned in the order they were produced. balances is not modified.
func SettleDebts(balances Balances) []DebtEdge {
	var debtors, creditors []*position
	for name, bal := range balances {
		if IsSettled(bal) {
			continue
		}
		if bal.IsNegative() {
			debtors = append(debtors, &position{name: name, balance: bal})
		} else {
			creditors = append(creditors, &position{name: name, balance: bal})
		}
	}

	var edges []DebtEdge
	for len(debtors) > 0 && len(creditors) > 0 {
		sortByMagnitude(debtors)
		sortByMagnitude(creditors)
		debtor, creditor := debtors[0], creditors[0]

		amount := decimal.Min(debtor.balance.Abs(), creditor.balance)
		if amount.GreaterThan(Tolerance) {
			edges = append(edges, DebtEdge{
				From:   debtor.name,
				To:     creditor.name,
				Amount: RoundCurrency(amount),
			})
		}

		debtor.balance = debtor.balance.Add(amount)
		creditor.balance = creditor.balance.Sub(amount)

		if IsSettled(debtor.balance) {
			debtors = debtors[1:]
		}
		if IsSettled(creditor.balance) {
			creditors = creditors[1:]
		}
	}

	return edges
}

// sortByMagnitude orders positions by outstanding amount, largest first, then by name.
func sortByMagnitude(ps []*position) {
	sort.Slice(ps, func(i, j int) bool {
		if c := ps[i].balance.Abs().Cmp(ps[j].balance.Abs()); c != 0 {
			return c > 0
		}
		return ps[i].name < ps[j].name
	})
}
