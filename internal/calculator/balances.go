package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentForBalance represents a payment with the minimal information needed for balance calculations.
type PaymentForBalance struct {
	Amount decimal.Decimal
	Payer  string // Display name of the member who paid
	PaidAt time.Time
}

// Balances maps a member name to its net position.
// Positive = owed money, Negative = owes money.
type Balances map[string]decimal.Decimal

// Total returns the sum of all balances. It is zero up to share rounding.
func (b Balances) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range b {
		total = total.Add(v)
	}
	return total
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberName string
	Paid       decimal.Decimal // Total amount paid by this member
	Share      decimal.Decimal // Equal share every member is expected to pay
	NetBalance decimal.Decimal // Paid - Share
}

// Options tunes the calculation. The zero value uses the defaults.
type Options struct {
	// ShareScale is the number of decimal places the per-person share is rounded to.
	// Zero selects DefaultShareScale; use CurrencyScale for the legacy cent-rounded share.
	ShareScale int32
}

func (o Options) shareScale() int32 {
	if o.ShareScale <= 0 {
		return DefaultShareScale
	}
	return o.ShareScale
}

// ComputeBalances computes each member's net balance assuming every payment is
// split equally among all members.
//
// Algorithm:
// - totalSpent = sum of all payment amounts
// - share = totalSpent / len(members), rounded half-up at the share scale
// - paid = sum of amounts whose payer matches the member name
// - balance = paid - share
//
// Payments by someone outside members count towards totalSpent only.
func ComputeBalances(payments []PaymentForBalance, members []string) Balances {
	return ComputeBalancesWithOptions(payments, members, Options{})
}

// ComputeBalancesWithOptions is ComputeBalances with an explicit share policy.
func ComputeBalancesWithOptions(payments []PaymentForBalance, members []string, opts Options) Balances {
	balances := make(Balances, len(members))
	if len(members) == 0 {
		return balances
	}

	share := shareFor(payments, len(members), opts)
	paid := paidByMember(payments)
	for _, name := range members {
		// Duplicate names collapse into one entry and share the spending.
		balances[name] = paid[name].Sub(share)
	}
	return balances
}

// MemberBalances returns per-member paid/share/net figures sorted by member name.
func MemberBalances(payments []PaymentForBalance, members []string, opts Options) []MemberBalance {
	if len(members) == 0 {
		return nil
	}

	share := shareFor(payments, len(members), opts)
	paid := paidByMember(payments)

	seen := make(map[string]bool, len(members))
	result := make([]MemberBalance, 0, len(members))
	for _, name := range members {
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, MemberBalance{
			MemberName: name,
			Paid:       paid[name],
			Share:      share,
			NetBalance: paid[name].Sub(share),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MemberName < result[j].MemberName })
	return result
}

// TotalSpent returns the exact sum of all payment amounts.
func TotalSpent(payments []PaymentForBalance) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

func shareFor(payments []PaymentForBalance, memberCount int, opts Options) decimal.Decimal {
	return TotalSpent(payments).DivRound(decimal.NewFromInt(int64(memberCount)), opts.shareScale())
}

func paidByMember(payments []PaymentForBalance) map[string]decimal.Decimal {
	paid := make(map[string]decimal.Decimal)
	for _, p := range payments {
		paid[p.Payer] = paid[p.Payer].Add(p.Amount)
	}
	return paid
}
