package service

import (
	"time"

	"github.com/Ric377/FamilyMoney/internal/calculator"
	"github.com/Ric377/FamilyMoney/internal/models"
	"github.com/Ric377/FamilyMoney/internal/storage"
	"github.com/Ric377/FamilyMoney/pkg/api"
)

func toAPIGroup(group *models.Group) *api.Group {
	members := make([]*api.Member, len(group.Members))
	for i, m := range group.Members {
		members[i] = &api.Member{Name: m.Name, Email: m.Email}
	}
	return &api.Group{
		ID:        group.ID,
		Name:      group.Name,
		Members:   members,
		CreatedAt: group.CreatedAt,
	}
}

// toModelMember normalizes an incoming member. A missing name falls back to
// the local part of the email.
func toModelMember(m *api.Member) models.Member {
	member := models.Member{Name: m.Name, Email: m.Email}
	member.Name = member.DisplayName()
	return member
}

func toAPIPayment(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:        p.ID,
		GroupID:   p.GroupID,
		Amount:    p.Amount,
		Note:      p.Note,
		PaidAt:    p.PaidAt,
		PayerName: p.PayerName,
		CreatedAt: p.CreatedAt,
	}
}

// toBalanceInputs strips payments down to what the calculator needs.
func toBalanceInputs(payments []*models.Payment) []calculator.PaymentForBalance {
	inputs := make([]calculator.PaymentForBalance, len(payments))
	for i, p := range payments {
		inputs[i] = calculator.PaymentForBalance{
			Amount: p.Amount,
			Payer:  p.PayerName,
			PaidAt: time.Unix(p.PaidAt, 0),
		}
	}
	return inputs
}

func toAPIDebts(edges []calculator.DebtEdge) []*api.Debt {
	debts := make([]*api.Debt, len(edges))
	for i, e := range edges {
		debts[i] = &api.Debt{From: e.From, To: e.To, Amount: e.Amount}
	}
	return debts
}

func toAPIMemberBalances(balances []calculator.MemberBalance) []*api.MemberBalance {
	result := make([]*api.MemberBalance, len(balances))
	for i, b := range balances {
		result[i] = &api.MemberBalance{
			MemberName: b.MemberName,
			Paid:       calculator.RoundCurrency(b.Paid),
			Share:      calculator.RoundCurrency(b.Share),
			NetBalance: calculator.RoundCurrency(b.NetBalance),
		}
	}
	return result
}

func toAPIPeriodSummary(p calculator.PeriodSummary) *api.PeriodSummary {
	return &api.PeriodSummary{
		TotalSpent: p.TotalSpent,
		Debts:      toAPIDebts(p.Debts),
		Settled:    p.Settled(),
	}
}

func toAPIMonthlySummaries(months []calculator.MonthlySummary) []*api.MonthlySummary {
	result := make([]*api.MonthlySummary, len(months))
	for i, m := range months {
		result[i] = &api.MonthlySummary{
			Year:    int32(m.Year),
			Month:   int32(m.Month),
			Label:   m.Label,
			Summary: toAPIPeriodSummary(m.PeriodSummary),
		}
	}
	return result
}

// toWindow converts Unix-second bounds to a storage window. Zero stays open.
func toWindow(from, to int64) storage.PaymentWindow {
	var window storage.PaymentWindow
	if from > 0 {
		window.From = time.Unix(from, 0)
	}
	if to > 0 {
		window.To = time.Unix(to, 0)
	}
	return window
}
