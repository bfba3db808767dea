package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/Ric377/FamilyMoney/internal/calculator"
	"github.com/Ric377/FamilyMoney/internal/metrics"
	"github.com/Ric377/FamilyMoney/internal/models"
	"github.com/Ric377/FamilyMoney/internal/storage"
	"github.com/Ric377/FamilyMoney/pkg/api"
	"github.com/Ric377/FamilyMoney/pkg/api/apiconnect"
)

var _ apiconnect.DebtServiceHandler = (*DebtService)(nil)

// DebtService implements the Connect DebtService. Debts are never stored;
// every call recomputes them from the current members and payments.
type DebtService struct {
	store   storage.Store
	opts    calculator.SummaryOptions
	metrics *metrics.Collector
}

// NewDebtService creates a new DebtService. opts selects the share precision
// and the time zone of monthly buckets. m may be nil.
func NewDebtService(store storage.Store, opts calculator.SummaryOptions, m *metrics.Collector) *DebtService {
	return &DebtService{store: store, opts: opts, metrics: m}
}

// GetBalances returns per-member balances and the transfers that settle them
// for the payments inside the requested window.
func (s *DebtService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetBalances request received", "group_id", groupID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := checkWindow(req.Msg.From, req.Msg.To); err != nil {
		return nil, err
	}

	memberList, payments, err := s.load(ctx, groupID, toWindow(req.Msg.From, req.Msg.To))
	if err != nil {
		slog.Error("GetBalances failed - could not load data", "group_id", groupID, "error", err)
		return nil, loadError(err)
	}

	inputs := toBalanceInputs(payments)
	members := models.MemberNames(memberList)

	balances := calculator.ComputeBalancesWithOptions(inputs, members, s.opts.Options)
	debts := calculator.SettleDebts(balances)
	s.metrics.RecordSettlement("window", len(debts))

	slog.Info("GetBalances successful",
		"group_id", groupID,
		"payments_count", len(payments),
		"members_count", len(members),
		"debts_count", len(debts),
	)

	return connect.NewResponse(&api.GetBalancesResponse{
		MemberBalances: toAPIMemberBalances(calculator.MemberBalances(inputs, members, s.opts.Options)),
		Debts:          toAPIDebts(debts),
		TotalSpent:     calculator.TotalSpent(inputs),
	}), nil
}

// GetDebtSummary returns the all-time settlement and one settlement per
// calendar month, newest first. A group without members is reported with
// NoMembers set rather than as an error.
func (s *DebtService) GetDebtSummary(ctx context.Context, req *connect.Request[api.GetDebtSummaryRequest]) (*connect.Response[api.GetDebtSummaryResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetDebtSummary request received", "group_id", groupID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	members, payments, err := s.load(ctx, groupID, storage.PaymentWindow{})
	if err != nil {
		slog.Error("GetDebtSummary failed - could not load data", "group_id", groupID, "error", err)
		return nil, loadError(err)
	}

	if len(members) == 0 {
		slog.Info("GetDebtSummary: group has no members", "group_id", groupID)
		return connect.NewResponse(&api.GetDebtSummaryResponse{
			NoMembers: true,
			Overall:   &api.PeriodSummary{Debts: []*api.Debt{}, Settled: true},
			Monthly:   []*api.MonthlySummary{},
		}), nil
	}

	summary := calculator.Summarize(toBalanceInputs(payments), models.MemberNames(members), s.opts)
	s.metrics.RecordSettlement("overall", len(summary.Overall.Debts))
	for _, month := range summary.Monthly {
		s.metrics.RecordSettlement("monthly", len(month.Debts))
	}

	slog.Info("GetDebtSummary successful",
		"group_id", groupID,
		"payments_count", len(payments),
		"months_count", len(summary.Monthly),
		"debts_count", len(summary.Overall.Debts),
	)

	return connect.NewResponse(&api.GetDebtSummaryResponse{
		Overall: toAPIPeriodSummary(summary.Overall),
		Monthly: toAPIMonthlySummaries(summary.Monthly),
	}), nil
}

// load fetches the current members and the payments of a group concurrently.
// An unknown group fails with an error wrapping storage.ErrNotFound.
func (s *DebtService) load(ctx context.Context, groupID string, window storage.PaymentWindow) ([]models.Member, []*models.Payment, error) {
	var (
		members  []models.Member
		payments []*models.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = s.store.ListGroupMembers(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.store.ListPaymentsByGroup(gctx, groupID, window)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return members, payments, nil
}
