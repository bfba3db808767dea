package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/Ric377/FamilyMoney/internal/calculator"
	"github.com/Ric377/FamilyMoney/internal/metrics"
	"github.com/Ric377/FamilyMoney/internal/models"
	"github.com/Ric377/FamilyMoney/internal/storage"
	"github.com/Ric377/FamilyMoney/pkg/api"
	"github.com/Ric377/FamilyMoney/pkg/api/apiconnect"
)

var _ apiconnect.PaymentServiceHandler = (*PaymentService)(nil)

// PaymentService implements the Connect PaymentService. It is the payments
// source for the debt calculation.
type PaymentService struct {
	store   storage.Store
	metrics *metrics.Collector
}

// NewPaymentService creates a new PaymentService. m may be nil.
func NewPaymentService(store storage.Store, m *metrics.Collector) *PaymentService {
	return &PaymentService{store: store, metrics: m}
}

// AddPayment records a payment made by a current member of the group.
func (s *PaymentService) AddPayment(ctx context.Context, req *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error) {
	slog.Info("AddPayment request received",
		"group_id", req.Msg.GroupID,
		"payer", req.Msg.PayerName,
		"amount", req.Msg.Amount.String(),
	)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("AddPayment failed - could not get group", "group_id", req.Msg.GroupID, "error", err)
		return nil, storageError(err)
	}
	if !group.HasMember(req.Msg.PayerName) {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("payer %q is not a member of group %s", req.Msg.PayerName, group.ID))
	}

	paidAt := req.Msg.PaidAt
	if paidAt == 0 {
		paidAt = time.Now().Unix()
	}

	payment := &models.Payment{
		GroupID:   group.ID,
		Amount:    req.Msg.Amount,
		Note:      req.Msg.Note,
		PaidAt:    paidAt,
		PayerName: req.Msg.PayerName,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("AddPayment failed", "group_id", group.ID, "error", err)
		return nil, storageError(err)
	}
	s.metrics.RecordPayments(1)

	slog.Info("Payment recorded", "payment_id", payment.ID, "group_id", group.ID)

	return connect.NewResponse(&api.AddPaymentResponse{Payment: toAPIPayment(payment)}), nil
}

// GetPayment retrieves one payment of a group.
func (s *PaymentService) GetPayment(ctx context.Context, req *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error) {
	slog.Info("GetPayment request received", "group_id", req.Msg.GroupID, "payment_id", req.Msg.PaymentID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	payment, err := s.store.GetPayment(ctx, req.Msg.PaymentID)
	if err != nil {
		slog.Error("GetPayment failed", "payment_id", req.Msg.PaymentID, "error", err)
		return nil, storageError(err)
	}
	if payment.GroupID != req.Msg.GroupID {
		return nil, connect.NewError(connect.CodeNotFound,
			fmt.Errorf("payment %s: %w", req.Msg.PaymentID, storage.ErrNotFound))
	}

	return connect.NewResponse(&api.GetPaymentResponse{Payment: toAPIPayment(payment)}), nil
}

// ListPayments returns the payments of a group in a time window, newest first.
func (s *PaymentService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	slog.Info("ListPayments request received", "group_id", req.Msg.GroupID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}
	if err := checkWindow(req.Msg.From, req.Msg.To); err != nil {
		return nil, err
	}

	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("ListPayments failed - could not get group", "group_id", req.Msg.GroupID, "error", err)
		return nil, storageError(err)
	}

	payments, err := s.store.ListPaymentsByGroup(ctx, req.Msg.GroupID, toWindow(req.Msg.From, req.Msg.To))
	if err != nil {
		slog.Error("ListPayments failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storageError(err)
	}

	apiPayments := make([]*api.Payment, len(payments))
	for i, p := range payments {
		apiPayments[i] = toAPIPayment(p)
	}

	slog.Info("ListPayments successful", "group_id", req.Msg.GroupID, "count", len(payments))

	return connect.NewResponse(&api.ListPaymentsResponse{
		Payments:   apiPayments,
		TotalSpent: calculator.TotalSpent(toBalanceInputs(payments)),
	}), nil
}

// DeletePayment removes one payment.
func (s *PaymentService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	slog.Info("DeletePayment request received", "group_id", req.Msg.GroupID, "payment_id", req.Msg.PaymentID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.store.DeletePayment(ctx, req.Msg.GroupID, req.Msg.PaymentID); err != nil {
		slog.Error("DeletePayment failed", "payment_id", req.Msg.PaymentID, "error", err)
		return nil, storageError(err)
	}
	s.metrics.RecordDeletedPayments(1)

	slog.Info("Payment deleted", "payment_id", req.Msg.PaymentID)

	return connect.NewResponse(&api.DeletePaymentResponse{}), nil
}

// DeletePayments removes several payments at once. Either all of them are
// deleted or, if any ID is unknown, none.
func (s *PaymentService) DeletePayments(ctx context.Context, req *connect.Request[api.DeletePaymentsRequest]) (*connect.Response[api.DeletePaymentsResponse], error) {
	slog.Info("DeletePayments request received", "group_id", req.Msg.GroupID, "count", len(req.Msg.PaymentIDs))

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if err := s.store.DeletePayments(ctx, req.Msg.GroupID, req.Msg.PaymentIDs); err != nil {
		slog.Error("DeletePayments failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, storageError(err)
	}
	s.metrics.RecordDeletedPayments(len(req.Msg.PaymentIDs))

	slog.Info("Payments deleted", "group_id", req.Msg.GroupID, "count", len(req.Msg.PaymentIDs))

	return connect.NewResponse(&api.DeletePaymentsResponse{Deleted: int32(len(req.Msg.PaymentIDs))}), nil
}

// checkWindow rejects a window whose upper bound is not after its lower bound.
func checkWindow(from, to int64) error {
	if from > 0 && to > 0 && to <= from {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("to (%d) must be after from (%d)", to, from))
	}
	return nil
}
