package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Ric377/FamilyMoney/pkg/api"
)

func TestAddPayment(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice", "Bob")
	paidAt := time.Date(2025, time.July, 3, 18, 0, 0, 0, time.UTC)

	resp, err := c.payments.AddPayment(context.Background(), connect.NewRequest(&api.AddPaymentRequest{
		GroupID:   group.ID,
		Amount:    dec("12.50"),
		Note:      "Groceries",
		PaidAt:    paidAt.Unix(),
		PayerName: "Alice",
	}))
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}

	p := resp.Msg.Payment
	if p.ID == "" {
		t.Error("expected non-empty payment ID")
	}
	if !p.Amount.Equal(dec("12.5")) {
		t.Errorf("amount: expected 12.5, got %s", p.Amount)
	}
	if p.PaidAt != paidAt.Unix() {
		t.Errorf("paid_at: expected %d, got %d", paidAt.Unix(), p.PaidAt)
	}
	if p.Note != "Groceries" || p.PayerName != "Alice" {
		t.Errorf("unexpected payment: %+v", p)
	}
	if got := testutil.ToFloat64(c.metrics.PaymentsRecorded); got != 1 {
		t.Errorf("payments recorded metric = %v, want 1", got)
	}
}

func TestAddPayment_DefaultsPaidAtToNow(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice")
	before := time.Now().Unix()

	resp, err := c.payments.AddPayment(context.Background(), connect.NewRequest(&api.AddPaymentRequest{
		GroupID:   group.ID,
		Amount:    dec("5"),
		PayerName: "Alice",
	}))
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if resp.Msg.Payment.PaidAt < before {
		t.Errorf("expected paid_at >= %d, got %d", before, resp.Msg.Payment.PaidAt)
	}
}

func TestAddPayment_Errors(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice", "Bob")

	tests := []struct {
		name string
		req  *api.AddPaymentRequest
		code connect.Code
	}{
		{
			name: "negative amount",
			req:  &api.AddPaymentRequest{GroupID: group.ID, Amount: dec("-1"), PayerName: "Alice"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "missing payer",
			req:  &api.AddPaymentRequest{GroupID: group.ID, Amount: dec("1")},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "note too long",
			req:  &api.AddPaymentRequest{GroupID: group.ID, Amount: dec("1"), PayerName: "Alice", Note: strings.Repeat("n", 501)},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "payer not a member",
			req:  &api.AddPaymentRequest{GroupID: group.ID, Amount: dec("1"), PayerName: "Mallory"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown group",
			req:  &api.AddPaymentRequest{GroupID: "nonexistent-id", Amount: dec("1"), PayerName: "Alice"},
			code: connect.CodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.payments.AddPayment(context.Background(), connect.NewRequest(tt.req))
			expectCode(t, err, tt.code)
		})
	}
}

func TestListPayments(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice", "Bob")

	june := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	july := time.Date(2025, time.July, 10, 12, 0, 0, 0, time.UTC)
	addPayment(t, c, group.ID, "Alice", "10.10", june)
	addPayment(t, c, group.ID, "Bob", "20.20", july)
	addPayment(t, c, group.ID, "Alice", "0.05", july.Add(time.Hour))

	t.Run("all", func(t *testing.T) {
		resp, err := c.payments.ListPayments(context.Background(), connect.NewRequest(&api.ListPaymentsRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("ListPayments failed: %v", err)
		}
		if len(resp.Msg.Payments) != 3 {
			t.Fatalf("expected 3 payments, got %d", len(resp.Msg.Payments))
		}
		if !resp.Msg.TotalSpent.Equal(dec("30.35")) {
			t.Errorf("total spent: expected 30.35, got %s", resp.Msg.TotalSpent)
		}
		if !resp.Msg.Payments[0].Amount.Equal(dec("0.05")) {
			t.Errorf("expected newest payment first, got %s", resp.Msg.Payments[0].Amount)
		}
	})

	t.Run("window", func(t *testing.T) {
		resp, err := c.payments.ListPayments(context.Background(), connect.NewRequest(&api.ListPaymentsRequest{
			GroupID: group.ID,
			From:    time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC).Unix(),
			To:      time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC).Unix(),
		}))
		if err != nil {
			t.Fatalf("ListPayments failed: %v", err)
		}
		if len(resp.Msg.Payments) != 2 {
			t.Fatalf("expected 2 payments, got %d", len(resp.Msg.Payments))
		}
		if !resp.Msg.TotalSpent.Equal(dec("20.25")) {
			t.Errorf("total spent: expected 20.25, got %s", resp.Msg.TotalSpent)
		}
	})

	t.Run("inverted window", func(t *testing.T) {
		_, err := c.payments.ListPayments(context.Background(), connect.NewRequest(&api.ListPaymentsRequest{
			GroupID: group.ID,
			From:    july.Unix(),
			To:      june.Unix(),
		}))
		expectCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := c.payments.ListPayments(context.Background(), connect.NewRequest(&api.ListPaymentsRequest{GroupID: "nonexistent-id"}))
		expectCode(t, err, connect.CodeNotFound)
	})
}

func TestGetPayment(t *testing.T) {
	c := setupSQLiteTestServer(t)
	home := createGroup(t, c, "Alice")
	other := createGroup(t, c, "Bob")
	p := addPayment(t, c, home.ID, "Alice", "42.42", julyAt(4))

	resp, err := c.payments.GetPayment(context.Background(), connect.NewRequest(&api.GetPaymentRequest{
		GroupID:   home.ID,
		PaymentID: p.ID,
	}))
	if err != nil {
		t.Fatalf("GetPayment failed: %v", err)
	}
	if !resp.Msg.Payment.Amount.Equal(dec("42.42")) || resp.Msg.Payment.PayerName != "Alice" {
		t.Errorf("unexpected payment: %+v", resp.Msg.Payment)
	}

	// Payments are only visible through their own group.
	_, err = c.payments.GetPayment(context.Background(), connect.NewRequest(&api.GetPaymentRequest{
		GroupID:   other.ID,
		PaymentID: p.ID,
	}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = c.payments.GetPayment(context.Background(), connect.NewRequest(&api.GetPaymentRequest{
		GroupID:   home.ID,
		PaymentID: "nonexistent-id",
	}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestDeletePayment(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice")
	p := addPayment(t, c, group.ID, "Alice", "3", time.Now())

	_, err := c.payments.DeletePayment(context.Background(), connect.NewRequest(&api.DeletePaymentRequest{
		GroupID:   group.ID,
		PaymentID: p.ID,
	}))
	if err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}

	_, err = c.payments.DeletePayment(context.Background(), connect.NewRequest(&api.DeletePaymentRequest{
		GroupID:   group.ID,
		PaymentID: p.ID,
	}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestDeletePayments(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice", "Bob")
	now := time.Now()
	p1 := addPayment(t, c, group.ID, "Alice", "1", now)
	p2 := addPayment(t, c, group.ID, "Bob", "2", now)
	addPayment(t, c, group.ID, "Bob", "3", now)

	countPayments := func() int {
		t.Helper()
		resp, err := c.payments.ListPayments(context.Background(), connect.NewRequest(&api.ListPaymentsRequest{GroupID: group.ID}))
		if err != nil {
			t.Fatalf("ListPayments failed: %v", err)
		}
		return len(resp.Msg.Payments)
	}

	// An unknown ID rolls back the whole batch.
	_, err := c.payments.DeletePayments(context.Background(), connect.NewRequest(&api.DeletePaymentsRequest{
		GroupID:    group.ID,
		PaymentIDs: []string{p1.ID, "nonexistent-id"},
	}))
	expectCode(t, err, connect.CodeNotFound)
	if n := countPayments(); n != 3 {
		t.Fatalf("expected 3 payments after failed batch, got %d", n)
	}

	resp, err := c.payments.DeletePayments(context.Background(), connect.NewRequest(&api.DeletePaymentsRequest{
		GroupID:    group.ID,
		PaymentIDs: []string{p1.ID, p2.ID},
	}))
	if err != nil {
		t.Fatalf("DeletePayments failed: %v", err)
	}
	if resp.Msg.Deleted != 2 {
		t.Errorf("deleted: expected 2, got %d", resp.Msg.Deleted)
	}
	if n := countPayments(); n != 1 {
		t.Errorf("expected 1 payment left, got %d", n)
	}

	_, err = c.payments.DeletePayments(context.Background(), connect.NewRequest(&api.DeletePaymentsRequest{
		GroupID: group.ID,
	}))
	expectCode(t, err, connect.CodeInvalidArgument)

	if got := testutil.ToFloat64(c.metrics.PaymentsDeleted); got != 2 {
		t.Errorf("payments deleted metric = %v, want 2", got)
	}
}
