package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/Ric377/FamilyMoney/internal/calculator"
	"github.com/Ric377/FamilyMoney/internal/metrics"
	"github.com/Ric377/FamilyMoney/internal/models"
	"github.com/Ric377/FamilyMoney/internal/storage"
	"github.com/Ric377/FamilyMoney/internal/storage/sqlite"
	"github.com/Ric377/FamilyMoney/pkg/api"
	"github.com/Ric377/FamilyMoney/pkg/api/apiconnect"
)

// testClients holds a client for every service of one test server.
type testClients struct {
	groups   apiconnect.GroupServiceClient
	payments apiconnect.PaymentServiceClient
	debts    apiconnect.DebtServiceClient
	metrics  *metrics.Collector
}

func newTestSQLiteStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "familymoney-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// setupTestServer serves all services over the given store.
func setupTestServer(t *testing.T, store storage.Store) testClients {
	t.Helper()

	collector := metrics.NewCollector()
	opts := calculator.SummaryOptions{Location: time.UTC}

	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(NewGroupService(store))
	paymentPath, paymentHandler := apiconnect.NewPaymentServiceHandler(NewPaymentService(store, collector))
	debtPath, debtHandler := apiconnect.NewDebtServiceHandler(NewDebtService(store, opts, collector))

	mux := http.NewServeMux()
	mux.Handle(groupPath, groupHandler)
	mux.Handle(paymentPath, paymentHandler)
	mux.Handle(debtPath, debtHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return testClients{
		groups:   apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		payments: apiconnect.NewPaymentServiceClient(http.DefaultClient, server.URL),
		debts:    apiconnect.NewDebtServiceClient(http.DefaultClient, server.URL),
		metrics:  collector,
	}
}

func setupSQLiteTestServer(t *testing.T) testClients {
	t.Helper()
	return setupTestServer(t, newTestSQLiteStore(t))
}

// createGroup creates a group whose members are named after the given names.
func createGroup(t *testing.T, c testClients, names ...string) *api.Group {
	t.Helper()

	members := make([]*api.Member, len(names))
	for i, name := range names {
		members[i] = &api.Member{Name: name, Email: name + "@example.com"}
	}
	resp, err := c.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Home",
		Members: members,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

func addPayment(t *testing.T, c testClients, groupID, payer, amount string, paidAt time.Time) *api.Payment {
	t.Helper()

	resp, err := c.payments.AddPayment(context.Background(), connect.NewRequest(&api.AddPaymentRequest{
		GroupID:   groupID,
		Amount:    dec(amount),
		PaidAt:    paidAt.Unix(),
		PayerName: payer,
	}))
	if err != nil {
		t.Fatalf("AddPayment(%s, %s) failed: %v", payer, amount, err)
	}
	return resp.Msg.Payment
}

// expectCode fails the test unless err is a connect error with the given code.
func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%s)", want, connectErr.Code(), connectErr.Message())
	}
}

// failingStore fails every payment listing, as an unreachable database would.
type failingStore struct {
	storage.Store
}

func (failingStore) ListPaymentsByGroup(context.Context, string, storage.PaymentWindow) ([]*models.Payment, error) {
	return nil, errors.New("database is locked")
}
