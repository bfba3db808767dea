package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/Ric377/FamilyMoney/internal/models"
	"github.com/Ric377/FamilyMoney/pkg/api"
)

func julyAt(day int) time.Time {
	return time.Date(2025, time.July, day, 12, 0, 0, 0, time.UTC)
}

func augustAt(day int) time.Time {
	return time.Date(2025, time.August, day, 12, 0, 0, 0, time.UTC)
}

// assertDebts compares debts in order against want, given as (from, to, amount) triples.
func assertDebts(t *testing.T, got []*api.Debt, want [][3]string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected %d debts, got %d: %+v", len(want), len(got), got)
	}
	for i, w := range want {
		d := got[i]
		if d.From != w[0] || d.To != w[1] || !d.Amount.Equal(dec(w[2])) {
			t.Errorf("debt %d: expected %s -> %s %s, got %s -> %s %s",
				i, w[0], w[1], w[2], d.From, d.To, d.Amount)
		}
	}
}

func TestGetDebtSummary(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice", "Bob", "Carol")

	addPayment(t, c, group.ID, "Alice", "90", julyAt(5))
	addPayment(t, c, group.ID, "Bob", "30", augustAt(2))

	resp, err := c.debts.GetDebtSummary(context.Background(), connect.NewRequest(&api.GetDebtSummaryRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("GetDebtSummary failed: %v", err)
	}

	if resp.Msg.NoMembers {
		t.Error("expected NoMembers false")
	}

	// Overall: share 40; Alice +50, Bob -10, Carol -40
	overall := resp.Msg.Overall
	if !overall.TotalSpent.Equal(dec("120")) {
		t.Errorf("overall total: expected 120, got %s", overall.TotalSpent)
	}
	if overall.Settled {
		t.Error("expected overall not settled")
	}
	assertDebts(t, overall.Debts, [][3]string{
		{"Carol", "Alice", "40"},
		{"Bob", "Alice", "10"},
	})

	if len(resp.Msg.Monthly) != 2 {
		t.Fatalf("expected 2 months, got %d", len(resp.Msg.Monthly))
	}

	aug, jul := resp.Msg.Monthly[0], resp.Msg.Monthly[1]
	if aug.Label != "August 2025" || aug.Year != 2025 || aug.Month != 8 {
		t.Errorf("first month: expected August 2025, got %q (%d-%d)", aug.Label, aug.Year, aug.Month)
	}
	if jul.Label != "July 2025" {
		t.Errorf("second month: expected July 2025, got %q", jul.Label)
	}

	// August: share 10; Bob +20, Alice -10, Carol -10
	assertDebts(t, aug.Summary.Debts, [][3]string{
		{"Alice", "Bob", "10"},
		{"Carol", "Bob", "10"},
	})
	// July: share 30; Alice +60, Bob -30, Carol -30
	assertDebts(t, jul.Summary.Debts, [][3]string{
		{"Bob", "Alice", "30"},
		{"Carol", "Alice", "30"},
	})
}

func TestGetDebtSummary_Settled(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice", "Bob")

	addPayment(t, c, group.ID, "Alice", "50", julyAt(1))
	addPayment(t, c, group.ID, "Bob", "50", julyAt(2))

	resp, err := c.debts.GetDebtSummary(context.Background(), connect.NewRequest(&api.GetDebtSummaryRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("GetDebtSummary failed: %v", err)
	}
	if !resp.Msg.Overall.Settled || len(resp.Msg.Overall.Debts) != 0 {
		t.Errorf("expected settled overall, got %+v", resp.Msg.Overall)
	}
}

func TestGetDebtSummary_NoSpending(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice", "Bob")

	resp, err := c.debts.GetDebtSummary(context.Background(), connect.NewRequest(&api.GetDebtSummaryRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("GetDebtSummary failed: %v", err)
	}
	if resp.Msg.NoMembers {
		t.Error("expected NoMembers false")
	}
	if !resp.Msg.Overall.TotalSpent.IsZero() || !resp.Msg.Overall.Settled {
		t.Errorf("expected empty settled overall, got %+v", resp.Msg.Overall)
	}
	if len(resp.Msg.Monthly) != 0 {
		t.Errorf("expected no months, got %d", len(resp.Msg.Monthly))
	}
}

func TestGetDebtSummary_NoMembers(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c)

	resp, err := c.debts.GetDebtSummary(context.Background(), connect.NewRequest(&api.GetDebtSummaryRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("GetDebtSummary failed: %v", err)
	}
	if !resp.Msg.NoMembers {
		t.Error("expected NoMembers true")
	}
	if len(resp.Msg.Overall.Debts) != 0 || len(resp.Msg.Monthly) != 0 {
		t.Errorf("expected empty summary, got %+v", resp.Msg)
	}
}

func TestGetDebtSummary_Rounding(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "A", "B", "C")

	addPayment(t, c, group.ID, "A", "100", julyAt(1))

	resp, err := c.debts.GetDebtSummary(context.Background(), connect.NewRequest(&api.GetDebtSummaryRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("GetDebtSummary failed: %v", err)
	}
	assertDebts(t, resp.Msg.Overall.Debts, [][3]string{
		{"B", "A", "33.33"},
		{"C", "A", "33.33"},
	})
}

func TestGetDebtSummary_NotFound(t *testing.T) {
	c := setupSQLiteTestServer(t)

	_, err := c.debts.GetDebtSummary(context.Background(), connect.NewRequest(&api.GetDebtSummaryRequest{
		GroupID: "nonexistent-id",
	}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestGetDebtSummary_LoadFailure(t *testing.T) {
	store := newTestSQLiteStore(t)
	c := setupTestServer(t, failingStore{Store: store})

	// Groups are still readable; only payment loading fails.
	group := &models.Group{Name: "Home", Members: []models.Member{{Name: "Alice", Email: "alice@example.com"}}}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	_, err := c.debts.GetDebtSummary(context.Background(), connect.NewRequest(&api.GetDebtSummaryRequest{
		GroupID: group.ID,
	}))
	expectCode(t, err, connect.CodeUnavailable)

	var connectErr *connect.Error
	if errors.As(err, &connectErr) && connectErr.Message() != "could not load data" {
		t.Errorf("expected message 'could not load data', got %q", connectErr.Message())
	}
}

func TestGetBalances(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Carol", "Alice", "Bob")

	addPayment(t, c, group.ID, "Alice", "90", julyAt(5))
	addPayment(t, c, group.ID, "Bob", "30", augustAt(2))

	resp, err := c.debts.GetBalances(context.Background(), connect.NewRequest(&api.GetBalancesRequest{
		GroupID: group.ID,
		From:    julyAt(1).Unix(),
		To:      augustAt(1).Unix(),
	}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}

	if !resp.Msg.TotalSpent.Equal(dec("90")) {
		t.Errorf("total spent: expected 90, got %s", resp.Msg.TotalSpent)
	}

	want := []struct {
		name      string
		paid, net string
	}{
		{"Alice", "90", "60"},
		{"Bob", "0", "-30"},
		{"Carol", "0", "-30"},
	}
	if len(resp.Msg.MemberBalances) != len(want) {
		t.Fatalf("expected %d balances, got %d", len(want), len(resp.Msg.MemberBalances))
	}
	for i, w := range want {
		b := resp.Msg.MemberBalances[i]
		if b.MemberName != w.name || !b.Paid.Equal(dec(w.paid)) || !b.NetBalance.Equal(dec(w.net)) || !b.Share.Equal(dec("30")) {
			t.Errorf("balance %d: expected %s paid %s net %s, got %+v", i, w.name, w.paid, w.net, b)
		}
	}

	assertDebts(t, resp.Msg.Debts, [][3]string{
		{"Bob", "Alice", "30"},
		{"Carol", "Alice", "30"},
	})
}

func TestGetBalances_FormerMemberCountsTowardsTotal(t *testing.T) {
	c := setupSQLiteTestServer(t)
	group := createGroup(t, c, "Alice", "Bob", "Carol")

	addPayment(t, c, group.ID, "Carol", "60", julyAt(5))
	_, err := c.groups.RemoveMember(context.Background(), connect.NewRequest(&api.RemoveMemberRequest{
		GroupID: group.ID,
		Email:   "Carol@example.com",
	}))
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	resp, err := c.debts.GetBalances(context.Background(), connect.NewRequest(&api.GetBalancesRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if !resp.Msg.TotalSpent.Equal(dec("60")) {
		t.Errorf("total spent: expected 60, got %s", resp.Msg.TotalSpent)
	}
	if len(resp.Msg.MemberBalances) != 2 {
		t.Fatalf("expected 2 balances, got %d", len(resp.Msg.MemberBalances))
	}
	for _, b := range resp.Msg.MemberBalances {
		if !b.NetBalance.Equal(dec("-30")) {
			t.Errorf("%s: expected net -30, got %s", b.MemberName, b.NetBalance)
		}
	}
	// Nobody left in the group is owed anything.
	if len(resp.Msg.Debts) != 0 {
		t.Errorf("expected no debts, got %+v", resp.Msg.Debts)
	}
}
