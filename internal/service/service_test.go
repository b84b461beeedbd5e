package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/finledger/internal/middleware"
	"github.com/mmynk/finledger/internal/storage/sqlstore"
	ledgerv1 "github.com/mmynk/finledger/pkg/api/ledgerv1"
	"github.com/mmynk/finledger/pkg/api/ledgerv1/ledgerv1connect"
)

// testAuthInterceptor returns a Connect interceptor that sets a test user ID in the context.
func testAuthInterceptor(userID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return next(middleware.WithUserID(ctx, userID), req)
		}
	}
}

type testClients struct {
	balance    ledgerv1connect.BalanceServiceClient
	loan       ledgerv1connect.LoanServiceClient
	obligation ledgerv1connect.ObligationServiceClient
	ledger     ledgerv1connect.LedgerServiceClient
}

// setupTestServer serves every service over a temporary SQLite database,
// authenticated as userID (empty means unauthenticated) at the fixed instant now.
func setupTestServer(t *testing.T, userID string, now time.Time) testClients {
	t.Helper()

	store, err := sqlstore.New(sqlstore.SQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	clock := func() time.Time { return now }
	loanSvc := NewLoanService(store)
	loanSvc.now = clock
	obligationSvc := NewObligationService(store)
	obligationSvc.now = clock
	ledgerSvc := NewLedgerService(store)
	ledgerSvc.now = clock

	var opts []connect.HandlerOption
	if userID != "" {
		opts = append(opts, connect.WithInterceptors(testAuthInterceptor(userID)))
	}

	mux := http.NewServeMux()
	mux.Handle(ledgerv1connect.NewBalanceServiceHandler(NewBalanceService(store), opts...))
	mux.Handle(ledgerv1connect.NewLoanServiceHandler(loanSvc, opts...))
	mux.Handle(ledgerv1connect.NewObligationServiceHandler(obligationSvc, opts...))
	mux.Handle(ledgerv1connect.NewLedgerServiceHandler(ledgerSvc, opts...))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return testClients{
		balance:    ledgerv1connect.NewBalanceServiceClient(http.DefaultClient, server.URL),
		loan:       ledgerv1connect.NewLoanServiceClient(http.DefaultClient, server.URL),
		obligation: ledgerv1connect.NewObligationServiceClient(http.DefaultClient, server.URL),
		ledger:     ledgerv1connect.NewLedgerServiceClient(http.DefaultClient, server.URL),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", field, got, want)
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("code = %v, want %v (err %v)", got, want, err)
	}
}

func createAccount(t *testing.T, c testClients, name, start string, limit *decimal.Decimal) string {
	t.Helper()
	resp, err := c.ledger.CreateAccount(context.Background(), connect.NewRequest(&ledgerv1.CreateAccountRequest{
		Name:            name,
		StartingBalance: dec(start),
		CreditLimit:     limit,
	}))
	if err != nil {
		t.Fatalf("CreateAccount(%s) failed: %v", name, err)
	}
	return resp.Msg.Account.ID
}

func createFriend(t *testing.T, c testClients, name string) string {
	t.Helper()
	resp, err := c.ledger.CreateFriend(context.Background(), connect.NewRequest(&ledgerv1.CreateFriendRequest{Name: name}))
	if err != nil {
		t.Fatalf("CreateFriend(%s) failed: %v", name, err)
	}
	return resp.Msg.Friend.ID
}

func createStatement(t *testing.T, c testClients, req *ledgerv1.CreateStatementRequest) string {
	t.Helper()
	resp, err := c.ledger.CreateStatement(context.Background(), connect.NewRequest(req))
	if err != nil {
		t.Fatalf("CreateStatement failed: %v", err)
	}
	return resp.Msg.StatementID
}

func TestUnauthenticated(t *testing.T) {
	c := setupTestServer(t, "", day(2024, 3, 10))
	ctx := context.Background()

	_, err := c.balance.GetBalances(ctx, connect.NewRequest(&ledgerv1.GetBalancesRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = c.ledger.CreateAccount(ctx, connect.NewRequest(&ledgerv1.CreateAccountRequest{Name: "Bank"}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = c.obligation.GetObligations(ctx, connect.NewRequest(&ledgerv1.GetObligationsRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}
