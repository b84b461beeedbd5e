package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/finledger/internal/auth"
	ledgerv1 "github.com/mmynk/finledger/pkg/api/ledgerv1"
	"github.com/mmynk/finledger/pkg/api/ledgerv1/ledgerv1connect"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// echoBalanceService answers GetBalances with a single account named after
// the caller, or fails when asked for a window starting at the zero time.
type echoBalanceService struct {
	ledgerv1connect.UnimplementedBalanceServiceHandler
}

func (echoBalanceService) GetBalances(ctx context.Context, req *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error) {
	if req.Msg.From != nil && req.Msg.From.IsZero() {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad window"))
	}
	return connect.NewResponse(&ledgerv1.GetBalancesResponse{
		Accounts: []ledgerv1.AccountBalance{{AccountID: GetUserID(ctx)}},
	}), nil
}

func setupTestServer(t *testing.T, opts ...connect.HandlerOption) ledgerv1connect.BalanceServiceClient {
	t.Helper()
	path, handler := ledgerv1connect.NewBalanceServiceHandler(echoBalanceService{}, opts...)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return ledgerv1connect.NewBalanceServiceClient(http.DefaultClient, server.URL)
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	client := setupTestServer(t, connect.WithInterceptors(RequireAuth(jwtManager)))

	token, err := jwtManager.Generate("alice")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
		wantUser string
	}{
		{name: "valid token", header: "Bearer " + token, wantUser: "alice"},
		{name: "missing header", wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", header: "Basic " + token, wantCode: connect.CodeUnauthenticated},
		{name: "bad token", header: "Bearer nope", wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&ledgerv1.GetBalancesRequest{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}
			resp, err := client.GetBalances(context.Background(), req)
			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("code = %v, want %v (err %v)", connect.CodeOf(err), tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetBalances() error: %v", err)
			}
			if got := resp.Msg.Accounts[0].AccountID; got != tt.wantUser {
				t.Errorf("user = %q, want %q", got, tt.wantUser)
			}
		})
	}
}

func TestRequireAuthHTTP(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate("bob")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	var seen string
	handler := RequireAuthHTTP(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/export/obligations.xlsx", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without token = %d, want 401", rec.Code)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with token = %d, want 200", rec.Code)
	}
	if seen != "bob" {
		t.Errorf("user = %q, want bob", seen)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	client := setupTestServer(t, connect.WithInterceptors(metrics.Interceptor(), LoggingInterceptor()))

	ctx := context.Background()
	if _, err := client.GetBalances(ctx, connect.NewRequest(&ledgerv1.GetBalancesRequest{})); err != nil {
		t.Fatalf("GetBalances() error: %v", err)
	}
	zero := time.Time{}
	if _, err := client.GetBalances(ctx, connect.NewRequest(&ledgerv1.GetBalancesRequest{From: &zero})); err == nil {
		t.Fatal("expected error for zero window")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	counts := make(map[string]float64)
	var observed uint64
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch mf.GetName() {
			case "finledger_rpc_requests_total":
				counts[labelValue(m, "code")] += m.GetCounter().GetValue()
			case "finledger_rpc_duration_seconds":
				observed += m.GetHistogram().GetSampleCount()
			}
		}
	}
	if counts["ok"] != 1 {
		t.Errorf("ok requests = %v, want 1", counts["ok"])
	}
	if got := counts[connect.CodeInvalidArgument.String()]; got != 1 {
		t.Errorf("invalid_argument requests = %v, want 1", got)
	}
	if observed != 2 {
		t.Errorf("observed durations = %d, want 2", observed)
	}
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
