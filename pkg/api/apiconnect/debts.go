package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/Ric377/FamilyMoney/pkg/api"
)

// DebtServiceName is the fully-qualified name of the DebtService.
const DebtServiceName = "familymoney.v1.DebtService"

// Procedure paths, as routed by the handler.
const (
	DebtServiceGetBalancesProcedure    = "/familymoney.v1.DebtService/GetBalances"
	DebtServiceGetDebtSummaryProcedure = "/familymoney.v1.DebtService/GetDebtSummary"
)

// DebtServiceHandler computes balances and settlement summaries.
type DebtServiceHandler interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetDebtSummary(context.Context, *connect.Request[api.GetDebtSummaryRequest]) (*connect.Response[api.GetDebtSummaryResponse], error)
}

// NewDebtServiceHandler builds an HTTP handler for the service and returns the
// path prefix to mount it on.
func NewDebtServiceHandler(svc DebtServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	getBalances := connect.NewUnaryHandler(DebtServiceGetBalancesProcedure, svc.GetBalances, opts...)
	getDebtSummary := connect.NewUnaryHandler(DebtServiceGetDebtSummaryProcedure, svc.GetDebtSummary, opts...)
	return "/" + DebtServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case DebtServiceGetBalancesProcedure:
			getBalances.ServeHTTP(w, r)
		case DebtServiceGetDebtSummaryProcedure:
			getDebtSummary.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// DebtServiceClient is a client for the DebtService.
type DebtServiceClient interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetDebtSummary(context.Context, *connect.Request[api.GetDebtSummaryRequest]) (*connect.Response[api.GetDebtSummaryResponse], error)
}

// NewDebtServiceClient constructs a client for the DebtService at baseURL
// (e.g., http://localhost:8080).
func NewDebtServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) DebtServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &debtServiceClient{
		getBalances:    connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+DebtServiceGetBalancesProcedure, opts...),
		getDebtSummary: connect.NewClient[api.GetDebtSummaryRequest, api.GetDebtSummaryResponse](httpClient, baseURL+DebtServiceGetDebtSummaryProcedure, opts...),
	}
}

type debtServiceClient struct {
	getBalances    *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	getDebtSummary *connect.Client[api.GetDebtSummaryRequest, api.GetDebtSummaryResponse]
}

func (c *debtServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *debtServiceClient) GetDebtSummary(ctx context.Context, req *connect.Request[api.GetDebtSummaryRequest]) (*connect.Response[api.GetDebtSummaryResponse], error) {
	return c.getDebtSummary.CallUnary(ctx, req)
}
