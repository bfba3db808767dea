package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/Ric377/FamilyMoney/pkg/api"
)

// PaymentServiceName is the fully-qualified name of the PaymentService.
const PaymentServiceName = "familymoney.v1.PaymentService"

// Procedure paths, as routed by the handler.
const (
	PaymentServiceAddPaymentProcedure     = "/familymoney.v1.PaymentService/AddPayment"
	PaymentServiceGetPaymentProcedure     = "/familymoney.v1.PaymentService/GetPayment"
	PaymentServiceListPaymentsProcedure   = "/familymoney.v1.PaymentService/ListPayments"
	PaymentServiceDeletePaymentProcedure  = "/familymoney.v1.PaymentService/DeletePayment"
	PaymentServiceDeletePaymentsProcedure = "/familymoney.v1.PaymentService/DeletePayments"
)

// PaymentServiceHandler records and removes payments.
type PaymentServiceHandler interface {
	AddPayment(context.Context, *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error)
	GetPayment(context.Context, *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
	DeletePayments(context.Context, *connect.Request[api.DeletePaymentsRequest]) (*connect.Response[api.DeletePaymentsResponse], error)
}

// NewPaymentServiceHandler builds an HTTP handler for the service and returns the
// path prefix to mount it on.
func NewPaymentServiceHandler(svc PaymentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	addPayment := connect.NewUnaryHandler(PaymentServiceAddPaymentProcedure, svc.AddPayment, opts...)
	getPayment := connect.NewUnaryHandler(PaymentServiceGetPaymentProcedure, svc.GetPayment, opts...)
	listPayments := connect.NewUnaryHandler(PaymentServiceListPaymentsProcedure, svc.ListPayments, opts...)
	deletePayment := connect.NewUnaryHandler(PaymentServiceDeletePaymentProcedure, svc.DeletePayment, opts...)
	deletePayments := connect.NewUnaryHandler(PaymentServiceDeletePaymentsProcedure, svc.DeletePayments, opts...)
	return "/" + PaymentServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PaymentServiceAddPaymentProcedure:
			addPayment.ServeHTTP(w, r)
		case PaymentServiceGetPaymentProcedure:
			getPayment.ServeHTTP(w, r)
		case PaymentServiceListPaymentsProcedure:
			listPayments.ServeHTTP(w, r)
		case PaymentServiceDeletePaymentProcedure:
			deletePayment.ServeHTTP(w, r)
		case PaymentServiceDeletePaymentsProcedure:
			deletePayments.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PaymentServiceClient is a client for the PaymentService.
type PaymentServiceClient interface {
	AddPayment(context.Context, *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error)
	GetPayment(context.Context, *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error)
	ListPayments(context.Context, *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error)
	DeletePayment(context.Context, *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error)
	DeletePayments(context.Context, *connect.Request[api.DeletePaymentsRequest]) (*connect.Response[api.DeletePaymentsResponse], error)
}

// NewPaymentServiceClient constructs a client for the PaymentService at baseURL
// (e.g., http://localhost:8080).
func NewPaymentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PaymentServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &paymentServiceClient{
		addPayment:     connect.NewClient[api.AddPaymentRequest, api.AddPaymentResponse](httpClient, baseURL+PaymentServiceAddPaymentProcedure, opts...),
		getPayment:     connect.NewClient[api.GetPaymentRequest, api.GetPaymentResponse](httpClient, baseURL+PaymentServiceGetPaymentProcedure, opts...),
		listPayments:   connect.NewClient[api.ListPaymentsRequest, api.ListPaymentsResponse](httpClient, baseURL+PaymentServiceListPaymentsProcedure, opts...),
		deletePayment:  connect.NewClient[api.DeletePaymentRequest, api.DeletePaymentResponse](httpClient, baseURL+PaymentServiceDeletePaymentProcedure, opts...),
		deletePayments: connect.NewClient[api.DeletePaymentsRequest, api.DeletePaymentsResponse](httpClient, baseURL+PaymentServiceDeletePaymentsProcedure, opts...),
	}
}

type paymentServiceClient struct {
	addPayment     *connect.Client[api.AddPaymentRequest, api.AddPaymentResponse]
	getPayment     *connect.Client[api.GetPaymentRequest, api.GetPaymentResponse]
	listPayments   *connect.Client[api.ListPaymentsRequest, api.ListPaymentsResponse]
	deletePayment  *connect.Client[api.DeletePaymentRequest, api.DeletePaymentResponse]
	deletePayments *connect.Client[api.DeletePaymentsRequest, api.DeletePaymentsResponse]
}

func (c *paymentServiceClient) AddPayment(ctx context.Context, req *connect.Request[api.AddPaymentRequest]) (*connect.Response[api.AddPaymentResponse], error) {
	return c.addPayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) GetPayment(ctx context.Context, req *connect.Request[api.GetPaymentRequest]) (*connect.Response[api.GetPaymentResponse], error) {
	return c.getPayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	return c.listPayments.CallUnary(ctx, req)
}

func (c *paymentServiceClient) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	return c.deletePayment.CallUnary(ctx, req)
}

func (c *paymentServiceClient) DeletePayments(ctx context.Context, req *connect.Request[api.DeletePaymentsRequest]) (*connect.Response[api.DeletePaymentsResponse], error) {
	return c.deletePayments.CallUnary(ctx, req)
}
