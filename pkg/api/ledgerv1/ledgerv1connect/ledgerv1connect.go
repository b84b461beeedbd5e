// Package ledgerv1connect holds the Connect clients and handlers of the
// finledger v1 services. Every client and handler speaks JSON through
// ledgerv1.Codec.
package ledgerv1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	ledgerv1 "github.com/mmynk/finledger/pkg/api/ledgerv1"
)

// This is a compile-time assertion to ensure that this package is compatible
// with the version of connect it is built against.
const _ = connect.IsAtLeastVersion1_13_0

const (
	// BalanceServiceName is the fully-qualified name of the BalanceService service.
	BalanceServiceName = "finledger.v1.BalanceService"
	// LoanServiceName is the fully-qualified name of the LoanService service.
	LoanServiceName = "finledger.v1.LoanService"
	// ObligationServiceName is the fully-qualified name of the ObligationService service.
	ObligationServiceName = "finledger.v1.ObligationService"
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "finledger.v1.LedgerService"
)

// These constants are the fully-qualified names of the RPCs defined in this
// package. They're exposed at runtime as Spec.Procedure and as the final two
// segments of the HTTP route.
const (
	// BalanceServiceGetBalancesProcedure is the fully-qualified name of the BalanceService's GetBalances RPC.
	BalanceServiceGetBalancesProcedure = "/finledger.v1.BalanceService/GetBalances"
	// LoanServiceCalculateScheduleProcedure is the fully-qualified name of the LoanService's CalculateSchedule RPC.
	LoanServiceCalculateScheduleProcedure = "/finledger.v1.LoanService/CalculateSchedule"
	// LoanServiceGetLoanScheduleProcedure is the fully-qualified name of the LoanService's GetLoanSchedule RPC.
	LoanServiceGetLoanScheduleProcedure = "/finledger.v1.LoanService/GetLoanSchedule"
	// ObligationServiceGetObligationsProcedure is the fully-qualified name of the ObligationService's GetObligations RPC.
	ObligationServiceGetObligationsProcedure = "/finledger.v1.ObligationService/GetObligations"
	// ObligationServiceGetRecurringOccurrencesProcedure is the fully-qualified name of the ObligationService's GetRecurringOccurrences RPC.
	ObligationServiceGetRecurringOccurrencesProcedure = "/finledger.v1.ObligationService/GetRecurringOccurrences"
	// LedgerServiceCreateAccountProcedure is the fully-qualified name of the LedgerService's CreateAccount RPC.
	LedgerServiceCreateAccountProcedure = "/finledger.v1.LedgerService/CreateAccount"
	// LedgerServiceListAccountsProcedure is the fully-qualified name of the LedgerService's ListAccounts RPC.
	LedgerServiceListAccountsProcedure = "/finledger.v1.LedgerService/ListAccounts"
	// LedgerServiceDeleteAccountProcedure is the fully-qualified name of the LedgerService's DeleteAccount RPC.
	LedgerServiceDeleteAccountProcedure = "/finledger.v1.LedgerService/DeleteAccount"
	// LedgerServiceCreateFriendProcedure is the fully-qualified name of the LedgerService's CreateFriend RPC.
	LedgerServiceCreateFriendProcedure = "/finledger.v1.LedgerService/CreateFriend"
	// LedgerServiceListFriendsProcedure is the fully-qualified name of the LedgerService's ListFriends RPC.
	LedgerServiceListFriendsProcedure = "/finledger.v1.LedgerService/ListFriends"
	// LedgerServiceCreateStatementProcedure is the fully-qualified name of the LedgerService's CreateStatement RPC.
	LedgerServiceCreateStatementProcedure = "/finledger.v1.LedgerService/CreateStatement"
	// LedgerServiceCreateSelfTransferProcedure is the fully-qualified name of the LedgerService's CreateSelfTransfer RPC.
	LedgerServiceCreateSelfTransferProcedure = "/finledger.v1.LedgerService/CreateSelfTransfer"
	// LedgerServiceCreateLoanProcedure is the fully-qualified name of the LedgerService's CreateLoan RPC.
	LedgerServiceCreateLoanProcedure = "/finledger.v1.LedgerService/CreateLoan"
	// LedgerServiceCreateRecurringPaymentProcedure is the fully-qualified name of the LedgerService's CreateRecurringPayment RPC.
	LedgerServiceCreateRecurringPaymentProcedure = "/finledger.v1.LedgerService/CreateRecurringPayment"
	// LedgerServiceLinkPaymentProcedure is the fully-qualified name of the LedgerService's LinkPayment RPC.
	LedgerServiceLinkPaymentProcedure = "/finledger.v1.LedgerService/LinkPayment"
)

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(ledgerv1.Codec{})}, opts...)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(ledgerv1.Codec{})}, opts...)
}

// BalanceServiceClient is a client for the finledger.v1.BalanceService service.
type BalanceServiceClient interface {
	GetBalances(context.Context, *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error)
}

// NewBalanceServiceClient constructs a client for the finledger.v1.BalanceService service. By
// default it uses the Connect protocol with JSON messages.
//
// The URL supplied here should be the base URL for the server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &balanceServiceClient{
		getBalances: connect.NewClient[ledgerv1.GetBalancesRequest, ledgerv1.GetBalancesResponse](
			httpClient,
			baseURL+BalanceServiceGetBalancesProcedure,
			opts...,
		),
	}
}

// balanceServiceClient implements BalanceServiceClient.
type balanceServiceClient struct {
	getBalances *connect.Client[ledgerv1.GetBalancesRequest, ledgerv1.GetBalancesResponse]
}

// GetBalances calls finledger.v1.BalanceService.GetBalances.
func (c *balanceServiceClient) GetBalances(ctx context.Context, req *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

// BalanceServiceHandler is an implementation of the finledger.v1.BalanceService service.
type BalanceServiceHandler interface {
	GetBalances(context.Context, *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
//
// By default, handlers support the Connect, gRPC, and gRPC-Web protocols with
// JSON messages.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	balanceServiceGetBalancesHandler := connect.NewUnaryHandler(
		BalanceServiceGetBalancesProcedure,
		svc.GetBalances,
		opts...,
	)
	return "/finledger.v1.BalanceService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BalanceServiceGetBalancesProcedure:
			balanceServiceGetBalancesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedBalanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBalanceServiceHandler struct{}

func (UnimplementedBalanceServiceHandler) GetBalances(context.Context, *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.BalanceService.GetBalances is not implemented"))
}

// LoanServiceClient is a client for the finledger.v1.LoanService service.
type LoanServiceClient interface {
	CalculateSchedule(context.Context, *connect.Request[ledgerv1.CalculateScheduleRequest]) (*connect.Response[ledgerv1.CalculateScheduleResponse], error)
	GetLoanSchedule(context.Context, *connect.Request[ledgerv1.GetLoanScheduleRequest]) (*connect.Response[ledgerv1.GetLoanScheduleResponse], error)
}

// NewLoanServiceClient constructs a client for the finledger.v1.LoanService service. By
// default it uses the Connect protocol with JSON messages.
//
// The URL supplied here should be the base URL for the server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewLoanServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LoanServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &loanServiceClient{
		calculateSchedule: connect.NewClient[ledgerv1.CalculateScheduleRequest, ledgerv1.CalculateScheduleResponse](
			httpClient,
			baseURL+LoanServiceCalculateScheduleProcedure,
			opts...,
		),
		getLoanSchedule: connect.NewClient[ledgerv1.GetLoanScheduleRequest, ledgerv1.GetLoanScheduleResponse](
			httpClient,
			baseURL+LoanServiceGetLoanScheduleProcedure,
			opts...,
		),
	}
}

// loanServiceClient implements LoanServiceClient.
type loanServiceClient struct {
	calculateSchedule *connect.Client[ledgerv1.CalculateScheduleRequest, ledgerv1.CalculateScheduleResponse]
	getLoanSchedule   *connect.Client[ledgerv1.GetLoanScheduleRequest, ledgerv1.GetLoanScheduleResponse]
}

// CalculateSchedule calls finledger.v1.LoanService.CalculateSchedule.
func (c *loanServiceClient) CalculateSchedule(ctx context.Context, req *connect.Request[ledgerv1.CalculateScheduleRequest]) (*connect.Response[ledgerv1.CalculateScheduleResponse], error) {
	return c.calculateSchedule.CallUnary(ctx, req)
}

// GetLoanSchedule calls finledger.v1.LoanService.GetLoanSchedule.
func (c *loanServiceClient) GetLoanSchedule(ctx context.Context, req *connect.Request[ledgerv1.GetLoanScheduleRequest]) (*connect.Response[ledgerv1.GetLoanScheduleResponse], error) {
	return c.getLoanSchedule.CallUnary(ctx, req)
}

// LoanServiceHandler is an implementation of the finledger.v1.LoanService service.
type LoanServiceHandler interface {
	CalculateSchedule(context.Context, *connect.Request[ledgerv1.CalculateScheduleRequest]) (*connect.Response[ledgerv1.CalculateScheduleResponse], error)
	GetLoanSchedule(context.Context, *connect.Request[ledgerv1.GetLoanScheduleRequest]) (*connect.Response[ledgerv1.GetLoanScheduleResponse], error)
}

// NewLoanServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
//
// By default, handlers support the Connect, gRPC, and gRPC-Web protocols with
// JSON messages.
func NewLoanServiceHandler(svc LoanServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	loanServiceCalculateScheduleHandler := connect.NewUnaryHandler(
		LoanServiceCalculateScheduleProcedure,
		svc.CalculateSchedule,
		opts...,
	)
	loanServiceGetLoanScheduleHandler := connect.NewUnaryHandler(
		LoanServiceGetLoanScheduleProcedure,
		svc.GetLoanSchedule,
		opts...,
	)
	return "/finledger.v1.LoanService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LoanServiceCalculateScheduleProcedure:
			loanServiceCalculateScheduleHandler.ServeHTTP(w, r)
		case LoanServiceGetLoanScheduleProcedure:
			loanServiceGetLoanScheduleHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLoanServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLoanServiceHandler struct{}

func (UnimplementedLoanServiceHandler) CalculateSchedule(context.Context, *connect.Request[ledgerv1.CalculateScheduleRequest]) (*connect.Response[ledgerv1.CalculateScheduleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LoanService.CalculateSchedule is not implemented"))
}

func (UnimplementedLoanServiceHandler) GetLoanSchedule(context.Context, *connect.Request[ledgerv1.GetLoanScheduleRequest]) (*connect.Response[ledgerv1.GetLoanScheduleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LoanService.GetLoanSchedule is not implemented"))
}

// ObligationServiceClient is a client for the finledger.v1.ObligationService service.
type ObligationServiceClient interface {
	GetObligations(context.Context, *connect.Request[ledgerv1.GetObligationsRequest]) (*connect.Response[ledgerv1.GetObligationsResponse], error)
	GetRecurringOccurrences(context.Context, *connect.Request[ledgerv1.GetRecurringOccurrencesRequest]) (*connect.Response[ledgerv1.GetRecurringOccurrencesResponse], error)
}

// NewObligationServiceClient constructs a client for the finledger.v1.ObligationService service. By
// default it uses the Connect protocol with JSON messages.
//
// The URL supplied here should be the base URL for the server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewObligationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ObligationServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &obligationServiceClient{
		getObligations: connect.NewClient[ledgerv1.GetObligationsRequest, ledgerv1.GetObligationsResponse](
			httpClient,
			baseURL+ObligationServiceGetObligationsProcedure,
			opts...,
		),
		getRecurringOccurrences: connect.NewClient[ledgerv1.GetRecurringOccurrencesRequest, ledgerv1.GetRecurringOccurrencesResponse](
			httpClient,
			baseURL+ObligationServiceGetRecurringOccurrencesProcedure,
			opts...,
		),
	}
}

// obligationServiceClient implements ObligationServiceClient.
type obligationServiceClient struct {
	getObligations          *connect.Client[ledgerv1.GetObligationsRequest, ledgerv1.GetObligationsResponse]
	getRecurringOccurrences *connect.Client[ledgerv1.GetRecurringOccurrencesRequest, ledgerv1.GetRecurringOccurrencesResponse]
}

// GetObligations calls finledger.v1.ObligationService.GetObligations.
func (c *obligationServiceClient) GetObligations(ctx context.Context, req *connect.Request[ledgerv1.GetObligationsRequest]) (*connect.Response[ledgerv1.GetObligationsResponse], error) {
	return c.getObligations.CallUnary(ctx, req)
}

// GetRecurringOccurrences calls finledger.v1.ObligationService.GetRecurringOccurrences.
func (c *obligationServiceClient) GetRecurringOccurrences(ctx context.Context, req *connect.Request[ledgerv1.GetRecurringOccurrencesRequest]) (*connect.Response[ledgerv1.GetRecurringOccurrencesResponse], error) {
	return c.getRecurringOccurrences.CallUnary(ctx, req)
}

// ObligationServiceHandler is an implementation of the finledger.v1.ObligationService service.
type ObligationServiceHandler interface {
	GetObligations(context.Context, *connect.Request[ledgerv1.GetObligationsRequest]) (*connect.Response[ledgerv1.GetObligationsResponse], error)
	GetRecurringOccurrences(context.Context, *connect.Request[ledgerv1.GetRecurringOccurrencesRequest]) (*connect.Response[ledgerv1.GetRecurringOccurrencesResponse], error)
}

// NewObligationServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
//
// By default, handlers support the Connect, gRPC, and gRPC-Web protocols with
// JSON messages.
func NewObligationServiceHandler(svc ObligationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	obligationServiceGetObligationsHandler := connect.NewUnaryHandler(
		ObligationServiceGetObligationsProcedure,
		svc.GetObligations,
		opts...,
	)
	obligationServiceGetRecurringOccurrencesHandler := connect.NewUnaryHandler(
		ObligationServiceGetRecurringOccurrencesProcedure,
		svc.GetRecurringOccurrences,
		opts...,
	)
	return "/finledger.v1.ObligationService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ObligationServiceGetObligationsProcedure:
			obligationServiceGetObligationsHandler.ServeHTTP(w, r)
		case ObligationServiceGetRecurringOccurrencesProcedure:
			obligationServiceGetRecurringOccurrencesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedObligationServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedObligationServiceHandler struct{}

func (UnimplementedObligationServiceHandler) GetObligations(context.Context, *connect.Request[ledgerv1.GetObligationsRequest]) (*connect.Response[ledgerv1.GetObligationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.ObligationService.GetObligations is not implemented"))
}

func (UnimplementedObligationServiceHandler) GetRecurringOccurrences(context.Context, *connect.Request[ledgerv1.GetRecurringOccurrencesRequest]) (*connect.Response[ledgerv1.GetRecurringOccurrencesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.ObligationService.GetRecurringOccurrences is not implemented"))
}

// LedgerServiceClient is a client for the finledger.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateAccount(context.Context, *connect.Request[ledgerv1.CreateAccountRequest]) (*connect.Response[ledgerv1.CreateAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[ledgerv1.ListAccountsRequest]) (*connect.Response[ledgerv1.ListAccountsResponse], error)
	DeleteAccount(context.Context, *connect.Request[ledgerv1.DeleteAccountRequest]) (*connect.Response[ledgerv1.DeleteAccountResponse], error)
	CreateFriend(context.Context, *connect.Request[ledgerv1.CreateFriendRequest]) (*connect.Response[ledgerv1.CreateFriendResponse], error)
	ListFriends(context.Context, *connect.Request[ledgerv1.ListFriendsRequest]) (*connect.Response[ledgerv1.ListFriendsResponse], error)
	CreateStatement(context.Context, *connect.Request[ledgerv1.CreateStatementRequest]) (*connect.Response[ledgerv1.CreateStatementResponse], error)
	CreateSelfTransfer(context.Context, *connect.Request[ledgerv1.CreateSelfTransferRequest]) (*connect.Response[ledgerv1.CreateSelfTransferResponse], error)
	CreateLoan(context.Context, *connect.Request[ledgerv1.CreateLoanRequest]) (*connect.Response[ledgerv1.CreateLoanResponse], error)
	CreateRecurringPayment(context.Context, *connect.Request[ledgerv1.CreateRecurringPaymentRequest]) (*connect.Response[ledgerv1.CreateRecurringPaymentResponse], error)
	LinkPayment(context.Context, *connect.Request[ledgerv1.LinkPaymentRequest]) (*connect.Response[ledgerv1.LinkPaymentResponse], error)
}

// NewLedgerServiceClient constructs a client for the finledger.v1.LedgerService service. By
// default it uses the Connect protocol with JSON messages.
//
// The URL supplied here should be the base URL for the server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		createAccount: connect.NewClient[ledgerv1.CreateAccountRequest, ledgerv1.CreateAccountResponse](
			httpClient,
			baseURL+LedgerServiceCreateAccountProcedure,
			opts...,
		),
		listAccounts: connect.NewClient[ledgerv1.ListAccountsRequest, ledgerv1.ListAccountsResponse](
			httpClient,
			baseURL+LedgerServiceListAccountsProcedure,
			opts...,
		),
		deleteAccount: connect.NewClient[ledgerv1.DeleteAccountRequest, ledgerv1.DeleteAccountResponse](
			httpClient,
			baseURL+LedgerServiceDeleteAccountProcedure,
			opts...,
		),
		createFriend: connect.NewClient[ledgerv1.CreateFriendRequest, ledgerv1.CreateFriendResponse](
			httpClient,
			baseURL+LedgerServiceCreateFriendProcedure,
			opts...,
		),
		listFriends: connect.NewClient[ledgerv1.ListFriendsRequest, ledgerv1.ListFriendsResponse](
			httpClient,
			baseURL+LedgerServiceListFriendsProcedure,
			opts...,
		),
		createStatement: connect.NewClient[ledgerv1.CreateStatementRequest, ledgerv1.CreateStatementResponse](
			httpClient,
			baseURL+LedgerServiceCreateStatementProcedure,
			opts...,
		),
		createSelfTransfer: connect.NewClient[ledgerv1.CreateSelfTransferRequest, ledgerv1.CreateSelfTransferResponse](
			httpClient,
			baseURL+LedgerServiceCreateSelfTransferProcedure,
			opts...,
		),
		createLoan: connect.NewClient[ledgerv1.CreateLoanRequest, ledgerv1.CreateLoanResponse](
			httpClient,
			baseURL+LedgerServiceCreateLoanProcedure,
			opts...,
		),
		createRecurringPayment: connect.NewClient[ledgerv1.CreateRecurringPaymentRequest, ledgerv1.CreateRecurringPaymentResponse](
			httpClient,
			baseURL+LedgerServiceCreateRecurringPaymentProcedure,
			opts...,
		),
		linkPayment: connect.NewClient[ledgerv1.LinkPaymentRequest, ledgerv1.LinkPaymentResponse](
			httpClient,
			baseURL+LedgerServiceLinkPaymentProcedure,
			opts...,
		),
	}
}

// ledgerServiceClient implements LedgerServiceClient.
type ledgerServiceClient struct {
	createAccount          *connect.Client[ledgerv1.CreateAccountRequest, ledgerv1.CreateAccountResponse]
	listAccounts           *connect.Client[ledgerv1.ListAccountsRequest, ledgerv1.ListAccountsResponse]
	deleteAccount          *connect.Client[ledgerv1.DeleteAccountRequest, ledgerv1.DeleteAccountResponse]
	createFriend           *connect.Client[ledgerv1.CreateFriendRequest, ledgerv1.CreateFriendResponse]
	listFriends            *connect.Client[ledgerv1.ListFriendsRequest, ledgerv1.ListFriendsResponse]
	createStatement        *connect.Client[ledgerv1.CreateStatementRequest, ledgerv1.CreateStatementResponse]
	createSelfTransfer     *connect.Client[ledgerv1.CreateSelfTransferRequest, ledgerv1.CreateSelfTransferResponse]
	createLoan             *connect.Client[ledgerv1.CreateLoanRequest, ledgerv1.CreateLoanResponse]
	createRecurringPayment *connect.Client[ledgerv1.CreateRecurringPaymentRequest, ledgerv1.CreateRecurringPaymentResponse]
	linkPayment            *connect.Client[ledgerv1.LinkPaymentRequest, ledgerv1.LinkPaymentResponse]
}

// CreateAccount calls finledger.v1.LedgerService.CreateAccount.
func (c *ledgerServiceClient) CreateAccount(ctx context.Context, req *connect.Request[ledgerv1.CreateAccountRequest]) (*connect.Response[ledgerv1.CreateAccountResponse], error) {
	return c.createAccount.CallUnary(ctx, req)
}

// ListAccounts calls finledger.v1.LedgerService.ListAccounts.
func (c *ledgerServiceClient) ListAccounts(ctx context.Context, req *connect.Request[ledgerv1.ListAccountsRequest]) (*connect.Response[ledgerv1.ListAccountsResponse], error) {
	return c.listAccounts.CallUnary(ctx, req)
}

// DeleteAccount calls finledger.v1.LedgerService.DeleteAccount.
func (c *ledgerServiceClient) DeleteAccount(ctx context.Context, req *connect.Request[ledgerv1.DeleteAccountRequest]) (*connect.Response[ledgerv1.DeleteAccountResponse], error) {
	return c.deleteAccount.CallUnary(ctx, req)
}

// CreateFriend calls finledger.v1.LedgerService.CreateFriend.
func (c *ledgerServiceClient) CreateFriend(ctx context.Context, req *connect.Request[ledgerv1.CreateFriendRequest]) (*connect.Response[ledgerv1.CreateFriendResponse], error) {
	return c.createFriend.CallUnary(ctx, req)
}

// ListFriends calls finledger.v1.LedgerService.ListFriends.
func (c *ledgerServiceClient) ListFriends(ctx context.Context, req *connect.Request[ledgerv1.ListFriendsRequest]) (*connect.Response[ledgerv1.ListFriendsResponse], error) {
	return c.listFriends.CallUnary(ctx, req)
}

// CreateStatement calls finledger.v1.LedgerService.CreateStatement.
func (c *ledgerServiceClient) CreateStatement(ctx context.Context, req *connect.Request[ledgerv1.CreateStatementRequest]) (*connect.Response[ledgerv1.CreateStatementResponse], error) {
	return c.createStatement.CallUnary(ctx, req)
}

// CreateSelfTransfer calls finledger.v1.LedgerService.CreateSelfTransfer.
func (c *ledgerServiceClient) CreateSelfTransfer(ctx context.Context, req *connect.Request[ledgerv1.CreateSelfTransferRequest]) (*connect.Response[ledgerv1.CreateSelfTransferResponse], error) {
	return c.createSelfTransfer.CallUnary(ctx, req)
}

// CreateLoan calls finledger.v1.LedgerService.CreateLoan.
func (c *ledgerServiceClient) CreateLoan(ctx context.Context, req *connect.Request[ledgerv1.CreateLoanRequest]) (*connect.Response[ledgerv1.CreateLoanResponse], error) {
	return c.createLoan.CallUnary(ctx, req)
}

// CreateRecurringPayment calls finledger.v1.LedgerService.CreateRecurringPayment.
func (c *ledgerServiceClient) CreateRecurringPayment(ctx context.Context, req *connect.Request[ledgerv1.CreateRecurringPaymentRequest]) (*connect.Response[ledgerv1.CreateRecurringPaymentResponse], error) {
	return c.createRecurringPayment.CallUnary(ctx, req)
}

// LinkPayment calls finledger.v1.LedgerService.LinkPayment.
func (c *ledgerServiceClient) LinkPayment(ctx context.Context, req *connect.Request[ledgerv1.LinkPaymentRequest]) (*connect.Response[ledgerv1.LinkPaymentResponse], error) {
	return c.linkPayment.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the finledger.v1.LedgerService service.
type LedgerServiceHandler interface {
	CreateAccount(context.Context, *connect.Request[ledgerv1.CreateAccountRequest]) (*connect.Response[ledgerv1.CreateAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[ledgerv1.ListAccountsRequest]) (*connect.Response[ledgerv1.ListAccountsResponse], error)
	DeleteAccount(context.Context, *connect.Request[ledgerv1.DeleteAccountRequest]) (*connect.Response[ledgerv1.DeleteAccountResponse], error)
	CreateFriend(context.Context, *connect.Request[ledgerv1.CreateFriendRequest]) (*connect.Response[ledgerv1.CreateFriendResponse], error)
	ListFriends(context.Context, *connect.Request[ledgerv1.ListFriendsRequest]) (*connect.Response[ledgerv1.ListFriendsResponse], error)
	CreateStatement(context.Context, *connect.Request[ledgerv1.CreateStatementRequest]) (*connect.Response[ledgerv1.CreateStatementResponse], error)
	CreateSelfTransfer(context.Context, *connect.Request[ledgerv1.CreateSelfTransferRequest]) (*connect.Response[ledgerv1.CreateSelfTransferResponse], error)
	CreateLoan(context.Context, *connect.Request[ledgerv1.CreateLoanRequest]) (*connect.Response[ledgerv1.CreateLoanResponse], error)
	CreateRecurringPayment(context.Context, *connect.Request[ledgerv1.CreateRecurringPaymentRequest]) (*connect.Response[ledgerv1.CreateRecurringPaymentResponse], error)
	LinkPayment(context.Context, *connect.Request[ledgerv1.LinkPaymentRequest]) (*connect.Response[ledgerv1.LinkPaymentResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
//
// By default, handlers support the Connect, gRPC, and gRPC-Web protocols with
// JSON messages.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	ledgerServiceCreateAccountHandler := connect.NewUnaryHandler(
		LedgerServiceCreateAccountProcedure,
		svc.CreateAccount,
		opts...,
	)
	ledgerServiceListAccountsHandler := connect.NewUnaryHandler(
		LedgerServiceListAccountsProcedure,
		svc.ListAccounts,
		opts...,
	)
	ledgerServiceDeleteAccountHandler := connect.NewUnaryHandler(
		LedgerServiceDeleteAccountProcedure,
		svc.DeleteAccount,
		opts...,
	)
	ledgerServiceCreateFriendHandler := connect.NewUnaryHandler(
		LedgerServiceCreateFriendProcedure,
		svc.CreateFriend,
		opts...,
	)
	ledgerServiceListFriendsHandler := connect.NewUnaryHandler(
		LedgerServiceListFriendsProcedure,
		svc.ListFriends,
		opts...,
	)
	ledgerServiceCreateStatementHandler := connect.NewUnaryHandler(
		LedgerServiceCreateStatementProcedure,
		svc.CreateStatement,
		opts...,
	)
	ledgerServiceCreateSelfTransferHandler := connect.NewUnaryHandler(
		LedgerServiceCreateSelfTransferProcedure,
		svc.CreateSelfTransfer,
		opts...,
	)
	ledgerServiceCreateLoanHandler := connect.NewUnaryHandler(
		LedgerServiceCreateLoanProcedure,
		svc.CreateLoan,
		opts...,
	)
	ledgerServiceCreateRecurringPaymentHandler := connect.NewUnaryHandler(
		LedgerServiceCreateRecurringPaymentProcedure,
		svc.CreateRecurringPayment,
		opts...,
	)
	ledgerServiceLinkPaymentHandler := connect.NewUnaryHandler(
		LedgerServiceLinkPaymentProcedure,
		svc.LinkPayment,
		opts...,
	)
	return "/finledger.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreateAccountProcedure:
			ledgerServiceCreateAccountHandler.ServeHTTP(w, r)
		case LedgerServiceListAccountsProcedure:
			ledgerServiceListAccountsHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteAccountProcedure:
			ledgerServiceDeleteAccountHandler.ServeHTTP(w, r)
		case LedgerServiceCreateFriendProcedure:
			ledgerServiceCreateFriendHandler.ServeHTTP(w, r)
		case LedgerServiceListFriendsProcedure:
			ledgerServiceListFriendsHandler.ServeHTTP(w, r)
		case LedgerServiceCreateStatementProcedure:
			ledgerServiceCreateStatementHandler.ServeHTTP(w, r)
		case LedgerServiceCreateSelfTransferProcedure:
			ledgerServiceCreateSelfTransferHandler.ServeHTTP(w, r)
		case LedgerServiceCreateLoanProcedure:
			ledgerServiceCreateLoanHandler.ServeHTTP(w, r)
		case LedgerServiceCreateRecurringPaymentProcedure:
			ledgerServiceCreateRecurringPaymentHandler.ServeHTTP(w, r)
		case LedgerServiceLinkPaymentProcedure:
			ledgerServiceLinkPaymentHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) CreateAccount(context.Context, *connect.Request[ledgerv1.CreateAccountRequest]) (*connect.Response[ledgerv1.CreateAccountResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.CreateAccount is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListAccounts(context.Context, *connect.Request[ledgerv1.ListAccountsRequest]) (*connect.Response[ledgerv1.ListAccountsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.ListAccounts is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteAccount(context.Context, *connect.Request[ledgerv1.DeleteAccountRequest]) (*connect.Response[ledgerv1.DeleteAccountResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.DeleteAccount is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CreateFriend(context.Context, *connect.Request[ledgerv1.CreateFriendRequest]) (*connect.Response[ledgerv1.CreateFriendResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.CreateFriend is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListFriends(context.Context, *connect.Request[ledgerv1.ListFriendsRequest]) (*connect.Response[ledgerv1.ListFriendsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.ListFriends is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CreateStatement(context.Context, *connect.Request[ledgerv1.CreateStatementRequest]) (*connect.Response[ledgerv1.CreateStatementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.CreateStatement is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CreateSelfTransfer(context.Context, *connect.Request[ledgerv1.CreateSelfTransferRequest]) (*connect.Response[ledgerv1.CreateSelfTransferResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.CreateSelfTransfer is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CreateLoan(context.Context, *connect.Request[ledgerv1.CreateLoanRequest]) (*connect.Response[ledgerv1.CreateLoanResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.CreateLoan is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CreateRecurringPayment(context.Context, *connect.Request[ledgerv1.CreateRecurringPaymentRequest]) (*connect.Response[ledgerv1.CreateRecurringPaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.CreateRecurringPayment is not implemented"))
}

func (UnimplementedLedgerServiceHandler) LinkPayment(context.Context, *connect.Request[ledgerv1.LinkPaymentRequest]) (*connect.Response[ledgerv1.LinkPaymentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finledger.v1.LedgerService.LinkPayment is not implemented"))
}
