package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "peopleevents.v1.AuthService"

	AuthServiceLoginProcedure  = "/peopleevents.v1.AuthService/Login"
	AuthServiceLogoutProcedure = "/peopleevents.v1.AuthService/Logout"
	AuthServiceWhoAmIProcedure = "/peopleevents.v1.AuthService/WhoAmI"
)

// AuthServiceHandler is implemented by the session gate service.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	Logout(context.Context, *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error)
	WhoAmI(context.Context, *connect.Request[WhoAmIRequest]) (*connect.Response[WhoAmIResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for the service and returns the
// path prefix to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceLogoutProcedure, connect.NewUnaryHandler(AuthServiceLogoutProcedure, svc.Logout, opts...))
	mux.Handle(AuthServiceWhoAmIProcedure, connect.NewUnaryHandler(AuthServiceWhoAmIProcedure, svc.WhoAmI, opts...))
	return "/" + AuthServiceName + "/", mux
}

// AuthServiceClient calls the AuthService.
type AuthServiceClient struct {
	login  *connect.Client[LoginRequest, LoginResponse]
	logout *connect.Client[LogoutRequest, LogoutResponse]
	whoAmI *connect.Client[WhoAmIRequest, WhoAmIResponse]
}

// NewAuthServiceClient builds a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = withClientCodec(opts)
	return &AuthServiceClient{
		login:  connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		logout: connect.NewClient[LogoutRequest, LogoutResponse](httpClient, baseURL+AuthServiceLogoutProcedure, opts...),
		whoAmI: connect.NewClient[WhoAmIRequest, WhoAmIResponse](httpClient, baseURL+AuthServiceWhoAmIProcedure, opts...),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Logout(ctx context.Context, req *connect.Request[LogoutRequest]) (*connect.Response[LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

func (c *AuthServiceClient) WhoAmI(ctx context.Context, req *connect.Request[WhoAmIRequest]) (*connect.Response[WhoAmIResponse], error) {
	return c.whoAmI.CallUnary(ctx, req)
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
}

func withClientCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
}
