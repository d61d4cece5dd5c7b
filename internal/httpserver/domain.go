package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"casebem/internal/middleware"
	negotiationHTTP "casebem/internal/negotiation/delivery/http"
	queryHTTP "casebem/internal/query/delivery/http"
)

// setupNegotiationDomain registers the demand and quote writes.
func (srv HTTPServer) setupNegotiationDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := negotiationHTTP.New(srv.l, srv.negotiationUC)
	negotiationHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Negotiation domain registered")
	return nil
}

// setupQueryDomain registers listings, single reads and dashboard counters.
func (srv HTTPServer) setupQueryDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := queryHTTP.New(srv.l, srv.queryUC)
	queryHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Query domain registered")
	return nil
}
