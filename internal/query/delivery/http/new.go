package http

import (
	"github.com/gin-gonic/gin"

	"casebem/internal/query"
	"casebem/pkg/log"
)

// Handler is the HTTP surface of the read side.
type Handler interface {
	DemandsByCouple(c *gin.Context)
	OpenDemands(c *gin.Context)
	GetDemand(c *gin.Context)
	QuotesForDemand(c *gin.Context)
	QuotesBySupplier(c *gin.Context)
	GetQuote(c *gin.Context)
	Counters(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc query.UseCase
}

// New creates a new HTTP handler for the read side.
func New(l log.Logger, uc query.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
