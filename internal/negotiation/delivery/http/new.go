package http

import (
	"github.com/gin-gonic/gin"

	"casebem/internal/negotiation"
	"casebem/pkg/log"
)

// Handler is the HTTP surface of the negotiation writes.
type Handler interface {
	PublishDemand(c *gin.Context)
	UpdateDemandHeader(c *gin.Context)
	AddDemandItem(c *gin.Context)
	UpdateDemandItem(c *gin.Context)
	RemoveDemandItem(c *gin.Context)
	CancelDemand(c *gin.Context)
	SubmitQuote(c *gin.Context)
	WithdrawQuote(c *gin.Context)
	DecideLine(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc negotiation.UseCase
}

// New creates a new HTTP handler for the negotiation domain.
func New(l log.Logger, uc negotiation.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
