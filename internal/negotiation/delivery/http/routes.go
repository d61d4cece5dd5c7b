package http

import (
	"github.com/gin-gonic/gin"

	"casebem/internal/middleware"
	"casebem/internal/model"
)

// RegisterRoutes maps the negotiation writes. rg is the /api/v1 group.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	couple := mw.RequireRole(model.RoleCouple)
	supplier := mw.RequireRole(model.RoleSupplier)

	demands := rg.Group("/demands", mw.Auth())
	{
		demands.POST("", couple, h.PublishDemand)
		demands.PUT("/:id", couple, h.UpdateDemandHeader)
		demands.POST("/:id/items", couple, h.AddDemandItem)
		demands.PUT("/:id/items/:item_id", couple, h.UpdateDemandItem)
		demands.DELETE("/:id/items/:item_id", couple, h.RemoveDemandItem)
		demands.POST("/:id/cancel", couple, h.CancelDemand)
		demands.POST("/:id/quotes", supplier, h.SubmitQuote)
	}

	quotes := rg.Group("/quotes", mw.Auth())
	{
		quotes.POST("/:id/withdraw", supplier, h.WithdrawQuote)
		quotes.POST("/:id/lines/:line_id/decision", couple, h.DecideLine)
	}
}
