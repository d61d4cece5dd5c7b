package http

import (
	"github.com/gin-gonic/gin"

	"casebem/internal/middleware"
)

// RegisterRoutes maps the read side. Role checks happen in the usecase so a
// wrong role on a single resource reads as not found.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	demands := rg.Group("/demands", mw.Auth())
	{
		demands.GET("/mine", h.DemandsByCouple)
		demands.GET("/open", h.OpenDemands)
		demands.GET("/:id", h.GetDemand)
		demands.GET("/:id/quotes", h.QuotesForDemand)
	}

	quotes := rg.Group("/quotes", mw.Auth())
	{
		quotes.GET("/mine", h.QuotesBySupplier)
		quotes.GET("/:id", h.GetQuote)
	}

	rg.GET("/dashboard/counters", mw.Auth(), h.Counters)
}
