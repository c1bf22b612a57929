package routes

import (
	"catering_quotes/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes  = "/quotes"
	PathCatalog = "/catalog"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, catalogHandler *handlers.CatalogHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.SubmitQuote)
		quotes.POST("/preview", quoteHandler.PreviewQuote)
		quotes.GET("", quoteHandler.GetQuoteHistory)
		quotes.PATCH("/:id/status", quoteHandler.UpdateQuoteStatus)
		quotes.GET("/:id/email", quoteHandler.GetQuoteEmail)
	}

	catalog := rg.Group(PathCatalog)
	{
		catalog.GET("", catalogHandler.GetCatalog)
		catalog.PUT("", catalogHandler.SaveCatalog)
	}
}
