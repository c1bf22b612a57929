package handlers

import (
	"errors"
	"net/http"

	request "catering_quotes/internal/adapter/http/dto/request"
	response "catering_quotes/internal/adapter/http/dto/response"
	"catering_quotes/internal/domain/pricing"
	"catering_quotes/internal/domain/proposal"
	"catering_quotes/internal/usecase"
	"catering_quotes/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuotePayload  = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
	errInvalidStatusPayload = pkg.NewDomainErrorSimple("INVALID_STATUS_INPUT", "Invalid status payload", http.StatusBadRequest)
)

// QuoteHandler handles HTTP requests for quote pricing and lifecycle.
//
// Preview and Submit both price the form against the currently-loaded catalog;
// Submit additionally snapshots the result into a persisted draft quote.

type QuoteHandler struct {
	quotes  usecase.IQuoteUseCase
	catalog usecase.ICatalogUseCase
}

func NewQuoteHandler(quotes usecase.IQuoteUseCase, catalog usecase.ICatalogUseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, catalog: catalog}
}

// PreviewQuote prices an event form without persisting anything. A
// non-positive guest count yields the all-zero breakdown, not an error.
func (h *QuoteHandler) PreviewQuote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	catalog, source, err := h.catalog.Get(c.Request.Context())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result := pricing.Calculate(payload.ToEventForm(), catalog, catalog.Settings)
	c.JSON(http.StatusOK, response.FromPricingResult(result, source))
}

// SubmitQuote prices the form and persists it as a draft quote.
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	catalog, source, err := h.catalog.Get(c.Request.Context())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	form := payload.ToEventForm()
	result := pricing.Calculate(form, catalog, catalog.Settings)

	submitted, err := h.quotes.Submit(c.Request.Context(), form, result, source, catalog.Settings)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromSubmitResult(submitted))
}

// GetQuoteHistory lists all quotes newest first, after lazy auto-expiry.
func (h *QuoteHandler) GetQuoteHistory(c *gin.Context) {
	history, err := h.quotes.History(c.Request.Context())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromHistory(history))
}

// UpdateQuoteStatus applies an operator transition to a quote.
func (h *QuoteHandler) UpdateQuoteStatus(c *gin.Context) {
	var payload request.StatusUpdateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidStatusPayload.HTTPStatus, errInvalidStatusPayload.ToHTTPError())
		return
	}

	updated, err := h.quotes.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(updated))
}

// GetQuoteEmail renders the proposal email template for a quote.
func (h *QuoteHandler) GetQuoteEmail(c *gin.Context) {
	q, err := h.quotes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, proposal.BuildEmail(q))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrNoGuests):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Status transition not allowed", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
