package handlers

import (
	"net/http"

	request "catering_quotes/internal/adapter/http/dto/request"
	response "catering_quotes/internal/adapter/http/dto/response"
	"catering_quotes/internal/usecase"
	"catering_quotes/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidCatalogPayload = pkg.NewDomainErrorSimple("INVALID_CATALOG_INPUT", "Invalid catalog payload", http.StatusBadRequest)

// CatalogHandler exposes the pricing catalog for admin tooling.

type CatalogHandler struct {
	usecase usecase.ICatalogUseCase
}

func NewCatalogHandler(uc usecase.ICatalogUseCase) *CatalogHandler {
	return &CatalogHandler{usecase: uc}
}

func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	catalog, source, err := h.usecase.Get(c.Request.Context())
	if err != nil {
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCatalog(catalog, source))
}

// SaveCatalog replaces the stored catalog. The write is batch-or-nothing: a
// failure leaves the previous catalog fully intact.
func (h *CatalogHandler) SaveCatalog(c *gin.Context) {
	var payload request.CatalogSaveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCatalogPayload.HTTPStatus, errInvalidCatalogPayload.ToHTTPError())
		return
	}

	saved, source, err := h.usecase.Save(c.Request.Context(), payload.ToRawCatalog())
	if err != nil {
		appErr := pkg.NewDomainError("CATALOG_SAVE_FAILED", "Failed to save catalog", err, http.StatusBadGateway)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromCatalog(saved, source))
}
