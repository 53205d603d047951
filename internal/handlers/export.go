package handlers

import (
	"net/http"

	"github.com/arpanp11/imaginify-saas/internal/middleware"
	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type VerifyExportResponse struct {
	Valid bool `json:"valid"`
}

// ExportPurchases godoc
// @Summary Export purchase history
// @Description Export the user's purchase history with a cryptographic signature
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.PurchaseExport
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/export [get]
func (h *ExportHandler) ExportPurchases(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	export, err := h.exportService.ExportPurchases(clerkID)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, export)
}

// VerifyExport godoc
// @Summary Verify a purchase export signature
// @Description Verify the cryptographic signature of an exported purchase history
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body services.PurchaseExport true "Export data with signature"
// @Success 200 {object} VerifyExportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/verify [post]
func (h *ExportHandler) VerifyExport(c *gin.Context) {
	var exportData services.PurchaseExport
	if err := c.ShouldBindJSON(&exportData); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	valid, err := h.exportService.VerifyExport(&exportData)
	if err != nil {
		if err == services.ErrInvalidExport {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid export data"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, VerifyExportResponse{Valid: valid})
}
