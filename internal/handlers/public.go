package handlers

import (
	"net/http"

	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	creditService *services.CreditService
	imageService  *services.ImageService
}

func NewPublicHandler(creditService *services.CreditService, imageService *services.ImageService) *PublicHandler {
	return &PublicHandler{
		creditService: creditService,
		imageService:  imageService,
	}
}

type PlanResponse struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Credits int     `json:"credits"`
}

type TotalCreditsResponse struct {
	TotalCredits int64 `json:"total_credits"`
}

// GetPlans godoc
// @Summary List credit plans
// @Description Get the catalog of purchasable credit plans
// @Tags public
// @Accept json
// @Produce json
// @Success 200 {array} PlanResponse
// @Router /plans [get]
func (h *PublicHandler) GetPlans(c *gin.Context) {
	plans := services.Plans()

	response := make([]PlanResponse, len(plans))
	for i, plan := range plans {
		response[i] = PlanResponse{
			Name:    plan.Name,
			Price:   plan.Price,
			Credits: plan.Credits,
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetTotalCredits godoc
// @Summary Get total credits
// @Description Get the total number of credits held across all users
// @Tags public
// @Accept json
// @Produce json
// @Success 200 {object} TotalCreditsResponse
// @Failure 500 {object} ErrorResponse
// @Router /total [get]
func (h *PublicHandler) GetTotalCredits(c *gin.Context) {
	total, err := h.creditService.GetTotalCredits()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TotalCreditsResponse{
		TotalCredits: total,
	})
}

// SearchGallery godoc
// @Summary Search the image gallery
// @Description Search saved images by title or prompt with pagination
// @Tags public
// @Accept json
// @Produce json
// @Param search query string false "Search query for title and prompt"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20)"
// @Success 200 {object} ImageListResponse
// @Failure 500 {object} ErrorResponse
// @Router /gallery [get]
func (h *PublicHandler) SearchGallery(c *gin.Context) {
	search := c.DefaultQuery("search", "")
	page, limit := pagination(c)

	images, total, err := h.imageService.SearchImages(search, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, buildImageList(images, total, page, limit))
}
