package handlers

import (
	"net/http"

	"github.com/arpanp11/imaginify-saas/internal/middleware"
	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/gin-gonic/gin"
)

type GiftLinkHandler struct {
	giftService *services.GiftService
}

func NewGiftLinkHandler(giftService *services.GiftService) *GiftLinkHandler {
	return &GiftLinkHandler{giftService: giftService}
}

type CreateGiftLinkRequest struct {
	Credits   int    `json:"credits" binding:"required,gt=0"`
	Message   string `json:"message"`
	ExpiresIn string `json:"expires_in"`
}

type GiftLinkResponse struct {
	ID           uint   `json:"id"`
	Code         string `json:"code"`
	Credits      int    `json:"credits"`
	Message      string `json:"message"`
	ExpiresAt    *int64 `json:"expires_at,omitempty"`
	RedeemedAt   *int64 `json:"redeemed_at,omitempty"`
	RedeemedBy   string `json:"redeemed_by,omitempty"`
	FromUsername string `json:"from_username"`
	Active       bool   `json:"active"`
	CreatedAt    int64  `json:"created_at"`
}

// CreateGiftLink godoc
// @Summary Create a gift link
// @Description Create a shareable gift link that escrows credits until redeemed
// @Tags giftlinks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateGiftLinkRequest true "Gift link creation request"
// @Success 200 {object} GiftLinkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /giftlinks [post]
func (h *GiftLinkHandler) CreateGiftLink(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	var req CreateGiftLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	giftLink, err := h.giftService.CreateGiftLink(clerkID, req.Credits, req.Message, req.ExpiresIn)
	if err != nil {
		switch err {
		case services.ErrInvalidCredits:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid credit amount"})
		case services.ErrUserNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		case services.ErrInsufficientCredits:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "insufficient credits"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, mapGiftLinkToResponse(giftLink))
}

// ListGiftLinks godoc
// @Summary List user's gift links
// @Description Get all gift links created by the authenticated user
// @Tags giftlinks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} GiftLinkResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /giftlinks [get]
func (h *GiftLinkHandler) ListGiftLinks(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	giftLinks, err := h.giftService.ListGiftLinks(clerkID)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := make([]GiftLinkResponse, len(giftLinks))
	for i, gl := range giftLinks {
		response[i] = mapGiftLinkToResponse(&gl)
	}

	c.JSON(http.StatusOK, response)
}

// CancelGiftLink godoc
// @Summary Cancel a gift link
// @Description Deactivate a gift link and refund the escrowed credits if not redeemed
// @Tags giftlinks
// @Produce json
// @Security BearerAuth
// @Param code path string true "Gift Link Code"
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /giftlinks/{code} [delete]
func (h *GiftLinkHandler) CancelGiftLink(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)
	code := c.Param("code")

	err := h.giftService.CancelGiftLink(code, clerkID)
	if err != nil {
		switch err {
		case services.ErrGiftLinkNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "gift link not found"})
		case services.ErrUserNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		case services.ErrNotGiftLinkOwner:
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "gift link belongs to another user"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "gift link cancelled successfully"})
}

// GetGiftLinkInfo godoc
// @Summary Get gift link information
// @Description Get details about a gift link by code (public endpoint)
// @Tags giftlinks
// @Produce json
// @Param code path string true "Gift Link Code"
// @Success 200 {object} GiftLinkResponse
// @Failure 404 {object} ErrorResponse
// @Router /gift/{code} [get]
func (h *GiftLinkHandler) GetGiftLinkInfo(c *gin.Context) {
	code := c.Param("code")

	giftLink, err := h.giftService.GetGiftLinkByCode(code)
	if err != nil {
		if err == services.ErrGiftLinkNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "gift link not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapGiftLinkToResponse(giftLink))
}

type RedeemGiftLinkRequest struct {
	Code string `json:"code" binding:"required"`
}

// RedeemGiftLink godoc
// @Summary Redeem a gift link
// @Description Redeem a gift link and grant the escrowed credits to the authenticated user
// @Tags giftlinks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RedeemGiftLinkRequest true "Redeem request"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /gift/redeem [post]
func (h *GiftLinkHandler) RedeemGiftLink(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	var req RedeemGiftLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.giftService.RedeemGiftLink(req.Code, clerkID)
	if err != nil {
		switch err {
		case services.ErrGiftLinkNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "gift link not found"})
		case services.ErrGiftLinkExpired:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "gift link has expired"})
		case services.ErrGiftLinkRedeemed:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "gift link already redeemed"})
		case services.ErrGiftLinkInactive:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "gift link is inactive"})
		case services.ErrCannotRedeemOwnLink:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot redeem your own gift link"})
		case services.ErrUserNotFound:
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "gift link redeemed successfully"})
}

func mapGiftLinkToResponse(gl *models.GiftLink) GiftLinkResponse {
	response := GiftLinkResponse{
		ID:           gl.ID,
		Code:         gl.Code,
		Credits:      gl.Credits,
		Message:      gl.Message,
		FromUsername: gl.FromUser.Username,
		Active:       gl.Active,
		CreatedAt:    gl.CreatedAt.Unix(),
	}

	if gl.ExpiresAt != nil {
		expiresAt := gl.ExpiresAt.Unix()
		response.ExpiresAt = &expiresAt
	}

	if gl.RedeemedAt != nil {
		redeemedAt := gl.RedeemedAt.Unix()
		response.RedeemedAt = &redeemedAt
	}

	if gl.RedeemedBy != nil {
		response.RedeemedBy = gl.RedeemedBy.Username
	}

	return response
}
