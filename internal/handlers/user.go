package handlers

import (
	"net/http"

	"github.com/arpanp11/imaginify-saas/internal/middleware"
	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserResponse struct {
	ID            uint   `json:"id"`
	ClerkID       string `json:"clerk_id"`
	Email         string `json:"email"`
	Username      string `json:"username"`
	Photo         string `json:"photo,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Plan          string `json:"plan"`
	CreditBalance int    `json:"credit_balance"`
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Description Get profile and credit balance for the authenticated user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /me [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	user, err := h.userService.GetUserByClerkID(clerkID)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapUserToResponse(user))
}

type UpdateProfileRequest struct {
	Username  string `json:"username"`
	Photo     string `json:"photo"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateProfile godoc
// @Summary Update the authenticated user's profile
// @Description Update profile fields, keyed by the identity-provider subject id
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUser(clerkID, services.UpdateUserParams{
		Username:  req.Username,
		Photo:     req.Photo,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, mapUserToResponse(user))
}

func mapUserToResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		ClerkID:       user.ClerkID,
		Email:         user.Email,
		Username:      user.Username,
		Photo:         user.Photo,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Plan:          user.Plan,
		CreditBalance: user.CreditBalance,
	}
}
