package handlers

import (
	"net/http"

	"github.com/arpanp11/imaginify-saas/internal/middleware"
	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/arpanp11/imaginify-saas/internal/transform"
	"github.com/gin-gonic/gin"
)

type TransformationHandler struct {
	transformationService *services.TransformationService
}

func NewTransformationHandler(transformationService *services.TransformationService) *TransformationHandler {
	return &TransformationHandler{transformationService: transformationService}
}

type StartSessionRequest struct {
	Type        string `json:"type" binding:"required"`
	PublicID    string `json:"public_id" binding:"required"`
	AspectRatio string `json:"aspect_ratio"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
}

// StartSession godoc
// @Summary Start a transformation editing session
// @Description Open a staging session seeded from the transformation type's template
// @Tags transformations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StartSessionRequest true "Transformation type, source asset and canvas"
// @Success 201 {object} StartSessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /transformations [post]
func (h *TransformationHandler) StartSession(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	sessionID, err := h.transformationService.StartSession(services.StartSessionParams{
		ClerkID:     clerkID,
		Kind:        req.Type,
		PublicID:    req.PublicID,
		AspectRatio: req.AspectRatio,
		Width:       req.Width,
		Height:      req.Height,
	})
	if err != nil {
		switch err {
		case services.ErrUnknownTransformation:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown transformation type"})
		case services.ErrUnknownAspectRatio:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown aspect ratio"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, StartSessionResponse{SessionID: sessionID})
}

type StageFieldRequest struct {
	Field string      `json:"field" binding:"required"`
	Value interface{} `json:"value"`
	// Debounce delays the edit behind the quiet window so rapid keystroke
	// streams collapse to their final value.
	Debounce bool `json:"debounce"`
}

// StageField godoc
// @Summary Stage a configuration edit
// @Description Record a field edit into the session's pending configuration
// @Tags transformations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session id"
// @Param request body StageFieldRequest true "Field edit"
// @Success 202 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transformations/{id}/config [patch]
func (h *TransformationHandler) StageField(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)
	sessionID := c.Param("id")

	var req StageFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	var err error
	if req.Debounce {
		err = h.transformationService.StageFieldDebounced(clerkID, sessionID, req.Field, req.Value)
	} else {
		err = h.transformationService.StageField(clerkID, sessionID, req.Field, req.Value)
	}

	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "staged"})
}

// Apply godoc
// @Summary Apply the pending transformation
// @Description Merge the pending configuration into the committed one and deduct the credit fee
// @Tags transformations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session id"
// @Success 200 {object} services.ApplyResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transformations/{id}/apply [post]
func (h *TransformationHandler) Apply(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)
	sessionID := c.Param("id")

	result, err := h.transformationService.Apply(clerkID, sessionID)
	if err != nil {
		switch err {
		case services.ErrInsufficientCredits:
			c.JSON(http.StatusPaymentRequired, ErrorResponse{Error: "insufficient credits"})
		case transform.ErrNothingToApply:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no pending configuration to apply"})
		default:
			h.sessionError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// EndSession godoc
// @Summary Discard an editing session
// @Tags transformations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session id"
// @Success 204 {object} nil
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transformations/{id} [delete]
func (h *TransformationHandler) EndSession(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)
	sessionID := c.Param("id")

	if err := h.transformationService.EndSession(clerkID, sessionID); err != nil {
		h.sessionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TransformationHandler) sessionError(c *gin.Context, err error) {
	switch err {
	case services.ErrSessionNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "staging session not found"})
	case services.ErrNotSessionOwner:
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "staging session belongs to another user"})
	case services.ErrUserNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
