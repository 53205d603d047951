package handlers

import (
	"net/http"
	"strconv"

	"github.com/arpanp11/imaginify-saas/internal/middleware"
	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/arpanp11/imaginify-saas/internal/transform"
	"github.com/gin-gonic/gin"
)

type ImageHandler struct {
	imageService *services.ImageService
}

func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

type ImageRequest struct {
	Title              string           `json:"title" binding:"required"`
	PublicID           string           `json:"public_id" binding:"required"`
	TransformationType string           `json:"transformation_type" binding:"required"`
	Width              int              `json:"width" binding:"required,gt=0"`
	Height             int              `json:"height" binding:"required,gt=0"`
	Config             transform.Config `json:"config"`
	SecureURL          string           `json:"secure_url" binding:"required"`
	AspectRatio        string           `json:"aspect_ratio"`
	Prompt             string           `json:"prompt"`
	Color              string           `json:"color"`
}

type ImageResponse struct {
	ID                 uint             `json:"id"`
	Title              string           `json:"title"`
	PublicID           string           `json:"public_id"`
	TransformationType string           `json:"transformation_type"`
	Width              int              `json:"width"`
	Height             int              `json:"height"`
	Config             transform.Config `json:"config,omitempty"`
	SecureURL          string           `json:"secure_url"`
	TransformationURL  string           `json:"transformation_url,omitempty"`
	AspectRatio        string           `json:"aspect_ratio,omitempty"`
	Prompt             string           `json:"prompt,omitempty"`
	Color              string           `json:"color,omitempty"`
	Author             string           `json:"author,omitempty"`
	CreatedAt          string           `json:"created_at"`
}

type ImageListResponse struct {
	Images     []ImageResponse `json:"images"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// AddImage godoc
// @Summary Save a transformation result
// @Description Persist a new image record with its committed configuration
// @Tags images
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ImageRequest true "Image record"
// @Success 201 {object} ImageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /images [post]
func (h *ImageHandler) AddImage(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	image, err := h.imageService.AddImage(clerkID, imageParamsFromRequest(req))
	if err != nil {
		h.imageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapImageToResponse(image))
}

// UpdateImage godoc
// @Summary Update a saved image
// @Description Update an existing image record in place; author only
// @Tags images
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image id"
// @Param request body ImageRequest true "Image record"
// @Success 200 {object} ImageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /images/{id} [put]
func (h *ImageHandler) UpdateImage(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	imageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image id"})
		return
	}

	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	image, err := h.imageService.UpdateImage(clerkID, uint(imageID), imageParamsFromRequest(req))
	if err != nil {
		h.imageError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapImageToResponse(image))
}

// GetImage godoc
// @Summary Get an image
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image id"
// @Success 200 {object} ImageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /images/{id} [get]
func (h *ImageHandler) GetImage(c *gin.Context) {
	imageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image id"})
		return
	}

	image, err := h.imageService.GetImage(uint(imageID))
	if err != nil {
		h.imageError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapImageToResponse(image))
}

// ListImages godoc
// @Summary List the authenticated user's images
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20)"
// @Success 200 {object} ImageListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /images [get]
func (h *ImageHandler) ListImages(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)
	page, limit := pagination(c)

	images, total, err := h.imageService.ListUserImages(clerkID, page, limit)
	if err != nil {
		h.imageError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildImageList(images, total, page, limit))
}

// DeleteImage godoc
// @Summary Delete an image
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Image id"
// @Success 204 {object} nil
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /images/{id} [delete]
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	imageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid image id"})
		return
	}

	if err := h.imageService.DeleteImage(clerkID, uint(imageID)); err != nil {
		h.imageError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ImageHandler) imageError(c *gin.Context, err error) {
	switch err {
	case services.ErrUserNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	case services.ErrImageNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "image not found"})
	case services.ErrNotImageAuthor:
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "image belongs to another user"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

func imageParamsFromRequest(req ImageRequest) services.ImageParams {
	return services.ImageParams{
		Title:              req.Title,
		PublicID:           req.PublicID,
		TransformationType: req.TransformationType,
		Width:              req.Width,
		Height:             req.Height,
		Config:             req.Config,
		SecureURL:          req.SecureURL,
		AspectRatio:        req.AspectRatio,
		Prompt:             req.Prompt,
		Color:              req.Color,
	}
}

func mapImageToResponse(image *models.Image) ImageResponse {
	return ImageResponse{
		ID:                 image.ID,
		Title:              image.Title,
		PublicID:           image.PublicID,
		TransformationType: image.TransformationType,
		Width:              image.Width,
		Height:             image.Height,
		Config:             image.Config,
		SecureURL:          image.SecureURL,
		TransformationURL:  image.TransformationURL,
		AspectRatio:        image.AspectRatio,
		Prompt:             image.Prompt,
		Color:              image.Color,
		Author:             image.Author.Username,
		CreatedAt:          image.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func buildImageList(images []models.Image, total int64, page, limit int) ImageListResponse {
	items := make([]ImageResponse, len(images))
	for i, image := range images {
		items[i] = mapImageToResponse(&image)
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return ImageListResponse{
		Images:     items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

func pagination(c *gin.Context) (page, limit int) {
	page = 1
	limit = 20

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	return page, limit
}
