package services

import (
	"errors"

	"github.com/arpanp11/imaginify-saas/internal/media"
	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/repository"
	"github.com/arpanp11/imaginify-saas/internal/transform"
)

var (
	ErrImageNotFound  = errors.New("image not found")
	ErrNotImageAuthor = errors.New("image belongs to another user")
)

type ImageService struct {
	imageRepo  *repository.ImageRepository
	userRepo   *repository.UserRepository
	urlBuilder *media.URLBuilder
}

func NewImageService(imageRepo *repository.ImageRepository, userRepo *repository.UserRepository, urlBuilder *media.URLBuilder) *ImageService {
	return &ImageService{
		imageRepo:  imageRepo,
		userRepo:   userRepo,
		urlBuilder: urlBuilder,
	}
}

type ImageParams struct {
	Title              string
	PublicID           string
	TransformationType string
	Width              int
	Height             int
	Config             transform.Config
	SecureURL          string
	AspectRatio        string
	Prompt             string
	Color              string
}

// AddImage persists a transformation result for the authenticated user. The
// derived transformation URL is rebuilt from the committed configuration so
// the stored record is self-contained.
func (s *ImageService) AddImage(clerkID string, params ImageParams) (*models.Image, error) {
	author, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	image := &models.Image{
		Title:              params.Title,
		PublicID:           params.PublicID,
		TransformationType: params.TransformationType,
		Width:              params.Width,
		Height:             params.Height,
		Config:             params.Config,
		SecureURL:          params.SecureURL,
		AspectRatio:        params.AspectRatio,
		Prompt:             params.Prompt,
		Color:              params.Color,
		AuthorID:           author.ID,
	}

	if len(params.Config) > 0 {
		image.TransformationURL = s.urlBuilder.TransformationURL(
			params.PublicID, params.Width, params.Height, params.Config)
	}

	if err := s.imageRepo.Create(image); err != nil {
		return nil, err
	}

	return image, nil
}

// UpdateImage mutates an existing record in place; only the owning author
// may do so.
func (s *ImageService) UpdateImage(clerkID string, imageID uint, params ImageParams) (*models.Image, error) {
	author, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	if image.AuthorID != author.ID {
		return nil, ErrNotImageAuthor
	}

	image.Title = params.Title
	image.PublicID = params.PublicID
	image.TransformationType = params.TransformationType
	image.Width = params.Width
	image.Height = params.Height
	image.Config = params.Config
	image.SecureURL = params.SecureURL
	image.AspectRatio = params.AspectRatio
	image.Prompt = params.Prompt
	image.Color = params.Color

	if len(params.Config) > 0 {
		image.TransformationURL = s.urlBuilder.TransformationURL(
			params.PublicID, params.Width, params.Height, params.Config)
	} else {
		image.TransformationURL = ""
	}

	if err := s.imageRepo.Update(image); err != nil {
		return nil, err
	}

	return image, nil
}

func (s *ImageService) GetImage(imageID uint) (*models.Image, error) {
	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrImageNotFound
	}
	return image, nil
}

func (s *ImageService) ListUserImages(clerkID string, page, limit int) ([]models.Image, int64, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, ErrUserNotFound
	}

	return s.imageRepo.FindByAuthorID(user.ID, page, limit)
}

func (s *ImageService) SearchImages(query string, page, limit int) ([]models.Image, int64, error) {
	return s.imageRepo.Search(query, page, limit)
}

func (s *ImageService) DeleteImage(clerkID string, imageID uint) error {
	author, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return err
	}
	if author == nil {
		return ErrUserNotFound
	}

	image, err := s.imageRepo.FindByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return ErrImageNotFound
	}
	if image.AuthorID != author.ID {
		return ErrNotImageAuthor
	}

	return s.imageRepo.Delete(imageID)
}
