package repository

import (
	"errors"

	"github.com/arpanp11/imaginify-saas/internal/models"
	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(image *models.Image) error {
	return r.db.Create(image).Error
}

func (r *ImageRepository) FindByID(id uint) (*models.Image, error) {
	var image models.Image
	err := r.db.Preload("Author").First(&image, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) FindByAuthorID(authorID uint, page, limit int) ([]models.Image, int64, error) {
	var images []models.Image
	var total int64

	query := r.db.Model(&models.Image{}).Where("author_id = ?", authorID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&images).Error

	return images, total, err
}

func (r *ImageRepository) Search(searchQuery string, page, limit int) ([]models.Image, int64, error) {
	var images []models.Image
	var total int64

	query := r.db.Model(&models.Image{}).Preload("Author")
	if searchQuery != "" {
		pattern := "%" + searchQuery + "%"
		query = query.Where("title LIKE ? OR prompt LIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&images).Error

	return images, total, err
}

func (r *ImageRepository) Update(image *models.Image) error {
	return r.db.Save(image).Error
}

func (r *ImageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Image{}, id).Error
}
