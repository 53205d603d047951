package services

import (
	"testing"

	"github.com/arpanp11/imaginify-saas/internal/database"
	"github.com/arpanp11/imaginify-saas/internal/media"
	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/repository"
	"github.com/arpanp11/imaginify-saas/internal/transform"
	"github.com/stretchr/testify/assert"
)

func setupImageTestDB(t *testing.T) (*repository.UserRepository, *ImageService) {
	db, err := database.Connect(":memory:")
	assert.NoError(t, err)

	err = database.Migrate(db)
	assert.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	imageService := NewImageService(imageRepo, userRepo, media.NewURLBuilder("demo"))

	return userRepo, imageService
}

func sampleImageParams() ImageParams {
	return ImageParams{
		Title:              "Restored portrait",
		PublicID:           "samples/portrait",
		TransformationType: transform.KindRestore,
		Width:              800,
		Height:             600,
		Config:             transform.Config{"restore": {"restore": true}},
		SecureURL:          "https://res.cloudinary.com/demo/image/upload/samples/portrait",
	}
}

func TestImageService_AddBuildsTransformationURL(t *testing.T) {
	userRepo, imageService := setupImageTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_alice", Username: "alice", Email: "alice@example.com", CreditBalance: 10})

	image, err := imageService.AddImage("user_alice", sampleImageParams())
	assert.NoError(t, err)
	assert.NotZero(t, image.ID)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/w_800,h_600/e_gen_restore/samples/portrait", image.TransformationURL)

	stored, err := imageService.GetImage(image.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Restored portrait", stored.Title)
	assert.Equal(t, true, stored.Config["restore"]["restore"], "config survives the round trip through the store")
}

func TestImageService_AddWithoutConfig(t *testing.T) {
	userRepo, imageService := setupImageTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_alice", Username: "alice", Email: "alice@example.com", CreditBalance: 10})

	params := sampleImageParams()
	params.Config = nil

	image, err := imageService.AddImage("user_alice", params)
	assert.NoError(t, err)
	assert.Empty(t, image.TransformationURL)
}

func TestImageService_UpdateOnlyByAuthor(t *testing.T) {
	userRepo, imageService := setupImageTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_alice", Username: "alice", Email: "alice@example.com", CreditBalance: 10})
	userRepo.Create(&models.User{ClerkID: "user_bob", Username: "bob", Email: "bob@example.com", CreditBalance: 10})

	image, err := imageService.AddImage("user_alice", sampleImageParams())
	assert.NoError(t, err)

	params := sampleImageParams()
	params.Title = "Renamed"

	_, err = imageService.UpdateImage("user_bob", image.ID, params)
	assert.Equal(t, ErrNotImageAuthor, err)

	updated, err := imageService.UpdateImage("user_alice", image.ID, params)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = imageService.UpdateImage("user_alice", 9999, params)
	assert.Equal(t, ErrImageNotFound, err)
}

func TestImageService_ListUserImagesPaginates(t *testing.T) {
	userRepo, imageService := setupImageTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_alice", Username: "alice", Email: "alice@example.com", CreditBalance: 10})

	for i := 0; i < 5; i++ {
		params := sampleImageParams()
		params.PublicID = params.PublicID + string(rune('a'+i))
		_, err := imageService.AddImage("user_alice", params)
		assert.NoError(t, err)
	}

	images, total, err := imageService.ListUserImages("user_alice", 1, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, images, 3)

	images, _, err = imageService.ListUserImages("user_alice", 2, 3)
	assert.NoError(t, err)
	assert.Len(t, images, 2)

	_, _, err = imageService.ListUserImages("user_ghost", 1, 3)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestImageService_Search(t *testing.T) {
	userRepo, imageService := setupImageTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_alice", Username: "alice", Email: "alice@example.com", CreditBalance: 10})

	sunset := sampleImageParams()
	sunset.Title = "Sunset over water"
	sunset.PublicID = "samples/sunset"
	_, err := imageService.AddImage("user_alice", sunset)
	assert.NoError(t, err)

	forest := sampleImageParams()
	forest.Title = "Forest path"
	forest.PublicID = "samples/forest"
	_, err = imageService.AddImage("user_alice", forest)
	assert.NoError(t, err)

	results, total, err := imageService.SearchImages("sunset", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, results, 1)
	assert.Equal(t, "Sunset over water", results[0].Title)
}

func TestImageService_DeleteOnlyByAuthor(t *testing.T) {
	userRepo, imageService := setupImageTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_alice", Username: "alice", Email: "alice@example.com", CreditBalance: 10})
	userRepo.Create(&models.User{ClerkID: "user_bob", Username: "bob", Email: "bob@example.com", CreditBalance: 10})

	image, err := imageService.AddImage("user_alice", sampleImageParams())
	assert.NoError(t, err)

	err = imageService.DeleteImage("user_bob", image.ID)
	assert.Equal(t, ErrNotImageAuthor, err)

	err = imageService.DeleteImage("user_alice", image.ID)
	assert.NoError(t, err)

	_, err = imageService.GetImage(image.ID)
	assert.Equal(t, ErrImageNotFound, err)
}
