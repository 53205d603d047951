package services

import (
	"testing"
	"time"

	"github.com/arpanp11/imaginify-saas/internal/database"
	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/repository"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTokenTestDB(t *testing.T) (*gorm.DB, *repository.UserRepository, *TokenService) {
	db, err := database.Connect(":memory:")
	assert.NoError(t, err)

	err = database.Migrate(db)
	assert.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tokenService := NewTokenService(tokenRepo, userRepo, "test-secret")

	return db, userRepo, tokenService
}

func TestTokenService_GenerateAndValidate(t *testing.T) {
	_, userRepo, tokenService := setupTokenTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_token", Username: "tokenuser", Email: "token@example.com", CreditBalance: 10})

	tokenString, err := tokenService.GenerateToken("user_token", time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := tokenService.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user_token", claims.ClerkID)
	assert.Equal(t, "imaginify", claims.Issuer)
}

func TestTokenService_GenerateUnknownUser(t *testing.T) {
	_, _, tokenService := setupTokenTestDB(t)

	_, err := tokenService.GenerateToken("user_ghost", time.Hour)
	assert.Equal(t, ErrUserNotFound, err)
}

func TestTokenService_ValidateRejectsGarbage(t *testing.T) {
	_, _, tokenService := setupTokenTestDB(t)

	_, err := tokenService.ValidateToken("not-a-jwt")
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenService_ValidateRejectsWrongSecret(t *testing.T) {
	_, userRepo, tokenService := setupTokenTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_token", Username: "tokenuser", Email: "token@example.com", CreditBalance: 10})

	tokenString, err := tokenService.GenerateToken("user_token", time.Hour)
	assert.NoError(t, err)

	other := NewTokenService(tokenService.tokenRepo, userRepo, "other-secret")
	_, err = other.ValidateToken(tokenString)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenService_ExpiredToken(t *testing.T) {
	db, userRepo, tokenService := setupTokenTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_token", Username: "tokenuser", Email: "token@example.com", CreditBalance: 10})

	tokenString, err := tokenService.GenerateToken("user_token", time.Hour)
	assert.NoError(t, err)

	// The JWT itself is still valid; only the stored record has lapsed.
	err = db.Model(&models.APIToken{}).
		Where("token = ?", tokenString).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	assert.NoError(t, err)

	_, err = tokenService.ValidateToken(tokenString)
	assert.Equal(t, ErrExpiredToken, err)
}

func TestTokenService_DeletedTokenIsInvalid(t *testing.T) {
	_, userRepo, tokenService := setupTokenTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_token", Username: "tokenuser", Email: "token@example.com", CreditBalance: 10})

	tokenString, err := tokenService.GenerateToken("user_token", time.Hour)
	assert.NoError(t, err)

	tokens, err := tokenService.ListUserTokens("user_token")
	assert.NoError(t, err)
	assert.Len(t, tokens, 1)

	err = tokenService.DeleteToken(tokens[0].ID, "user_token")
	assert.NoError(t, err)

	_, err = tokenService.ValidateToken(tokenString)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestTokenService_ListIsScopedToUser(t *testing.T) {
	_, userRepo, tokenService := setupTokenTestDB(t)

	userRepo.Create(&models.User{ClerkID: "user_a", Username: "usera", Email: "a@example.com", CreditBalance: 10})
	userRepo.Create(&models.User{ClerkID: "user_b", Username: "userb", Email: "b@example.com", CreditBalance: 10})

	_, err := tokenService.GenerateToken("user_a", time.Hour)
	assert.NoError(t, err)
	_, err = tokenService.GenerateToken("user_a", time.Hour)
	assert.NoError(t, err)
	_, err = tokenService.GenerateToken("user_b", time.Hour)
	assert.NoError(t, err)

	tokensA, err := tokenService.ListUserTokens("user_a")
	assert.NoError(t, err)
	assert.Len(t, tokensA, 2)

	tokensB, err := tokenService.ListUserTokens("user_b")
	assert.NoError(t, err)
	assert.Len(t, tokensB, 1)
}
