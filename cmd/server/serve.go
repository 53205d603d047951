package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/arpanp11/imaginify-saas/docs"
	"github.com/arpanp11/imaginify-saas/internal/config"
	"github.com/arpanp11/imaginify-saas/internal/database"
	"github.com/arpanp11/imaginify-saas/internal/handlers"
	"github.com/arpanp11/imaginify-saas/internal/media"
	"github.com/arpanp11/imaginify-saas/internal/middleware"
	"github.com/arpanp11/imaginify-saas/internal/repository"
	"github.com/arpanp11/imaginify-saas/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Imaginify API server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServer(); err != nil {
			log.Fatal(err)
		}
	},
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	imageRepo := repository.NewImageRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	giftLinkRepo := repository.NewGiftLinkRepository(db)

	urlBuilder := media.NewURLBuilder(cfg.Media.CloudName)

	userService := services.NewUserService(userRepo)
	creditService := services.NewCreditService(userRepo, db)
	transactionService := services.NewTransactionService(transactionRepo, userRepo, creditService, db)
	checkoutService := services.NewCheckoutService(cfg.Stripe.SecretKey, cfg.ServerURL)
	imageService := services.NewImageService(imageRepo, userRepo, urlBuilder)
	transformationService := services.NewTransformationService(creditService, urlBuilder, services.DefaultDebounce)
	tokenService := services.NewTokenService(tokenRepo, userRepo, cfg.JWT.Secret)
	giftService := services.NewGiftService(giftLinkRepo, userRepo, creditService, db)
	exportService := services.NewExportService(userRepo, transactionRepo, cfg.ExportSigningKey)

	authMiddleware := middleware.NewAuthMiddleware(tokenService, cfg.TestMode)
	adminMiddleware := middleware.NewAdminMiddleware(cfg.AdminUsers)

	userHandler := handlers.NewUserHandler(userService)
	creditsHandler := handlers.NewCreditsHandler(creditService, transactionService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	webhookHandler := handlers.NewWebhookHandler(transactionService, userService, cfg.Stripe.WebhookSecret)
	imageHandler := handlers.NewImageHandler(imageService)
	transformationHandler := handlers.NewTransformationHandler(transformationService)
	tokenHandler := handlers.NewTokenHandler(tokenService)
	giftLinkHandler := handlers.NewGiftLinkHandler(giftService)
	exportHandler := handlers.NewExportHandler(exportService)
	adminHandler := handlers.NewAdminHandler(userRepo, transactionService, creditService)
	publicHandler := handlers.NewPublicHandler(creditService, imageService)

	router := gin.Default()

	swaggerUI := handlers.SwaggerUIWithBearerFix()
	swaggerDocs := ginSwagger.WrapHandler(swaggerFiles.Handler)
	router.GET("/swagger/*any", func(c *gin.Context) {
		switch c.Param("any") {
		case "/", "/index.html":
			swaggerUI(c)
		default:
			swaggerDocs(c)
		}
	})

	api := router.Group("/api/v1")
	{
		api.GET("/plans", publicHandler.GetPlans)
		api.GET("/total", publicHandler.GetTotalCredits)
		api.GET("/gallery", publicHandler.SearchGallery)
		api.GET("/gift/:code", giftLinkHandler.GetGiftLinkInfo)
		api.POST("/transactions/verify", exportHandler.VerifyExport)

		api.POST("/webhooks/stripe", webhookHandler.HandleStripe)
		api.POST("/webhooks/clerk", webhookHandler.HandleClerk)

		authenticated := api.Group("")
		authenticated.Use(authMiddleware.RequireAuth())
		{
			authenticated.GET("/me", userHandler.GetProfile)
			authenticated.PUT("/me", userHandler.UpdateProfile)

			authenticated.GET("/credits", creditsHandler.GetBalance)
			authenticated.GET("/transactions", creditsHandler.GetPurchaseHistory)
			authenticated.GET("/transactions/export", exportHandler.ExportPurchases)

			authenticated.POST("/checkout", checkoutHandler.CheckoutCredits)

			authenticated.POST("/transformations", transformationHandler.StartSession)
			authenticated.PATCH("/transformations/:id/config", transformationHandler.StageField)
			authenticated.POST("/transformations/:id/apply", transformationHandler.Apply)
			authenticated.DELETE("/transformations/:id", transformationHandler.EndSession)

			authenticated.POST("/images", imageHandler.AddImage)
			authenticated.GET("/images", imageHandler.ListImages)
			authenticated.GET("/images/:id", imageHandler.GetImage)
			authenticated.PUT("/images/:id", imageHandler.UpdateImage)
			authenticated.DELETE("/images/:id", imageHandler.DeleteImage)

			authenticated.POST("/tokens", tokenHandler.CreateToken)
			authenticated.GET("/tokens", tokenHandler.ListTokens)
			authenticated.DELETE("/tokens/:id", tokenHandler.DeleteToken)

			authenticated.POST("/giftlinks", giftLinkHandler.CreateGiftLink)
			authenticated.GET("/giftlinks", giftLinkHandler.ListGiftLinks)
			authenticated.DELETE("/giftlinks/:code", giftLinkHandler.CancelGiftLink)
			authenticated.POST("/gift/redeem", giftLinkHandler.RedeemGiftLink)
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth())
		admin.Use(adminMiddleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/transactions", adminHandler.ListAllTransactions)
			admin.PUT("/credits/:username", adminHandler.SetBalance)
		}
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Imaginify server on %s", addr)
	if cfg.TestMode {
		log.Println("TEST MODE ENABLED - Authentication bypassed")
	}
	return router.Run(addr)
}
