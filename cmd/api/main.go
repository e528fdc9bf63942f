package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/pixelforge/pixelforge-backend/internal/config"
	"github.com/pixelforge/pixelforge-backend/internal/handler"
	"github.com/pixelforge/pixelforge-backend/internal/middleware"
	"github.com/pixelforge/pixelforge-backend/internal/models"
	"github.com/pixelforge/pixelforge-backend/internal/repository"
	"github.com/pixelforge/pixelforge-backend/internal/service"
	"github.com/pixelforge/pixelforge-backend/pkg/database"
	"github.com/pixelforge/pixelforge-backend/pkg/email"
	"github.com/pixelforge/pixelforge-backend/pkg/imagegen"
	"github.com/pixelforge/pixelforge-backend/pkg/jwt"
	"github.com/pixelforge/pixelforge-backend/pkg/logger"
	"github.com/pixelforge/pixelforge-backend/pkg/payment"
	"github.com/pixelforge/pixelforge-backend/pkg/storage"
	"github.com/pixelforge/pixelforge-backend/pkg/utils"
)

const tokenTTL = 7 * 24 * time.Hour

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logger.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.New(cfg.Database.URL)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
		&models.Generation{},
	); err != nil {
		zapLogger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	generationRepo := repository.NewGenerationRepository(db)

	// External collaborators
	gateway := payment.NewRazorpayService(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	mailer := email.NewEmailService(cfg.Email.APIKey, cfg.Email.FromAddress, cfg.Email.FromName, zapLogger)
	generator := imagegen.NewClipDropClient(cfg.ImageGen.APIKey, cfg.ImageGen.BaseURL)
	objectStorage, err := storage.NewCloudflareStorage(cfg.R2)
	if err != nil {
		zapLogger.Fatal("failed to initialize R2 storage", zap.Error(err))
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, tokenTTL)

	// Services
	authService := service.NewAuthService(userRepo, mailer, tokens, zapLogger)
	userService := service.NewUserService(userRepo)
	paymentService := service.NewPaymentService(gateway, userRepo, transactionRepo, mailer, cfg.Razorpay.Currency, zapLogger)
	imageService := service.NewImageService(userRepo, generationRepo, generator, objectStorage, zapLogger)

	// Handlers
	validator := utils.NewValidator()
	authHandler := handler.NewAuthHandler(authService, validator, zapLogger)
	userHandler := handler.NewUserHandler(userService, zapLogger)
	paymentHandler := handler.NewPaymentHandler(paymentService, validator, zapLogger)
	imageHandler := handler.NewImageHandler(imageService, validator, zapLogger)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, token",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Api Working")
	})

	authRequired := middleware.Auth(tokens)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Get("/credits", authRequired, userHandler.Credits)
	users.Post("/pay-razor", authRequired, paymentHandler.PayRazorpay)
	users.Post("/verify-razor", authRequired, paymentHandler.VerifyRazorpay)

	image := api.Group("/image", authRequired)
	image.Post("/generate-image", imageHandler.GenerateImage)
	image.Get("/generations", imageHandler.ListGenerations)

	zapLogger.Info("server starting", zap.String("port", cfg.App.Port))
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
