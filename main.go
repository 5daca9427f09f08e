package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ratehub/internal/handlers"
	"ratehub/internal/middleware"
	"ratehub/internal/models"
	"ratehub/internal/repositories"
	"ratehub/internal/services"
	"ratehub/internal/validation"
	"ratehub/pkg/logger"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "ratehub.db")
	viper.SetDefault("JWT_SECRET", "dev-secret")
	viper.SetDefault("ADMIN_EMAIL", "admin@ratehub.local")
	viper.SetDefault("ADMIN_PASSWORD", "Admin@1234")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	appEnv := viper.GetString("APP_ENV")

	log := logger.New("ratehub", appEnv)
	if viper.GetString("JWT_SECRET") == "dev-secret" && appEnv != "development" {
		log.Warn("JWT_SECRET is the development default")
	}

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_URL"), viper.GetString("SQLITE_PATH"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Store{}, &models.Rating{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	// --- Services ---
	rules := validation.DefaultRules()
	authService := services.NewAuthService(userRepo, storeRepo, rules, viper.GetString("JWT_SECRET"), log)
	userService := services.NewUserService(userRepo, storeRepo, ratingRepo, rules)
	storeService := services.NewStoreService(storeRepo, userRepo, ratingRepo, rules)
	ratingService := services.NewRatingService(ratingRepo, storeRepo, rules)

	seedAdmin(userRepo, log)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(userService, storeService)
	storeHandler := handlers.NewStoreHandler(storeService, ratingService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	ownerHandler := handlers.NewOwnerHandler(storeService, ratingService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	api := app.Group("/api")
	authRequired := middleware.AuthRequired(authService)

	authHandler.RegisterRoutes(api, authRequired)
	adminHandler.RegisterRoutes(api, authRequired)
	storeHandler.RegisterRoutes(api, authRequired)
	ratingHandler.RegisterRoutes(api, authRequired)
	ownerHandler.RegisterRoutes(api, authRequired)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Infof("Starting server on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
}

// openDatabase connects to Postgres when DATABASE_URL is set and falls
// back to a local SQLite file otherwise. TranslateError makes unique
// constraint violations come back as gorm.ErrDuplicatedKey on both.
func openDatabase(databaseURL, sqlitePath string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if databaseURL != "" {
		return gorm.Open(postgres.Open(databaseURL), cfg)
	}
	return gorm.Open(sqlite.Open(sqlitePath+"?_fk=1"), cfg)
}

// seedAdmin creates the default admin account when no user holds that
// email yet, so a fresh deployment is manageable out of the box.
func seedAdmin(userRepo repositories.UserRepository, log *logrus.Logger) {
	email := viper.GetString("ADMIN_EMAIL")
	if _, err := userRepo.GetByEmail(email); err == nil {
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		log.Errorf("Failed to look up admin account: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(viper.GetString("ADMIN_PASSWORD")), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("Failed to hash admin password: %v", err)
		return
	}
	admin := &models.User{
		Name:     "System Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Errorf("Failed to seed admin account: %v", err)
		return
	}
	log.WithFields(logrus.Fields{"email": email}).Info("seeded default admin account")
}
