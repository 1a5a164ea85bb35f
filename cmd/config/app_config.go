package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pantry-planner/internal/api/handlers"
	"pantry-planner/internal/api/routes"
	appconfig "pantry-planner/internal/config"
	"pantry-planner/internal/middleware"
	"pantry-planner/internal/utils"
	"pantry-planner/internal/utils/storage"
	"pantry-planner/pkg/inventory"
	"pantry-planner/pkg/preference"
	"pantry-planner/pkg/receipt"
	"pantry-planner/pkg/stats"
	"pantry-planner/pkg/suggestion"
)

func NewApp(db *gorm.DB, cfg *appconfig.Store, log *logrus.Logger) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3, err := storage.NewAwsS3(cfg.Current())
	if err != nil {
		return nil, err
	}
	ollama := suggestion.NewOllamaClient(cfg)

	// Repository
	receiptRepository := receipt.NewReceiptRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	statsRepository := stats.NewStatsRepository(db)
	preferenceRepository := preference.NewPreferenceRepository(db)

	// Service
	receiptService := receipt.NewReceiptService(receiptRepository, s3)
	inventoryService := inventory.NewInventoryService(inventoryRepository, cfg)
	statsService := stats.NewStatsService(statsRepository)
	preferenceService := preference.NewPreferenceService(preferenceRepository)
	suggestionService := suggestion.NewSuggestionService(
		inventoryRepository,
		preferenceRepository,
		ollama,
		log,
	)

	// Handler
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	statsHandler := handlers.NewStatsHandler(statsService)
	preferenceHandler := handlers.NewPreferenceHandler(preferenceService, validator)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)
	systemHandler := handlers.NewSystemHandler(cfg, db, ollama, inventoryService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		ReceiptHandler:    receiptHandler,
		InventoryHandler:  inventoryHandler,
		StatsHandler:      statsHandler,
		PreferenceHandler: preferenceHandler,
		SuggestionHandler: suggestionHandler,
		SystemHandler:     systemHandler,
		Middleware:        middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
