package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pantry-planner/internal/api/handlers"
	"pantry-planner/internal/middleware"
)

type Config struct {
	App               *fiber.App
	ReceiptHandler    handlers.ReceiptHandler
	InventoryHandler  handlers.InventoryHandler
	StatsHandler      handlers.StatsHandler
	PreferenceHandler handlers.PreferenceHandler
	SuggestionHandler handlers.SuggestionHandler
	SystemHandler     handlers.SystemHandler
	Middleware        middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.RequestIDMiddleware())
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Receipts()
	c.Items()
	c.Statistics()
	c.Preferences()
	c.Suggestions()
	c.System()
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts")
	{
		receipts.Post("", c.ReceiptHandler.IngestReceipt)
		receipts.Get("", c.ReceiptHandler.GetReceipts)
		receipts.Get("/:id", c.ReceiptHandler.GetReceiptDetail)
		receipts.Post("/:id/image", c.ReceiptHandler.UploadReceiptImage)
	}
}

func (c *Config) Items() {
	items := c.App.Group("/api/v1/items")
	{
		items.Post("", c.InventoryHandler.CreateItem)
		items.Get("", c.InventoryHandler.GetItems)
		items.Patch("/:id", c.InventoryHandler.UpdateItem)
		items.Delete("/:id", c.InventoryHandler.DeleteItem)
		items.Post("/:id/usage", c.InventoryHandler.RecordConsumption)
	}
}

func (c *Config) Statistics() {
	c.App.Get("/api/v1/statistics", c.StatsHandler.GetStatistics)
}

func (c *Config) Preferences() {
	preferences := c.App.Group("/api/v1/preferences")
	{
		preferences.Get("", c.PreferenceHandler.GetPreferences)
		preferences.Put("", c.PreferenceHandler.SetPreferences)
	}
}

func (c *Config) Suggestions() {
	suggestions := c.App.Group("/api/v1/suggestions")
	{
		suggestions.Post("/meal", c.SuggestionHandler.SuggestMeal)
		suggestions.Post("/weekly-menu", c.SuggestionHandler.SuggestWeeklyMenu)
		suggestions.Post("/shopping-list", c.SuggestionHandler.SuggestShoppingList)
	}
}

func (c *Config) System() {
	c.App.Get("/health", c.SystemHandler.Health)
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	system := c.App.Group("/api/v1/system")
	{
		system.Get("/config", c.SystemHandler.GetConfig)
		system.Post("/config/update", c.SystemHandler.UpdateConfig)
		system.Post("/test-db", c.SystemHandler.TestDB)
		system.Post("/test-ollama", c.SystemHandler.TestOllama)
		system.Get("/ollama-models", c.SystemHandler.GetOllamaModels)
		system.Post("/expiry-digest", c.SystemHandler.SendExpiryDigest)
	}
}
