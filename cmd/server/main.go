package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tiendafon/backend/config"
	httpDelivery "github.com/tiendafon/backend/internal/delivery/http"
	"github.com/tiendafon/backend/internal/infrastructure/cache"
	"github.com/tiendafon/backend/internal/infrastructure/catalog"
	"github.com/tiendafon/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting TiendaFon Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Catalog cache TTL: %s", cfg.Cache.TTL)

	catalogClient := catalog.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}

	log.Printf("Catalog API: %s", cfg.Catalog.BaseURL)

	// Initialize usecase layer
	assistant := usecase.NewAssistantService(
		memoryCache,
		catalogClient,
		usecase.AssistantConfig{
			CatalogTTL:          cfg.Cache.TTL,
			AutoAcceptThreshold: cfg.Matching.AutoAcceptThreshold,
			ConfirmThreshold:    cfg.Matching.ConfirmThreshold,
			MaxSuggestions:      cfg.Matching.MaxSuggestions,
			EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
		},
	)

	log.Printf("Matching: accept>=%d, confirm>=%d, suggestions=%d, debug=%v",
		cfg.Matching.AutoAcceptThreshold,
		cfg.Matching.ConfirmThreshold,
		cfg.Matching.MaxSuggestions,
		cfg.Matching.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(assistant)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
