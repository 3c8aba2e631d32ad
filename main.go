package main

import (
	"github.com/musama5293/NPI-Portal-sub003/internal/config"
	"github.com/musama5293/NPI-Portal-sub003/internal/database"
	logger "github.com/musama5293/NPI-Portal-sub003/internal/logging"
	"github.com/musama5293/NPI-Portal-sub003/internal/models"
	"github.com/musama5293/NPI-Portal-sub003/internal/repository"
	"github.com/musama5293/NPI-Portal-sub003/internal/router"
	"github.com/musama5293/NPI-Portal-sub003/internal/services"

	"go.uber.org/zap"
)

func main() {
	// Initialize Logger
	log, err := logger.Init("logs")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Seed the question catalog at startup
	catalog, err := models.LoadCatalog(config.Conf.Assessment.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load question catalog", zap.Error(err))
	}
	if err := repository.SeedQuestions(catalog.Questions()); err != nil {
		log.Fatal("Failed to seed question catalog", zap.Error(err))
	}

	// Surface assignments nearing expiry in the background
	services.NewExpirySweeper(log).Start()

	// Setup router, passing the logger to it
	r := router.Setup(log)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
