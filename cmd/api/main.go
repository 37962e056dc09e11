package main

import (
	"os"

	"github.com/dstcrm/dstcrm/internal/pkg/logger"
	"github.com/dstcrm/dstcrm/internal/server"
)

// @title DST CRM API
// @version 1.0
// @description Membership CRM for the DST student association: student roster, bank payment reconciliation, financial statistics and bulk mail.

// @contact.name API Support
// @contact.email podpora@dst.sk

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
