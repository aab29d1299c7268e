package main

import (
	"flag"
	"fmt"

	"github.com/fencetrade/signalboard/internal/config"
	"github.com/fencetrade/signalboard/internal/database"
	"github.com/fencetrade/signalboard/internal/handlers"
	"github.com/fencetrade/signalboard/internal/logger"
	"github.com/fencetrade/signalboard/internal/metrics"
	"github.com/fencetrade/signalboard/internal/routes"
	"github.com/fencetrade/signalboard/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// .env carries DISCORD_WEBHOOK_URL and friends on deployments
	// without a process manager; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config from %s: %v", *configFile, err))
	}

	logger.Setup(cfg.Log)
	log := logger.Get()

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	log.Infof("Database ready at %s", cfg.Database.DSN)

	metrics.Register()

	// Set up services
	signalService := services.NewSignalService(db)
	notifyService := services.NewNotifyService(cfg.Webhook)
	verificationService := services.NewVerificationService(db, notifyService)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	routes.SetupRoutes(r, cfg,
		handlers.NewSignalHandler(signalService),
		handlers.NewVerifyHandler(verificationService))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Infof("Starting server on %s", addr)
	log.Infof("Signal ingestion endpoint: http://%s/api/v1/signals", addr)
	log.Infof("Verification endpoint: http://%s/api/v1/verify", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
