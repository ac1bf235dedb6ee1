package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/logging"
	"github.com/BruksfildServices01/barber-booking/internal/sandbox"
)

func main() {

	cfg := config.Load()

	flush, err := logging.Init(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer flush()

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := sandbox.OpenDB(cfg.SandboxDSN)
	if err != nil {
		zap.S().Fatalw("failed to open database", "error", err)
	}
	if err := sandbox.Seed(db); err != nil {
		zap.S().Fatalw("failed to seed database", "error", err)
	}

	dispatcher := events.NewDispatcher(100)
	defer dispatcher.Close()
	if err := events.LogAll(dispatcher); err != nil {
		zap.S().Fatalw("failed to subscribe event log", "error", err)
	}

	r := sandbox.NewRouter(db, cfg.JWTSecret, dispatcher)

	zap.S().Infow("sandbox running",
		"addr", cfg.SandboxAddr(),
		"admin", sandbox.SeedAdminEmail,
		"customer", sandbox.SeedCustomerEmail,
		"barber", sandbox.SeedBarberEmail,
		"password", sandbox.SeedPassword,
	)
	if err := r.Run(cfg.SandboxAddr()); err != nil {
		zap.S().Fatalw("failed to start server", "error", err)
	}
}
