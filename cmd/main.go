package main

import (
	"Hostel-Food-Ordering/cmd/config"
	migration "Hostel-Food-Ordering/cmd/database/migrate"
	"Hostel-Food-Ordering/internal/utils"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrate := flag.Bool("migrate", false, "run database migrations before serving")
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if *migrate || *migrateOnly {
		if err := migration.Migrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		if *migrateOnly {
			return
		}
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("app: %v", err)
	}

	addr := utils.GetConfig("HTTP_ADDR")
	go func() {
		log.Infof("HTTP listening at %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
