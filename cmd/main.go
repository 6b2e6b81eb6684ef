package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Foodgram-Backend/cmd/config"
	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/internal/utils/storage"
)

func main() {
	seedPath := flag.String("seed", "", "load ingredients from a JSON file and exit")
	flag.Parse()

	if err := utils.LoadConfig(); err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})

	db, err := config.ConnectDB()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect database")
	}

	if err := migration.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	if *seedPath != "" {
		if _, err := migration.SeedIngredients(db, *seedPath); err != nil {
			logging.Fatal().Err(err).Str("path", *seedPath).Msg("failed to seed ingredients")
		}
		return
	}

	s3, err := storage.NewAwsS3(context.Background())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to configure object storage")
	}

	accessLog, err := config.OpenAccessLog(utils.GetConfig("ACCESS_LOG"))
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open access log")
	}
	defer accessLog.Close()

	app, err := config.NewApp(db, s3, accessLog)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build app")
	}

	go func() {
		addr := ":" + utils.GetConfig("APP_PORT")
		logging.Info().Str("addr", addr).Msg("server listening")
		if err := app.Listen(addr); err != nil {
			logging.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logging.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
