package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"pantry-planner/cmd/config"
	migration "pantry-planner/cmd/database/migrate"
	appconfig "pantry-planner/internal/config"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := appconfig.Load("config.yaml")
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	store := appconfig.NewStore(cfg)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}

	if err := migration.Migrate(db, log); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	app, err := config.NewApp(db, store, log)
	if err != nil {
		log.Fatalf("building application: %v", err)
	}

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
