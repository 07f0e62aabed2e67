package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/backupfleet/backupfleet/pkg/config"
	"github.com/backupfleet/backupfleet/pkg/db"
	"github.com/backupfleet/backupfleet/pkg/lifecycle"
	"github.com/backupfleet/backupfleet/pkg/logger"
	"github.com/backupfleet/backupfleet/pkg/server"
	"github.com/backupfleet/backupfleet/pkg/server/api"
)

func main() {
	configPath := flag.String("config", "/etc/backupfleet/server.json", "Path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	var cfg server.Config
	if err := config.LoadAndValidate(configPath, &cfg); err != nil {
		return err
	}

	logg := logger.New(cfg.Logging)

	database, err := db.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logg.WithError(err).Error("Failed to close database")
		}
	}()

	core := server.New(&cfg, database, logg)

	apiServer := api.NewAPIServer(core, database, logg, api.Config{
		OnlineThreshold: time.Duration(cfg.AlertThreshold),
		StaticDir:       cfg.StaticDir,
	})

	return lifecycle.RunServer(context.Background(), &lifecycle.ServerOptions{
		ListenAddr:  cfg.ListenAddr,
		ServiceName: "backupfleet-server",
		Service:     core,
		Handler:     apiServer.Router(),
		Logger:      logg,
	})
}
