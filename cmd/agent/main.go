package main

import (
	"context"
	"flag"
	"log"

	"github.com/backupfleet/backupfleet/pkg/agent"
	"github.com/backupfleet/backupfleet/pkg/lifecycle"
	"github.com/backupfleet/backupfleet/pkg/logger"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", `C:\ProgramData\BackupFleet\agent_config.json`, "Path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Fatal(err)
	}
}

func run(configPath string) error {
	bootstrap := logger.New(logger.Config{Level: "info"})

	cfgMgr := agent.NewConfigManager(configPath, bootstrap)
	if err := cfgMgr.Load(); err != nil {
		return err
	}

	logg := logger.New(cfgMgr.Get().Logging)

	a := agent.New(cfgMgr, logg, version)
	web := agent.NewWebServer(a, logg)

	return lifecycle.RunServer(context.Background(), &lifecycle.ServerOptions{
		ListenAddr:  web.ListenAddr(),
		ServiceName: "backupfleet-agent",
		Service:     a,
		Handler:     web.Router(),
		Logger:      logg,
	})
}
