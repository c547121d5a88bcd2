package main

import (
	"github.com/wosamar/rakuten-tools/internal/app/server"
	"github.com/wosamar/rakuten-tools/internal/config"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg.Server.LogLevel)
	server.Run(cfg)
}
