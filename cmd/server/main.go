package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/egspgoi/projectverse/internal/api"
	"github.com/egspgoi/projectverse/internal/client"
	"github.com/egspgoi/projectverse/internal/config"
	"github.com/egspgoi/projectverse/internal/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system env")
	}

	cfg := config.Load()
	if cfg.SessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET must be set")
	}

	cli := client.New(cfg.APIBaseURL, cfg.UpstreamTimeout)

	monitor := cron.NewMonitor()
	cron.StartJobs(cfg.HealthCron, cli, monitor)

	r := api.SetupRouter(cfg, cli, monitor)

	log.Println("✅ Portal running on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Server stopped:", err)
	}
}
