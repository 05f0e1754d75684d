package main

import (
	"context"
	"log"
	"time"

	"github.com/edenzconsultants/portal-api/internal/config"
	"github.com/edenzconsultants/portal-api/internal/db"
	"github.com/edenzconsultants/portal-api/internal/httpapi"
	"github.com/edenzconsultants/portal-api/internal/httpapi/handlers"
	"github.com/edenzconsultants/portal-api/internal/store/rabbitmq"
	"github.com/edenzconsultants/portal-api/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN, cfg.SQLitePath)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := db.EnsureAdmin(gdb, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("admin bootstrap: %v", err)
		}
	}

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rds.Close()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rds.Ping(ctx); err != nil {
			log.Printf("redis unavailable addr=%s err=%v (chat rate limiting disabled)", cfg.RedisAddr, err)
		}
		cancel()
	}

	// The broker is optional: without it only the async chat path degrades.
	var rabbit handlers.JobPublisher
	if pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue); err != nil {
		log.Printf("rabbitmq unavailable url=%s err=%v (async chat disabled)", cfg.RabbitURL, err)
	} else {
		rabbit = pub
		defer pub.Close()
	}

	r := httpapi.NewRouter(gdb, cfg, rds, rabbit)

	log.Printf("server listening addr=%s provider=%s", cfg.HTTPAddr, cfg.AIProvider)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
