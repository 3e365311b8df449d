package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/clickhouse"
	"gorm.io/gorm"

	"stockpulse/feed/server/config"
	"stockpulse/feed/server/internal/handler"
	"stockpulse/feed/server/internal/repository"
	"stockpulse/feed/server/internal/router"
	"stockpulse/feed/server/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(clickhouse.Open(cfg.ClickHouseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	migrateFlag := flag.Bool("migrate", false, "Run database migrations and exit")
	flag.Parse()

	if *migrateFlag {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get sql.DB: %v", err)
		}
		if err := goose.SetDialect("clickhouse"); err != nil {
			log.Fatalf("Goose: failed to set dialect: %v", err)
		}
		log.Println("Running database migrations...")
		if err := goose.Up(sqlDB, "server/migrations"); err != nil {
			log.Fatalf("Goose migration failed: %v", err)
		}
	}

	updateRepo := repository.NewGormUpdateRepository(db)
	updateService := service.NewUpdatesService(updateRepo, cfg.Symbols)
	updateHandler := handler.NewUpdateHandler(updateService)

	routerConfig := &router.Config{
		UpdateHandler: updateHandler,
	}

	router := router.NewRouter(routerConfig)

	router.Run(fmt.Sprintf(":%s", cfg.ServerPort))
}
