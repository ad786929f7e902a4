package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"atelier-backend/internal/config"
	"atelier-backend/internal/handlers"
	"atelier-backend/internal/imaging"
	"atelier-backend/internal/logging"
	"atelier-backend/internal/services"
	"atelier-backend/internal/storage"
	"atelier-backend/internal/store"
	"atelier-backend/internal/store/memstore"
	"atelier-backend/internal/store/mongostore"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var st store.Store
	switch cfg.StoreMode {
	case config.StoreMongo:
		st, err = mongostore.New(ctx, cfg.MongoURL, cfg.DBName)
		if err != nil {
			log.Fatalf("Failed to connect to store: %v", err)
		}
	case config.StoreMemory:
		st = memstore.New()
	default:
		log.Fatalf("Unknown STORE_MODE: %s", cfg.StoreMode)
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			logging.LogKV("error", "store close failed", map[string]interface{}{"reason": err.Error()})
		}
	}()

	backend, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}

	coord := services.NewCoordinator(st)
	validator := storage.NewValidator(cfg.AllowedExtensions, cfg.MaxUploadMB)
	codec := imaging.Codec{
		MaxWidth:  cfg.ImageMaxWidth,
		MaxHeight: cfg.ImageMaxHeight,
		Quality:   cfg.ImageQuality,
	}
	images := services.NewImageService(coord, validator, codec, backend, cfg.ImageOptimization)

	router := handlers.NewRouter(cfg, st, coord, images)

	logging.LogKV("info", "server starting", map[string]interface{}{
		"port":         cfg.Port,
		"environment":  cfg.Environment,
		"store_mode":   cfg.StoreMode,
		"storage_mode": cfg.StorageMode,
	})

	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
