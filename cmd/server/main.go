package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"askstack/internal/config"
	"askstack/internal/database"
	"askstack/internal/engine"
	"askstack/internal/handlers"
	"askstack/internal/middleware"
	"askstack/internal/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	metrics := utils.NewMetricsCollector()

	// Pick the store implementation. Memory keeps everything in process,
	// which is handy for local runs without a MongoDB instance.
	var store database.Store
	switch cfg.Database.Type {
	case "memory":
		store = database.NewMemoryStore()
		log.Printf("Using in-memory store")
	default:
		mongo, err := database.NewMongoDB(cfg.Database.URI, cfg.Database.Name)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		store = mongo
		log.Printf("Connected to MongoDB database %q", cfg.Database.Name)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Printf("Failed to close store: %v", err)
		}
	}()

	// Initialize actor system and spawn the engine actors
	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, store, metrics)

	auth := middleware.NewAuth(cfg.Auth.JWTSecret)
	server := handlers.NewServer(system, eng, metrics, store, auth)

	corsConfig := middleware.DefaultCORSConfig(cfg.AllowedOrigins)
	handler := middleware.CORSMiddleware(corsConfig)(server.Routes())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
