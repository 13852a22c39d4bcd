package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/auth"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/cms"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/search"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/web"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	kv, err := store.Open(envOr("DB_PATH", "data/fitlearned.db"))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer kv.Close()

	events := bus.New()
	content := cms.New(kv, events)
	if err := content.Seed(); err != nil {
		log.Fatalf("Failed to seed content: %v", err)
	}

	authSvc := auth.NewService(kv, envOr("JWT_SECRET", "your-secret-key"), events)
	if err := authSvc.EnsureAdmin(); err != nil {
		log.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	idx, err := search.Open(envOr("SEARCH_INDEX_PATH", "data/fitlearned.bleve"), content)
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer idx.Close()
	if err := idx.Rebuild(); err != nil {
		log.Fatalf("Failed to build search index: %v", err)
	}
	go idx.Watch(ctx, events)

	pollInterval := 2 * time.Second
	if raw := os.Getenv("SYNC_POLL_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid SYNC_POLL_INTERVAL: %v", err)
		}
		pollInterval = parsed
	}
	watcher := bus.NewWatcher(kv, events, pollInterval)
	go watcher.Run(ctx)

	// Cross-instance sync is optional. Without Redis each process still
	// notices external writes through the revision watcher.
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unreachable, running without change bridge: %v", err)
		} else {
			bridge := bus.NewBridge(client, events, uuid.NewString())
			go bridge.Run(ctx)
		}
	}

	server := web.NewServer(content, authSvc, idx)
	go server.InvalidateOnChange(ctx, events)

	frontendURL := envOr("FRONTEND_URL", "http://localhost:3000")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{frontendURL},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	handler := c.Handler(server.Handler())

	port := envOr("PORT", "8081")
	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	fmt.Println("Golang backend running on port " + port)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
