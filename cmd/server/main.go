package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	yt "github.com/kkdai/youtube/v2"

	"flashtube-backend/internal/config"
	"flashtube-backend/internal/database"
	"flashtube-backend/internal/handlers"
	"flashtube-backend/internal/router"
	"flashtube-backend/internal/services"
)

func main() {
	log.Println("Starting FlashTube backend...")

	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Println("✓ Redis connected (transcript cache enabled)")
	} else {
		log.Println("– Redis not configured, transcript cache disabled")
	}

	flashcardService, err := services.NewFlashcardService(
		context.Background(),
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		cfg.GeminiMaxOutputTokens,
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer flashcardService.Close()
	log.Println("✓ Gemini client initialized")

	httpClient := &http.Client{Timeout: cfg.FetchTimeout}
	pages := services.NewWatchPageClient(httpClient)
	captions := services.DefaultCaptionFetcher(pages)
	metadata := services.NewMetadataFetcher(pages, &yt.Client{HTTPClient: httpClient})
	transcripts := services.NewTranscriptService(captions, metadata, redisClient, cfg.TranscriptCacheTTL)

	flashcardHandler := handlers.NewFlashcardHandler(transcripts, flashcardService)
	transcriptHandler := handlers.NewTranscriptHandler(transcripts)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(flashcardHandler, transcriptHandler, cfg.FrontendURL),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("✓ Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("✗ Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("✗ Graceful shutdown failed: %v", err)
	}
	log.Println("✓ Server stopped")
}
