package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	yt "github.com/kkdai/youtube/v2"

	"flashtube-backend/internal/export"
	"flashtube-backend/internal/models"
	"flashtube-backend/internal/services"
)

func main() {
	var (
		url        = flag.String("url", "", "YouTube video URL (required)")
		cards      = flag.Int("cards", 10, "number of flashcards to generate (1-50)")
		difficulty = flag.String("difficulty", "mixed", "difficulty: easy, medium, hard or mixed")
		focus      = flag.String("focus", "", "optional subject focus")
		lang       = flag.String("lang", "en", "preferred caption language")
		out        = flag.String("out", ".", "output directory for JSON and HTML artifacts")
	)
	flag.Parse()

	if *url == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *cards < 1 || *cards > 50 {
		log.Fatalf("cards must be between 1 and 50")
	}
	switch *difficulty {
	case "easy", "medium", "hard", "mixed":
	default:
		log.Fatalf("difficulty must be easy, medium, hard or mixed")
	}

	godotenv.Load()
	apiKey := os.Getenv("GEMINI_API_KEY")
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-3-flash-preview"
	}

	ctx := context.Background()

	generator, err := services.NewFlashcardService(ctx, apiKey, model, 2048)
	if err != nil {
		log.Fatalf("Gemini client: %v", err)
	}
	defer generator.Close()

	httpClient := &http.Client{Timeout: 10 * time.Second}
	pages := services.NewWatchPageClient(httpClient)
	captions := services.DefaultCaptionFetcher(pages)
	metadata := services.NewMetadataFetcher(pages, &yt.Client{HTTPClient: httpClient})
	transcripts := services.NewTranscriptService(captions, metadata, nil, 0)

	fmt.Printf("Fetching transcript for %s...\n", *url)
	transcript, err := transcripts.GetTranscript(ctx, *url, *lang, false)
	if err != nil {
		log.Fatalf("transcript: %v", err)
	}
	fmt.Printf("Title: %s\n", transcript.VideoTitle)
	fmt.Printf("Language: %s, %d words, %.0fs\n", transcript.Language, transcript.WordCount, transcript.Duration)

	req := models.FlashcardRequest{
		YouTubeURL:      *url,
		NumCards:        *cards,
		DifficultyLevel: *difficulty,
		Language:        *lang,
	}
	if *focus != "" {
		req.SubjectFocus = focus
	}

	fmt.Printf("Generating %d flashcards...\n", *cards)
	flashcards, err := generator.GenerateFlashcards(ctx, transcript.FullText, req, transcript.VideoTitle)
	if err != nil {
		log.Fatalf("generation: %v", err)
	}

	for i, card := range flashcards {
		fmt.Printf("\n#%d [%s] %s\n", i+1, card.Difficulty, card.Question)
		fmt.Printf("   %s\n", card.Answer)
	}

	set := models.FlashcardSet{
		ID:               uuid.New(),
		VideoURL:         transcript.VideoURL,
		VideoTitle:       transcript.VideoTitle,
		VideoID:          transcript.VideoID,
		ChannelName:      transcript.ChannelName,
		Flashcards:       flashcards,
		CreatedAt:        time.Now().UTC(),
		TranscriptLength: len(transcript.FullText),
		Language:         transcript.Language,
	}
	if transcript.Duration > 0 {
		d := int(transcript.Duration)
		set.Duration = &d
	}

	jsonPath, err := export.WriteJSON(*out, set, transcript.FullText)
	if err != nil {
		log.Fatalf("write JSON: %v", err)
	}
	fmt.Printf("\nSaved %s\n", jsonPath)

	htmlPath, err := export.WriteHTML(*out, set, transcript.FullText)
	if err != nil {
		log.Fatalf("write HTML: %v", err)
	}
	fmt.Printf("Saved %s\n", htmlPath)
}
