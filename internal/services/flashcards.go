package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"flashtube-backend/internal/models"
)

// maxTranscriptChars bounds prompt size regardless of video length.
const maxTranscriptChars = 8000

const flashcardSystemPrompt = `You are an expert educational content creator specializing in creating effective flashcards for learning and retention.

Your task is to analyze video transcripts and create high-quality flashcards that:
1. Test key concepts and important information from the content
2. Are clear, concise, and unambiguous
3. Follow spaced repetition best practices
4. Include a mix of factual recall, conceptual understanding, and application questions
5. Have appropriate difficulty levels

You must respond with valid JSON in the following format:
{
    "flashcards": [
        {
            "question": "Clear, specific question",
            "answer": "Concise, accurate answer",
            "difficulty": "easy|medium|hard",
            "topic": "Main topic or category",
            "explanation": "Optional additional context or explanation"
        }
    ]
}

Guidelines:
- Questions should be specific and have clear answers
- Avoid yes/no questions unless they test important facts
- Include 'why' and 'how' questions for deeper understanding
- Answers should be concise but complete
- Add explanations for complex topics
- Ensure factual accuracy based on the transcript content`

// FlashcardService turns an assembled transcript into validated
// flashcards via the Gemini completion API.
type FlashcardService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewFlashcardService builds the Gemini client. A missing API key fails
// here, before any network call is made.
func NewFlashcardService(ctx context.Context, apiKey, modelName string, maxOutputTokens int) (*FlashcardService, error) {
	if apiKey == "" {
		return nil, &GenerationError{Message: "GEMINI_API_KEY is not configured"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(int32(maxOutputTokens))
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(flashcardSystemPrompt)},
	}

	return &FlashcardService{client: client, model: model}, nil
}

func (s *FlashcardService) Close() {
	s.client.Close()
}

// GenerateFlashcards prompts the model with the (truncated) transcript
// and returns the surviving cards of the validation pass, in model
// output order. Fewer than the requested count may come back.
func (s *FlashcardService) GenerateFlashcards(ctx context.Context, transcript string, req models.FlashcardRequest, videoTitle string) ([]models.Flashcard, error) {
	prompt := buildFlashcardPrompt(truncateTranscript(transcript), req, videoTitle)

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &GenerationError{Message: fmt.Sprintf("Gemini API error: %v", err)}
	}

	raw := extractText(resp)
	cards, err := parseFlashcardResponse(raw)
	if err != nil {
		return nil, err
	}

	validated := validateFlashcards(cards, req.DifficultyLevel)
	if len(validated) == 0 {
		return nil, &InvalidAIResponseError{Message: "AI returned no usable flashcards"}
	}

	return validated, nil
}

func truncateTranscript(transcript string) string {
	if len(transcript) > maxTranscriptChars {
		return transcript[:maxTranscriptChars] + "..."
	}
	return transcript
}

func buildFlashcardPrompt(transcript string, req models.FlashcardRequest, videoTitle string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Create %d flashcards from the following video transcript.\n\n", req.NumCards))

	if videoTitle == "" {
		videoTitle = "Not provided"
	}
	b.WriteString(fmt.Sprintf("Video Title: %s\n", videoTitle))
	b.WriteString(fmt.Sprintf("Difficulty Level: %s\n", req.DifficultyLevel))
	if req.SubjectFocus != nil && *req.SubjectFocus != "" {
		b.WriteString(fmt.Sprintf("Subject Focus: %s\n", *req.SubjectFocus))
	}

	b.WriteString("\nTranscript:\n")
	b.WriteString(transcript)
	b.WriteString("\n\nRequirements:\n")
	b.WriteString(fmt.Sprintf("1. Generate exactly %d flashcards\n", req.NumCards))

	if req.DifficultyLevel == "mixed" {
		b.WriteString("2. Include a mix of easy, medium, and hard difficulty questions\n")
	} else {
		b.WriteString(fmt.Sprintf("2. All flashcards should be %s difficulty\n", req.DifficultyLevel))
	}

	if req.SubjectFocus != nil && *req.SubjectFocus != "" {
		b.WriteString(fmt.Sprintf("3. Focus particularly on topics related to: %s\n", *req.SubjectFocus))
	}

	b.WriteString(`4. Ensure questions test understanding, not just memorization
5. Make answers clear and self-contained
6. Include topic categorization for each flashcard
7. Add brief explanations where helpful for understanding

Return the flashcards as valid JSON.`)

	return b.String()
}

type rawFlashcard struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Difficulty  string `json:"difficulty"`
	Topic       string `json:"topic"`
	Explanation string `json:"explanation"`
}

func parseFlashcardResponse(raw string) ([]rawFlashcard, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var parsed struct {
		Flashcards []rawFlashcard `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &InvalidAIResponseError{Message: "AI response was not valid JSON"}
	}
	if parsed.Flashcards == nil {
		return nil, &InvalidAIResponseError{Message: "AI response missing flashcards key"}
	}

	return parsed.Flashcards, nil
}

// validateFlashcards drops unusable records and normalizes the rest.
// A record survives only with a trimmed question of at least 10
// characters and a trimmed answer of at least 3. Difficulty outside the
// known set becomes "medium" for mixed requests, otherwise the
// requested level verbatim. Order is preserved.
func validateFlashcards(cards []rawFlashcard, requestedDifficulty string) []models.Flashcard {
	var validated []models.Flashcard

	for _, card := range cards {
		if card.Question == "" || card.Answer == "" {
			continue
		}

		difficulty := strings.ToLower(card.Difficulty)
		if difficulty != "easy" && difficulty != "medium" && difficulty != "hard" {
			if requestedDifficulty == "mixed" {
				difficulty = "medium"
			} else {
				difficulty = requestedDifficulty
			}
		}

		question := strings.TrimSpace(card.Question)
		answer := strings.TrimSpace(card.Answer)
		if len(question) < 10 || len(answer) < 3 {
			continue
		}

		topic := card.Topic
		if topic == "" {
			topic = "General"
		}

		var explanation *string
		if card.Explanation != "" {
			e := card.Explanation
			explanation = &e
		}

		validated = append(validated, models.Flashcard{
			ID:          uuid.New(),
			Question:    question,
			Answer:      answer,
			Difficulty:  difficulty,
			Topic:       topic,
			Explanation: explanation,
		})
	}

	return validated
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
