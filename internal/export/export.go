package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"flashtube-backend/internal/models"
)

const (
	jsonPreviewLen = 500
	htmlPreviewLen = 1000
)

// Artifact is the JSON file shape written next to the HTML summary.
// The shape is an interchange format other tooling reads; field names
// must not change.
type Artifact struct {
	VideoURL          string             `json:"video_url"`
	VideoTitle        string             `json:"video_title"`
	VideoID           string             `json:"video_id"`
	Language          string             `json:"language"`
	Flashcards        []models.Flashcard `json:"flashcards"`
	TranscriptPreview string             `json:"transcript_preview"`
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

// WriteJSON writes flashcards_<videoID>.json under dir and returns the
// full path.
func WriteJSON(dir string, set models.FlashcardSet, fullText string) (string, error) {
	artifact := Artifact{
		VideoURL:          set.VideoURL,
		VideoTitle:        set.VideoTitle,
		VideoID:           set.VideoID,
		Language:          set.Language,
		Flashcards:        set.Flashcards,
		TranscriptPreview: truncate(fullText, jsonPreviewLen),
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal flashcards: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("flashcards_%s.json", set.VideoID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Set.VideoTitle}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
               max-width: 900px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .container { background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #333; border-bottom: 3px solid #ff0000; padding-bottom: 10px; }
        .metadata { background: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0; }
        .flashcard { background: #fff; border: 2px solid #e0e0e0; border-radius: 8px;
                     padding: 20px; margin: 15px 0; }
        .question { font-weight: bold; color: #2c3e50; font-size: 18px; margin-bottom: 10px; }
        .answer { color: #34495e; line-height: 1.6; }
        .difficulty { display: inline-block; padding: 4px 12px; border-radius: 20px;
                      font-size: 12px; font-weight: bold; text-transform: uppercase; }
        .easy { background: #d4edda; color: #155724; }
        .medium { background: #fff3cd; color: #856404; }
        .hard { background: #f8d7da; color: #721c24; }
        .transcript { background: #f8f9fa; padding: 20px; border-left: 4px solid #007bff;
                      margin-top: 30px; max-height: 400px; overflow-y: auto; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Set.VideoTitle}}</h1>
        <div class="metadata">
            <p><strong>Video:</strong> <a href="{{.Set.VideoURL}}" target="_blank">{{.Set.VideoURL}}</a></p>
            <p><strong>ID:</strong> {{.Set.VideoID}}</p>
            <p><strong>Language:</strong> {{.Set.Language}}</p>
            <p><strong>Cards:</strong> {{len .Set.Flashcards}}</p>
        </div>

        <h2>Flashcards</h2>
{{- range $i, $card := .Set.Flashcards}}
        <div class="flashcard">
            <span class="difficulty {{$card.Difficulty}}">{{$card.Difficulty}}</span>
            <div class="question">Question {{inc $i}}: {{$card.Question}}</div>
            <div class="answer">Answer: {{$card.Answer}}</div>
        </div>
{{- end}}

        <h2>Transcript Preview</h2>
        <div class="transcript">
            <p>{{.Preview}}...</p>
        </div>
    </div>
</body>
</html>
`))

// WriteHTML writes summary_<videoID>.html under dir and returns the
// full path.
func WriteHTML(dir string, set models.FlashcardSet, fullText string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("summary_%s.html", set.VideoID))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	data := struct {
		Set     models.FlashcardSet
		Preview string
	}{Set: set, Preview: truncate(fullText, htmlPreviewLen)}

	if err := summaryTmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", path, err)
	}
	return path, nil
}
