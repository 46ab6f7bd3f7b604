package services

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

// NoCaptionsError means every caption strategy was exhausted for the
// video. Retrying with the same video will not help.
type NoCaptionsError struct {
	VideoID string
}

func (e *NoCaptionsError) Error() string {
	return "no captions available for video " + e.VideoID
}

// InvalidAIResponseError means the completion service answered, but not
// with parseable flashcard JSON.
type InvalidAIResponseError struct{ Message string }

func (e *InvalidAIResponseError) Error() string { return e.Message }

// GenerationError covers completion-service failures other than a
// malformed response: missing credential, quota, transport.
type GenerationError struct{ Message string }

func (e *GenerationError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }
