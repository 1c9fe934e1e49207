package jobscore

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("jobscore: model file not found")

	// ErrInvalidModel indicates the model file exists but could not be loaded.
	ErrInvalidModel = errors.New("jobscore: invalid model format")

	// ErrVocabularyFailed indicates the vocabulary could not be loaded.
	ErrVocabularyFailed = errors.New("jobscore: vocabulary loading failed")

	// ErrNotReady indicates scoring was attempted on a scorer that is not
	// loaded or already closed.
	ErrNotReady = errors.New("jobscore: scorer not ready")

	// ErrEmptyInput indicates the text to score is empty or whitespace.
	ErrEmptyInput = errors.New("jobscore: empty input")

	// ErrInferenceFailed indicates the model failed to produce a score.
	ErrInferenceFailed = errors.New("jobscore: inference failed")
)
