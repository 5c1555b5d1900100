// Package types provides shared type definitions for the application.
package types

import "errors"

// ErrorKind classifies failures so callers can render a specific message
// and decide whether a retry makes sense.
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid_input"
	KindNetworkUnavailable  ErrorKind = "network_unavailable"
	KindTimeout             ErrorKind = "timeout"
	KindModelUnavailable    ErrorKind = "model_unavailable"
	KindNoTextFound         ErrorKind = "no_text_found"
	KindUnsupportedPair     ErrorKind = "unsupported_language_pair"
	KindRecognitionFailed   ErrorKind = "recognition_failed"
	KindTranslationFailed   ErrorKind = "translation_failed"
	KindSummarizationFailed ErrorKind = "summarization_failed"
	KindOperationFailed     ErrorKind = "operation_failed"
)

// Error is the only error type that crosses an adapter boundary. It carries
// a machine-readable kind, a short user-displayable message, and the
// underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a taxonomy error wrapping cause (cause may be nil).
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf extracts the ErrorKind from err, or KindOperationFailed when err
// is not a taxonomy error.
func KindOf(err error) ErrorKind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindOperationFailed
}

// UserMessage extracts the user-displayable message from err.
func UserMessage(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Message
	}
	return "Something went wrong. Please try again."
}

// TranslateRequest represents a single translation request.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// TranslateResult represents the result of a translation request.
type TranslateResult struct {
	Text     string `json:"text"`
	CacheHit bool   `json:"cacheHit"`
}

// PipelineResult holds everything one pipeline invocation produced. It is
// transient: a new invocation supersedes and discards the previous one.
type PipelineResult struct {
	DetectedText     string `json:"detectedText,omitempty"`
	DetectedLanguage string `json:"detectedLanguage,omitempty"`
	TranslatedText   string `json:"translatedText,omitempty"`
	Summary          string `json:"summary,omitempty"`
	Err              error  `json:"-"`
}
