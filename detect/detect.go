// Package detect wraps the language-identification engine with input
// validation, a bounded call time, and a cleaned-text retry.
package detect

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.lenslate.dev/lenslate/engine"
	"go.lenslate.dev/lenslate/internal/types"
	"go.lenslate.dev/lenslate/langcode"
	"go.lenslate.dev/lenslate/netcheck"
)

const (
	// MinTextLength is the shortest text worth identifying, in characters.
	MinTextLength = 10
	// MaxTextLength is the longest accepted input, in characters.
	MaxTextLength = 10000
	// sampleLength is how much of the input the engine actually sees.
	sampleLength = 1000

	defaultTimeout = 15 * time.Second
)

// Options configures the detector adapter.
type Options struct {
	// Timeout bounds one identification call. Defaults to 15 seconds.
	Timeout time.Duration
}

// Service wraps a language-identification engine. Create with New.
type Service struct {
	eng     engine.Identifier
	net     netcheck.Checker
	timeout time.Duration
}

// New creates a detector adapter around eng. Local engines should pass a
// netcheck.Static{IsOnline: true} checker.
func New(eng engine.Identifier, net netcheck.Checker, opts Options) *Service {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Service{eng: eng, net: net, timeout: timeout}
}

// Detect identifies the language of text, returning the normalized
// application code, or "" when the engine cannot determine a language
// (which is not an error).
func (s *Service) Detect(ctx context.Context, text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(trimmed); n < MinTextLength || n > MaxTextLength {
		return "", types.NewError(types.KindInvalidInput,
			"Text is too short or too long for language detection.", nil)
	}

	if !s.net.Online() {
		return "", types.NewError(types.KindNetworkUnavailable,
			"No internet connection available.", nil)
	}

	sample := preprocess(trimmed)

	code, err := s.identify(ctx, sample)
	if err != nil {
		return "", err
	}

	if code == engine.Undetermined {
		// One retry with an aggressively cleaned variant; anything
		// shorter than the minimum stays undetermined.
		cleaned := aggressiveClean(sample)
		if utf8.RuneCountInString(cleaned) < MinTextLength {
			return "", nil
		}
		code, err = s.identify(ctx, cleaned)
		if err != nil {
			return "", err
		}
		if code == engine.Undetermined {
			slog.Debug("language undetermined after retry", "sample_len", len(sample))
			return "", nil
		}
	}

	return langcode.NormalizeDetected(code), nil
}

// Close releases the underlying engine.
func (s *Service) Close() error { return s.eng.Close() }

func (s *Service) identify(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	code, err := s.eng.Identify(ctx, text)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", types.NewError(types.KindTimeout,
				"Language detection timed out. Please try again.", err)
		}
		return "", types.NewError(types.KindOperationFailed,
			"Language detection failed.", err)
	}
	return code, nil
}

var (
	regexWhitespace = regexp.MustCompile(`\s+`)
	regexControl    = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	regexNonWord    = regexp.MustCompile(`[^\p{L}\p{N} ]`)
)

// preprocess trims the sample the engine sees: first sampleLength bytes,
// single spaces, no control characters.
func preprocess(text string) string {
	if len(text) > sampleLength {
		cut := sampleLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	text = regexControl.ReplaceAllString(text, " ")
	text = regexWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// aggressiveClean strips everything but letters, digits, and spaces.
func aggressiveClean(text string) string {
	text = regexNonWord.ReplaceAllString(text, "")
	text = regexWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
