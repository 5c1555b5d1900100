// Package recognize wraps the OCR engine with input validation, a bounded
// call time, and cleanup of the recognized text.
package recognize

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
)

const (
	// MaxDimension is the largest accepted image width or height.
	MaxDimension = 8192
	// MaxTextLength is the cap on recognized output, in characters;
	// longer text is truncated with a warning.
	MaxTextLength = 10000

	defaultTimeout = 30 * time.Second
)

// Options configures the recognizer adapter.
type Options struct {
	// Timeout bounds one recognition call. Defaults to 30 seconds.
	Timeout time.Duration
}

// Service wraps an OCR engine. Create with New.
type Service struct {
	eng     engine.Recognizer
	timeout time.Duration
}

// New creates a recognizer adapter around eng.
func New(eng engine.Recognizer, opts Options) *Service {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Service{eng: eng, timeout: timeout}
}

// Recognize extracts text from img. It returns KindNoTextFound when the
// image holds no usable text, and never lets a raw engine error escape.
func (s *Service) Recognize(ctx context.Context, img engine.Image) (string, error) {
	if err := validateImage(img); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.eng.Recognize(ctx, img)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", types.NewError(types.KindTimeout,
				"Text recognition timed out. Please try again.", err)
		}
		return "", types.NewError(types.KindRecognitionFailed,
			"Could not read text from the image.", err)
	}

	if strings.TrimSpace(text) == "" {
		return "", types.NewError(types.KindNoTextFound,
			"No text detected in the selected area.", nil)
	}

	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		slog.Warn("recognized text too long, truncating",
			"length", n, "max", MaxTextLength)
		text = string([]rune(text)[:MaxTextLength])
	}

	return Cleanup(text), nil
}

// Close releases the underlying engine.
func (s *Service) Close() error { return s.eng.Close() }

func validateImage(img engine.Image) error {
	switch {
	case img.Released():
		return types.NewError(types.KindInvalidInput,
			"Invalid image. Please select a different image.", nil)
	case img.Width < 1 || img.Height < 1:
		return types.NewError(types.KindInvalidInput,
			"Invalid image. Please select a different image.", nil)
	case img.Width > MaxDimension || img.Height > MaxDimension:
		return types.NewError(types.KindInvalidInput,
			"Image is too large to process.", nil)
	}
	return nil
}

var (
	regexLineEndings = regexp.MustCompile(`\r\n?`)
	regexControl     = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	regexSpaces      = regexp.MustCompile(`[ \t]+`)
	regexBlankLines  = regexp.MustCompile(`\n{3,}`)
	regexPipes       = regexp.MustCompile(`\|+`)
	regexCaseBound   = regexp.MustCompile(`([a-z])([A-Z])`)
)

// Cleanup normalizes recognized text: line endings, whitespace runs, blank
// lines, control characters, and the common OCR artifacts (pipes read as
// "I", missing spaces at case boundaries).
func Cleanup(text string) string {
	text = regexLineEndings.ReplaceAllString(text, "\n")
	text = regexControl.ReplaceAllString(text, "")
	text = regexSpaces.ReplaceAllString(text, " ")
	text = regexBlankLines.ReplaceAllString(text, "\n\n")
	text = regexPipes.ReplaceAllString(text, "I")
	text = regexCaseBound.ReplaceAllString(text, "$1 $2")
	text = regexSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
