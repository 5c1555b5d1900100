package detect

import (
	"context"
	"strings"

	"github.com/pemistahl/lingua-go"

	"go.lenslate.dev/lenslate/engine"
)

// LinguaIdentifier is a local engine.Identifier backed by the lingua
// statistical language detector. It needs no network and no setup.
type LinguaIdentifier struct {
	detector lingua.LanguageDetector
}

// NewLinguaIdentifier builds the detector over all languages lingua knows.
// Model loading is lazy, so construction is cheap.
func NewLinguaIdentifier() *LinguaIdentifier {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()
	return &LinguaIdentifier{detector: detector}
}

// Identify returns the ISO 639-1 code of the detected language, or the
// undetermined sentinel when lingua has no confident answer.
func (l *LinguaIdentifier) Identify(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	language, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return engine.Undetermined, nil
	}
	return strings.ToLower(language.IsoCode639_1().String()), nil
}

func (l *LinguaIdentifier) Close() error { return nil }
