// Package pipeline sequences recognition, language detection, translation,
// and summarization for one user-initiated operation, cancelling
// superseded work and surfacing partial results at each stage.
package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"go.lenslate.dev/lenslate/engine"
	"go.lenslate.dev/lenslate/internal/types"
	"go.lenslate.dev/lenslate/summarize"
)

// Stage names the pipeline states as one invocation advances.
type Stage string

const (
	StageIdle        Stage = "idle"
	StageRecognizing Stage = "recognizing"
	StageDetecting   Stage = "detecting_language"
	StageTranslating Stage = "translating"
	StageSummarizing Stage = "summarizing"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

// AutoDetect as a source language requests automatic detection.
const AutoDetect = "auto"

// TextRecognizer extracts text from an image. recognize.Service satisfies
// it.
type TextRecognizer interface {
	Recognize(ctx context.Context, img engine.Image) (string, error)
}

// LanguageDetector identifies the language of a text. detect.Service
// satisfies it.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// Translator translates text between application language codes.
// translate.Service satisfies it.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Summarizer produces a summary of text. summarize.Service satisfies it.
type Summarizer interface {
	Summarize(ctx context.Context, text string, style summarize.Style, targetLang string) (string, error)
}

// Request describes one image-translation invocation. An empty or "auto"
// SourceLang requests detection.
type Request struct {
	Image      engine.Image
	SourceLang string
	TargetLang string
}

// Update is one progress event. Result accumulates: detected text survives
// a later translation failure.
type Update struct {
	ID     string
	Stage  Stage
	Result types.PipelineResult
}

// Options configures the orchestrator.
type Options struct {
	// DefaultSourceLang is used when detection fails or is unavailable.
	// Defaults to "en".
	DefaultSourceLang string
}

// Orchestrator runs the pipeline. At most one invocation is active per
// orchestrator: starting a new one cancels and waits out its predecessor,
// so two results never interleave on the same surface. Create with New.
type Orchestrator struct {
	recognizer    TextRecognizer
	detector      LanguageDetector // optional
	translator    Translator
	summarizer    Summarizer // optional
	defaultSource string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New wires an orchestrator from its stage services. detector and
// summarizer may be nil; the corresponding stages are skipped.
func New(recognizer TextRecognizer, detector LanguageDetector, translator Translator, summarizer Summarizer, opts Options) *Orchestrator {
	defaultSource := opts.DefaultSourceLang
	if defaultSource == "" {
		defaultSource = "en"
	}
	return &Orchestrator{
		recognizer:    recognizer,
		detector:      detector,
		translator:    translator,
		summarizer:    summarizer,
		defaultSource: defaultSource,
	}
}

// Process starts a new invocation and returns its update stream. Any
// in-flight invocation is cancelled and drained before this one begins.
// The stream closes after the terminal Done or Failed update.
func (o *Orchestrator) Process(ctx context.Context, req Request) <-chan Update {
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	o.mu.Lock()
	prevCancel, prevDone := o.cancel, o.done
	o.cancel, o.done = cancel, done
	o.mu.Unlock()

	// Buffered past the maximum number of stage updates so the run never
	// blocks on a departed consumer.
	updates := make(chan Update, 8)

	go func() {
		defer close(updates)
		defer close(done)
		defer cancel()

		if prevCancel != nil {
			prevCancel()
			<-prevDone
		}
		o.run(runCtx, req, updates)
	}()

	return updates
}

// Stop cancels the in-flight invocation, if any.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
}

// Summarize runs the optional summarization stage. It is triggered
// separately from Process and does not disturb an already-delivered
// translation result.
func (o *Orchestrator) Summarize(ctx context.Context, text string, style summarize.Style, targetLang string) (string, error) {
	if o.summarizer == nil {
		return "", types.NewError(types.KindOperationFailed,
			"Summarization is not available.", nil)
	}
	return o.summarizer.Summarize(ctx, text, style, targetLang)
}

func (o *Orchestrator) run(ctx context.Context, req Request, updates chan<- Update) {
	id := uuid.New().String()
	var result types.PipelineResult

	emit := func(stage Stage) {
		updates <- Update{ID: id, Stage: stage, Result: result}
	}
	fail := func(err error) {
		result.Err = err
		emit(StageFailed)
	}

	if req.TargetLang == "" {
		fail(types.NewError(types.KindInvalidInput,
			"Please select a target language.", nil))
		return
	}

	emit(StageRecognizing)
	text, err := o.recognizer.Recognize(ctx, req.Image)
	if err != nil {
		fail(err)
		return
	}
	result.DetectedText = text

	source := req.SourceLang
	if source == "" || source == AutoDetect {
		source = o.detectSource(ctx, text, emit)
		result.DetectedLanguage = source
	}

	if ctx.Err() != nil {
		fail(types.NewError(types.KindOperationFailed, "Operation cancelled.", ctx.Err()))
		return
	}

	emit(StageTranslating)
	translated, err := o.translator.Translate(ctx, text, source, req.TargetLang)
	if err != nil {
		// Terminal for translation, but the recognized text stays
		// available to the caller.
		fail(err)
		return
	}
	result.TranslatedText = translated

	emit(StageDone)
	slog.Info("pipeline completed", "id", id,
		"source", source, "target", req.TargetLang, "chars", len(text))
}

// detectSource runs best-effort language detection. Failure is not fatal:
// the pipeline falls back to the default source language.
func (o *Orchestrator) detectSource(ctx context.Context, text string, emit func(Stage)) string {
	if o.detector == nil {
		return o.defaultSource
	}

	emit(StageDetecting)
	code, err := o.detector.Detect(ctx, text)
	if err != nil || code == "" {
		slog.Warn("language detection failed, using default source",
			"default", o.defaultSource, "error", err)
		return o.defaultSource
	}
	return code
}
