// Package app wires the feature services together and exposes the
// application surface the CLI binds to.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"go.lenslate.dev/lenslate/cache"
	"go.lenslate.dev/lenslate/config"
	"go.lenslate.dev/lenslate/detect"
	"go.lenslate.dev/lenslate/engine"
	"go.lenslate.dev/lenslate/engine/openai"
	"go.lenslate.dev/lenslate/netcheck"
	"go.lenslate.dev/lenslate/pipeline"
	"go.lenslate.dev/lenslate/recognize"
	"go.lenslate.dev/lenslate/speech"
	"go.lenslate.dev/lenslate/store"
	"go.lenslate.dev/lenslate/summarize"
	"go.lenslate.dev/lenslate/translate"
)

// Service is the assembled application. Create with New, release with
// Close.
type Service struct {
	cfg   *config.Config
	store *store.Store
	cache *cache.Cache
	net   netcheck.Checker

	recognizer   *recognize.Service
	detector     *detect.Service
	translator   *translate.Service
	summarizer   *summarize.Service
	orchestrator *pipeline.Orchestrator

	speaker  *speech.Speaker
	listener *speech.Listener
}

// Options overrides parts of the default wiring, mainly for tests and
// the CLI's audio plumbing.
type Options struct {
	// Net replaces the default connectivity probe.
	Net netcheck.Checker
	// AudioSink receives synthesized speech audio. Required for Speak.
	AudioSink io.Writer
	// AudioSource supplies recorded audio. Required for Listen.
	AudioSource openai.AudioSource
	// InMemory uses in-memory storage regardless of the configured data
	// directory.
	InMemory bool
}

// New assembles the application from cfg.
func New(cfg *config.Config, opts Options) (*Service, error) {
	net := opts.Net
	if net == nil {
		net = netcheck.NewProbe()
	}

	dataDir, cacheDir := "", ""
	if !opts.InMemory {
		dir, err := cfg.DataPath()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		dataDir = filepath.Join(dir, "store")
		cacheDir = filepath.Join(dir, "cache")
	}

	st, err := store.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := ensureSeeded(st); err != nil {
		st.Close()
		return nil, err
	}

	results, err := cache.Open(cacheDir)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("open result cache: %w", err)
	}

	client := openai.NewClient(openai.Config{
		APIKey:          cfg.Engine.APIKey,
		BaseURL:         cfg.Engine.BaseURL,
		Model:           cfg.Engine.Model,
		VisionModel:     cfg.Engine.VisionModel,
		SpeechModel:     cfg.Engine.SpeechModel,
		TranscribeModel: cfg.Engine.TranscribeModel,
		Voice:           cfg.Speech.Voice,
	}, net)

	recognizer := recognize.New(openai.NewRecognizer(client), recognize.Options{})
	detector := detect.New(detect.NewLinguaIdentifier(), net, detect.Options{})
	translator := translate.New(openai.NewFactory(client), net, results, translate.Options{
		SkipWiFiRestricted: !cfg.WiFiOnlyDownloads,
	})
	summarizer := summarize.New(translator, summarize.Options{})

	prefs, err := st.Preferences()
	if err != nil {
		st.Close()
		results.Close()
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	orchestrator := pipeline.New(recognizer, detector, translator, summarizer,
		pipeline.Options{DefaultSourceLang: prefs.DefaultSourceLanguage})

	s := &Service{
		cfg:          cfg,
		store:        st,
		cache:        results,
		net:          net,
		recognizer:   recognizer,
		detector:     detector,
		translator:   translator,
		summarizer:   summarizer,
		orchestrator: orchestrator,
	}

	if opts.AudioSink != nil {
		s.speaker = speech.NewSpeaker(openai.NewSynthesizer(client, opts.AudioSink))
	}
	if opts.AudioSource != nil {
		s.listener = speech.NewListener(openai.NewRecognitionEngine(client, opts.AudioSource))
	}
	return s, nil
}

// ensureSeeded populates the language table on first run.
func ensureSeeded(st *store.Store) error {
	langs, err := st.Languages()
	if err != nil {
		return fmt.Errorf("check language table: %w", err)
	}
	if len(langs) > 0 {
		return nil
	}
	if err := st.SeedLanguages(store.SupportedLanguages()); err != nil {
		return fmt.Errorf("seed language table: %w", err)
	}
	slog.Info("language table seeded", "count", len(store.SupportedLanguages()))
	return nil
}

// TranslateText translates text directly, with automatic source detection
// when sourceLang is empty or "auto".
func (s *Service) TranslateText(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if sourceLang == "" || sourceLang == pipeline.AutoDetect {
		code, err := s.detector.Detect(ctx, text)
		if err != nil || code == "" {
			prefs, perr := s.store.Preferences()
			if perr != nil {
				return "", perr
			}
			slog.Warn("source detection failed, using default",
				"default", prefs.DefaultSourceLanguage, "error", err)
			code = prefs.DefaultSourceLanguage
		}
		sourceLang = code
	}
	if targetLang == "" {
		targetLang = s.cfg.TargetFor(sourceLang)
	}
	return s.translator.Translate(ctx, text, sourceLang, targetLang)
}

// ProcessImage runs the full image pipeline and returns its update
// stream.
func (s *Service) ProcessImage(ctx context.Context, img engine.Image, sourceLang, targetLang string) <-chan pipeline.Update {
	return s.orchestrator.Process(ctx, pipeline.Request{
		Image:      img,
		SourceLang: sourceLang,
		TargetLang: targetLang,
	})
}

// Summarize summarizes text in the requested style and target language.
func (s *Service) Summarize(ctx context.Context, text string, style summarize.Style, targetLang string) (string, error) {
	return s.orchestrator.Summarize(ctx, text, style, targetLang)
}

// DetectLanguage identifies the language of text.
func (s *Service) DetectLanguage(ctx context.Context, text string) (string, error) {
	return s.detector.Detect(ctx, text)
}

// Speak plays text aloud. Requires an audio sink.
func (s *Service) Speak(text, lang string, rate float64) error {
	if s.speaker == nil {
		return fmt.Errorf("speech output not configured")
	}
	if rate == 0 {
		rate = s.cfg.Speech.Rate
	}
	if rate == 0 {
		rate = speech.RateNormal
	}
	return s.speaker.Speak(text, lang, rate)
}

// StopSpeaking halts playback.
func (s *Service) StopSpeaking() {
	if s.speaker != nil {
		s.speaker.Stop()
	}
}

// Listen starts a speech recognition session. Requires an audio source.
func (s *Service) Listen(ctx context.Context, lang string) (<-chan speech.Event, error) {
	if s.listener == nil {
		return nil, fmt.Errorf("speech input not configured")
	}
	return s.listener.Start(ctx, lang)
}

// StopListening ends the active recognition session.
func (s *Service) StopListening() {
	if s.listener != nil {
		s.listener.Stop()
	}
}

// Languages returns the supported-language table.
func (s *Service) Languages() ([]store.Language, error) {
	return s.store.Languages()
}

// Preferences returns the user preferences record.
func (s *Service) Preferences() (store.Preferences, error) {
	return s.store.Preferences()
}

// SavePreferences replaces the preferences record.
func (s *Service) SavePreferences(prefs store.Preferences) error {
	return s.store.SavePreferences(prefs)
}

// WatchPreferences streams preference saves until ctx is cancelled.
func (s *Service) WatchPreferences(ctx context.Context, fn func(store.Preferences)) error {
	return s.store.WatchPreferences(ctx, fn)
}

// Close stops in-flight work and releases every owned resource.
func (s *Service) Close() error {
	s.orchestrator.Stop()
	if s.speaker != nil {
		if err := s.speaker.Close(); err != nil {
			slog.Error("close speaker", "error", err)
		}
	}
	if s.listener != nil {
		s.listener.Stop()
	}
	s.translator.ReleaseAll()

	var firstErr error
	if err := s.cache.Close(); err != nil {
		firstErr = err
	}
	if err := s.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
