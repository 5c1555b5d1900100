// Package translate wraps the translation engine with input validation,
// on-demand model download, long-text chunking, and result caching.
package translate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.lenslate.dev/lenslate/cache"
	"go.lenslate.dev/lenslate/engine"
	"go.lenslate.dev/lenslate/internal/types"
	"go.lenslate.dev/lenslate/netcheck"
)

const (
	// MaxTextLength is the longest accepted input, in characters. Longer
	// text fails validation; truncation is never silent here.
	MaxTextLength = 10000
	// ChunkSize is the threshold above which text is translated in
	// pieces. It bounds the engine payload, so it counts bytes, not
	// characters.
	ChunkSize = 4000

	defaultTimeout = 45 * time.Second
)

// suspiciousMarkers are rejected outright; a translator is not a place to
// smuggle script payloads through.
var suspiciousMarkers = []string{"<script", "javascript:", "data:", "vbscript:"}

// Options configures the translator adapter.
type Options struct {
	// Timeout bounds the translation of one chunk. Defaults to 45s.
	Timeout time.Duration
	// ChunkSize overrides the chunking threshold. Defaults to 4000.
	ChunkSize int
	// SkipWiFiRestricted goes straight to an unrestricted model
	// download instead of attempting the WiFi-restricted download
	// first.
	SkipWiFiRestricted bool
}

// Service is the translator adapter. Create with New.
type Service struct {
	handles            *HandleCache
	results            *cache.Cache // optional, best effort
	net                netcheck.Checker
	timeout            time.Duration
	chunkSize          int
	skipWiFiRestricted bool
}

// New creates a translator adapter. results may be nil to disable the
// result cache.
func New(factory engine.Factory, net netcheck.Checker, results *cache.Cache, opts Options) *Service {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = ChunkSize
	}
	return &Service{
		handles:            NewHandleCache(factory),
		results:            results,
		net:                net,
		timeout:            timeout,
		chunkSize:          chunkSize,
		skipWiFiRestricted: opts.SkipWiFiRestricted,
	}
}

// Handles exposes the handle cache, mainly so the owning session can
// release it.
func (s *Service) Handles() *HandleCache { return s.handles }

// Translate translates text from sourceLang to targetLang (application
// codes). Identical source and target is a no-op that touches neither the
// network nor any cache.
func (s *Service) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if err := validateInput(text); err != nil {
		return "", err
	}

	if sourceLang == targetLang {
		return text, nil
	}

	if !s.net.Online() {
		return "", types.NewError(types.KindNetworkUnavailable,
			"No internet connection available.", nil)
	}

	cacheKey := cache.GenerateKey(sourceLang, targetLang, text)
	if s.results != nil {
		if entry, ok := s.results.Get(cacheKey); ok {
			return entry.Text, nil
		}
	}

	handle, err := s.handles.GetOrCreate(sourceLang, targetLang)
	if err != nil {
		if errors.Is(err, engine.ErrUnsupportedPair) {
			return "", types.NewError(types.KindUnsupportedPair,
				"This language pair is not supported.", err)
		}
		return "", types.NewError(types.KindTranslationFailed,
			"Translation failed. Please try again.", err)
	}

	if err := s.ensureModel(ctx, handle, sourceLang, targetLang); err != nil {
		return "", err
	}

	result, err := s.translateText(ctx, handle, text)
	if err != nil {
		return "", err
	}

	if s.results != nil {
		// Best effort: a failed cache write must not fail the call.
		entry := &cache.Entry{Text: result, CreatedAt: time.Now()}
		if err := s.results.Set(cacheKey, entry, cache.DefaultTTL); err != nil {
			slog.Warn("failed to cache translation", "error", err)
		}
	}

	return result, nil
}

// ReleaseAll closes every cached handle and clears model bookkeeping.
func (s *Service) ReleaseAll() { s.handles.ReleaseAll() }

func validateInput(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > MaxTextLength {
		return types.NewError(types.KindInvalidInput,
			"Text is empty or too long to translate.", nil)
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range suspiciousMarkers {
		if strings.Contains(lower, marker) {
			return types.NewError(types.KindInvalidInput,
				"Text contains content that cannot be translated.", nil)
		}
	}
	return nil
}

// ensureModel downloads the pair's model if this session has not yet seen
// it succeed: first WiFi-restricted (unless configured otherwise), then
// unrestricted as a fallback.
func (s *Service) ensureModel(ctx context.Context, handle engine.Translator, sourceLang, targetLang string) error {
	if s.handles.ModelReady(sourceLang, targetLang) {
		return nil
	}

	if !s.skipWiFiRestricted {
		err := handle.EnsureModel(ctx, engine.DownloadConditions{RequireWiFi: true})
		if err == nil {
			s.handles.SetModelReady(sourceLang, targetLang)
			return nil
		}
		slog.Warn("wifi-restricted model download failed, retrying unrestricted",
			"source", sourceLang, "target", targetLang, "error", err)
	}

	if err := handle.EnsureModel(ctx, engine.DownloadConditions{}); err != nil {
		return types.NewError(types.KindModelUnavailable,
			"Translation model not available. Please check your connection.", err)
	}

	s.handles.SetModelReady(sourceLang, targetLang)
	return nil
}

func (s *Service) translateText(ctx context.Context, handle engine.Translator, text string) (string, error) {
	if len(text) <= s.chunkSize {
		return s.translateChunk(ctx, handle, text)
	}

	chunks := splitChunks(text, s.chunkSize)
	slog.Debug("translating in chunks", "chunks", len(chunks), "length", len(text))

	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := s.translateChunk(ctx, handle, chunk)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, " "), nil
}

// translateChunk runs one engine call under its own timeout.
func (s *Service) translateChunk(ctx context.Context, handle engine.Translator, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := handle.Translate(ctx, text)
	if err != nil {
		return "", mapEngineError(err)
	}
	return out, nil
}

// mapEngineError converts a raw engine failure into the error taxonomy; no
// engine error crosses the adapter boundary unwrapped.
func mapEngineError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return types.NewError(types.KindTimeout,
			"Translation timed out. Please try again.", err)
	case strings.Contains(msg, "network") || strings.Contains(msg, "internet") ||
		strings.Contains(msg, "connection"):
		return types.NewError(types.KindNetworkUnavailable,
			"Network error during translation.", err)
	case strings.Contains(msg, "model"):
		return types.NewError(types.KindModelUnavailable,
			"Translation model not available. Please check your connection.", err)
	default:
		return types.NewError(types.KindTranslationFailed,
			"Translation failed. Please try again.", err)
	}
}
