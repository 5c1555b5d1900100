package translate

import (
	"log/slog"
	"sync"

	"go.lenslate.dev/lenslate/engine"
	"go.lenslate.dev/lenslate/langcode"
)

// HandleCache keeps at most one translator handle per language pair,
// creating handles lazily. Creation is single-flight: concurrent calls for
// the same pair share one factory call and get the same handle back.
type HandleCache struct {
	factory engine.Factory

	mu      sync.Mutex
	handles map[string]*handleEntry
	ready   map[string]bool // pairs whose model download already succeeded
}

type handleEntry struct {
	once   sync.Once
	handle engine.Translator
	err    error
}

// NewHandleCache creates an empty cache backed by factory.
func NewHandleCache(factory engine.Factory) *HandleCache {
	return &HandleCache{
		factory: factory,
		handles: make(map[string]*handleEntry),
		ready:   make(map[string]bool),
	}
}

func pairKey(sourceLang, targetLang string) string {
	return sourceLang + "_" + targetLang
}

// GetOrCreate returns the handle for the pair, creating it on first use.
// The returned handle is reference-stable: two calls with the same pair
// yield the same instance.
func (c *HandleCache) GetOrCreate(sourceLang, targetLang string) (engine.Translator, error) {
	key := pairKey(sourceLang, targetLang)

	c.mu.Lock()
	entry, ok := c.handles[key]
	if !ok {
		entry = &handleEntry{}
		c.handles[key] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.handle, entry.err = c.factory.NewTranslator(
			langcode.ToEngineCode(sourceLang),
			langcode.ToEngineCode(targetLang),
		)
	})

	if entry.err != nil {
		// Drop the failed entry so a later call can retry creation.
		c.mu.Lock()
		if c.handles[key] == entry {
			delete(c.handles, key)
		}
		c.mu.Unlock()
		return nil, entry.err
	}
	return entry.handle, nil
}

// ModelReady reports whether the pair's model download already succeeded.
func (c *HandleCache) ModelReady(sourceLang, targetLang string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready[pairKey(sourceLang, targetLang)]
}

// SetModelReady records a successful model download for the pair.
func (c *HandleCache) SetModelReady(sourceLang, targetLang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready[pairKey(sourceLang, targetLang)] = true
}

// ReleaseAll closes every handle and clears the downloaded-model
// bookkeeping. Called when the owning session ends.
func (c *HandleCache) ReleaseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.handles {
		if entry.handle != nil {
			if err := entry.handle.Close(); err != nil {
				slog.Warn("error closing translator handle", "pair", key, "error", err)
			}
		}
	}
	c.handles = make(map[string]*handleEntry)
	c.ready = make(map[string]bool)
}
