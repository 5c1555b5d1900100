// Package speech wraps text-to-speech playback and speech-to-text
// listening as asynchronous, cancelable operations. The platform-style
// callback engines are bridged into channel event streams here.
package speech

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"go.lenslate.dev/lenslate/internal/types"
)

// MaxTextLength is the longest text one utterance may carry, in
// characters.
const MaxTextLength = 4000

// Speech rate presets.
const (
	RateVerySlow = 0.5
	RateSlow     = 0.75
	RateNormal   = 1.0
	RateFast     = 1.25
	RateVeryFast = 1.5
)

// EventKind labels recognition stream events.
type EventKind string

const (
	EventReady     EventKind = "ready"
	EventListening EventKind = "listening"
	EventVolume    EventKind = "volume"
	EventPartial   EventKind = "partial"
	EventFinal     EventKind = "final"
	EventError     EventKind = "error"
)

// Event is one item on a recognition stream. The stream is single-shot: it
// closes itself after a final or error event.
type Event struct {
	Kind   EventKind
	Text   string  // partial and final events
	Volume float64 // volume events, in dB
	Err    error   // error events
}

// Synthesizer is the text-to-speech engine. Synthesize blocks until
// playback finishes or ctx is cancelled.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string, rate float64) error
	SupportsLanguage(lang string) bool
	DefaultLanguage() string
	Close() error
}

// SessionHandler receives callbacks from a recognition session, in the
// platform listener style.
type SessionHandler struct {
	OnReady   func()
	OnBegin   func()
	OnVolume  func(db float64)
	OnPartial func(text string)
	OnFinal   func(text string)
	OnError   func(err error)
}

// RecognitionEngine opens listening sessions. Closing the returned closer
// releases the microphone and stops callback delivery.
type RecognitionEngine interface {
	Open(lang string, h SessionHandler) (io.Closer, error)
}

// Speaker plays synthesized speech. A new Speak always preempts the
// previous utterance (queue-flush semantics). Create with NewSpeaker.
type Speaker struct {
	synth Synthesizer

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewSpeaker wraps synth.
func NewSpeaker(synth Synthesizer) *Speaker {
	return &Speaker{synth: synth}
}

// Speak starts asynchronous playback of text in lang at rate and returns
// immediately. Any in-flight utterance is cancelled first. Unsupported
// languages fall back to the engine default with a warning.
func (s *Speaker) Speak(text, lang string, rate float64) error {
	if strings.TrimSpace(text) == "" || utf8.RuneCountInString(text) > MaxTextLength {
		return types.NewError(types.KindInvalidInput,
			"Text is empty or too long to speak.", nil)
	}

	if rate < 0.1 {
		rate = 0.1
	} else if rate > 3.0 {
		rate = 3.0
	}

	if !s.synth.SupportsLanguage(lang) {
		slog.Warn("speech language not supported, using default",
			"lang", lang, "default", s.synth.DefaultLanguage())
		lang = s.synth.DefaultLanguage()
	}

	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel() // flush the queue: the new utterance wins
	}
	s.cancel = cancel
	s.mu.Unlock()

	utterance := uuid.New().String()
	go func() {
		defer cancel()
		if err := s.synth.Synthesize(ctx, text, lang, rate); err != nil && ctx.Err() == nil {
			slog.Error("speech synthesis failed", "utterance", utterance, "error", err)
		}
	}()

	slog.Debug("utterance started", "utterance", utterance, "lang", lang, "rate", rate)
	return nil
}

// Stop halts the current utterance immediately.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Close stops playback and releases the engine.
func (s *Speaker) Close() error {
	s.Stop()
	return s.synth.Close()
}

// Listener runs speech-to-text sessions. At most one session is active;
// starting a new one stops its predecessor. Create with NewListener.
type Listener struct {
	eng RecognitionEngine

	mu     sync.Mutex
	active context.CancelFunc
}

// NewListener wraps eng.
func NewListener(eng RecognitionEngine) *Listener {
	return &Listener{eng: eng}
}

// Start opens a listening session for lang and returns its event stream.
// The stream closes itself after a final or error event. Cancelling ctx
// stops the session and releases the underlying listener on every exit
// path.
func (l *Listener) Start(ctx context.Context, lang string) (<-chan Event, error) {
	l.mu.Lock()
	if l.active != nil {
		l.active() // stop the previous session first
	}
	ctx, cancel := context.WithCancel(ctx)
	l.active = cancel
	l.mu.Unlock()

	in := make(chan Event, 32)
	push := func(ev Event) {
		select {
		case in <- ev:
		default:
			// Consumer far behind; dropping beats blocking the
			// engine callback thread.
		}
	}
	// Terminal events close the stream, so they are never dropped: they
	// wait for buffer space, bailing out only when the session dies.
	pushTerminal := func(ev Event) {
		select {
		case in <- ev:
		case <-ctx.Done():
		}
	}

	session, err := l.eng.Open(lang, SessionHandler{
		OnReady:   func() { push(Event{Kind: EventReady}) },
		OnBegin:   func() { push(Event{Kind: EventListening}) },
		OnVolume:  func(db float64) { push(Event{Kind: EventVolume, Volume: db}) },
		OnPartial: func(text string) { push(Event{Kind: EventPartial, Text: text}) },
		OnFinal:   func(text string) { pushTerminal(Event{Kind: EventFinal, Text: text}) },
		OnError:   func(err error) { pushTerminal(Event{Kind: EventError, Err: err}) },
	})
	if err != nil {
		cancel()
		return nil, types.NewError(types.KindOperationFailed,
			"Speech recognition is not available.", err)
	}

	out := make(chan Event)
	go func() {
		defer func() {
			if err := session.Close(); err != nil {
				slog.Warn("error closing recognition session", "error", err)
			}
			close(out)
			cancel()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-in:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
				if ev.Kind == EventFinal || ev.Kind == EventError {
					return
				}
			}
		}
	}()

	return out, nil
}

// Stop ends the active session, if any.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active != nil {
		l.active()
		l.active = nil
	}
}
