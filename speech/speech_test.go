package speech

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.lenslate.dev/lenslate/internal/types"
)

// fakeSynth implements Synthesizer, reporting each call on a channel.
type fakeSynth struct {
	calls chan synthCall
	block bool // hold playback open until ctx is cancelled
}

type synthCall struct {
	text string
	lang string
	rate float64
}

func newFakeSynth(block bool) *fakeSynth {
	return &fakeSynth{calls: make(chan synthCall, 8), block: block}
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, lang string, rate float64) error {
	f.calls <- synthCall{text: text, lang: lang, rate: rate}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeSynth) SupportsLanguage(lang string) bool { return lang == "en" || lang == "vi" }
func (f *fakeSynth) DefaultLanguage() string           { return "en" }
func (f *fakeSynth) Close() error                      { return nil }

func waitCall(t *testing.T, f *fakeSynth) synthCall {
	t.Helper()
	select {
	case c := <-f.calls:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for synthesizer call")
		return synthCall{}
	}
}

func TestSpeakValidation(t *testing.T) {
	synth := newFakeSynth(false)
	s := NewSpeaker(synth)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"too long", strings.Repeat("a", MaxTextLength+1)},
		{"too long multibyte", strings.Repeat("你", MaxTextLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Speak(tt.text, "en", RateNormal)
			if types.KindOf(err) != types.KindInvalidInput {
				t.Errorf("Speak() error kind = %q, want %q", types.KindOf(err), types.KindInvalidInput)
			}
		})
	}
}

func TestSpeakMultibyteLengthCountsCharacters(t *testing.T) {
	// 1500 CJK characters are 4500 bytes; the limit is on characters, so
	// this must be accepted.
	synth := newFakeSynth(false)
	s := NewSpeaker(synth)

	text := strings.Repeat("声", 1500)
	if err := s.Speak(text, "en", RateNormal); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if got := waitCall(t, synth).text; got != text {
		t.Error("synthesized text does not match input")
	}
}

func TestSpeakClampsRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want float64
	}{
		{"below minimum", 0.01, 0.1},
		{"above maximum", 5.0, 3.0},
		{"preset untouched", RateFast, RateFast},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synth := newFakeSynth(false)
			s := NewSpeaker(synth)

			if err := s.Speak("hello", "en", tt.rate); err != nil {
				t.Fatalf("Speak() error = %v", err)
			}
			if got := waitCall(t, synth).rate; got != tt.want {
				t.Errorf("synthesized rate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpeakFallsBackToDefaultLanguage(t *testing.T) {
	synth := newFakeSynth(false)
	s := NewSpeaker(synth)

	if err := s.Speak("hola", "xx", RateNormal); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	if got := waitCall(t, synth).lang; got != "en" {
		t.Errorf("synthesized lang = %q, want fallback %q", got, "en")
	}
}

func TestSpeakPreemptsPreviousUtterance(t *testing.T) {
	synth := newFakeSynth(true)
	s := NewSpeaker(synth)

	if err := s.Speak("first", "en", RateNormal); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	first := waitCall(t, synth)
	if first.text != "first" {
		t.Fatalf("first call text = %q", first.text)
	}

	// The second utterance must cancel the first's context, letting its
	// blocked Synthesize return.
	if err := s.Speak("second", "en", RateNormal); err != nil {
		t.Fatalf("Speak() error = %v", err)
	}
	second := waitCall(t, synth)
	if second.text != "second" {
		t.Errorf("second call text = %q, want %q", second.text, "second")
	}

	s.Stop()
}

// fakeSession records callbacks and closures for the listener tests.
type fakeSession struct {
	mu     sync.Mutex
	closed bool
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeSession) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// fakeEngine implements RecognitionEngine, capturing the handler so tests
// can drive callbacks.
type fakeEngine struct {
	mu      sync.Mutex
	handler SessionHandler
	session *fakeSession
	err     error
}

func (f *fakeEngine) Open(lang string, h SessionHandler) (io.Closer, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.handler = h
	f.session = &fakeSession{}
	f.mu.Unlock()
	return f.session, nil
}

func collectEvents(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var got []Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("timed out draining event stream")
			return nil
		}
	}
}

func TestListenerStreamEndsAfterFinal(t *testing.T) {
	eng := &fakeEngine{}
	l := NewListener(eng)

	events, err := l.Start(context.Background(), "en")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	eng.handler.OnReady()
	eng.handler.OnBegin()
	eng.handler.OnPartial("hel")
	eng.handler.OnFinal("hello")

	got := collectEvents(t, events)
	kinds := make([]EventKind, len(got))
	for i, ev := range got {
		kinds[i] = ev.Kind
	}

	want := []EventKind{EventReady, EventListening, EventPartial, EventFinal}
	if len(kinds) != len(want) {
		t.Fatalf("event kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("event kinds = %v, want %v", kinds, want)
		}
	}
	if got[len(got)-1].Text != "hello" {
		t.Errorf("final text = %q, want %q", got[len(got)-1].Text, "hello")
	}

	// Stream termination releases the session.
	deadline := time.Now().Add(time.Second)
	for !eng.session.isClosed() {
		if time.Now().After(deadline) {
			t.Fatal("session not closed after final event")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestListenerStreamEndsAfterError(t *testing.T) {
	eng := &fakeEngine{}
	l := NewListener(eng)

	events, err := l.Start(context.Background(), "en")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	eng.handler.OnError(errors.New("mic busy"))

	got := collectEvents(t, events)
	if len(got) != 1 || got[0].Kind != EventError {
		t.Fatalf("events = %v, want single error event", got)
	}
	if got[0].Err == nil {
		t.Error("error event carries no error")
	}
}

func TestListenerDeliversFinalWhenBufferFull(t *testing.T) {
	eng := &fakeEngine{}
	l := NewListener(eng)

	events, err := l.Start(context.Background(), "en")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Flood the stream well past its buffer before anyone reads. Volume
	// events may drop, but the final must still arrive and end the stream.
	for i := 0; i < 64; i++ {
		eng.handler.OnVolume(float64(i))
	}
	delivered := make(chan struct{})
	go func() {
		eng.handler.OnFinal("hello")
		close(delivered)
	}()

	got := collectEvents(t, events)
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("final callback never returned")
	}

	if len(got) == 0 {
		t.Fatal("no events delivered")
	}
	last := got[len(got)-1]
	if last.Kind != EventFinal || last.Text != "hello" {
		t.Fatalf("last event = %+v, want final %q", last, "hello")
	}

	deadline := time.Now().Add(time.Second)
	for !eng.session.isClosed() {
		if time.Now().After(deadline) {
			t.Fatal("session not closed after final event")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestListenerCancelClosesSession(t *testing.T) {
	eng := &fakeEngine{}
	l := NewListener(eng)

	ctx, cancel := context.WithCancel(context.Background())
	events, err := l.Start(ctx, "en")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	cancel()
	collectEvents(t, events) // drains until close

	deadline := time.Now().Add(time.Second)
	for !eng.session.isClosed() {
		if time.Now().After(deadline) {
			t.Fatal("session not closed after context cancellation")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestListenerOpenFailure(t *testing.T) {
	eng := &fakeEngine{err: errors.New("no microphone")}
	l := NewListener(eng)

	_, err := l.Start(context.Background(), "en")
	if types.KindOf(err) != types.KindOperationFailed {
		t.Errorf("Start() error kind = %q, want %q", types.KindOf(err), types.KindOperationFailed)
	}
}
