package recognize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"go.lenslate.dev/lenslate/engine"
	"go.lenslate.dev/lenslate/internal/types"
)

// stubRecognizer implements engine.Recognizer for testing.
type stubRecognizer struct {
	text  string
	err   error
	calls int
}

func (s *stubRecognizer) Recognize(_ context.Context, _ engine.Image) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *stubRecognizer) Close() error { return nil }

func validImage() engine.Image {
	return engine.Image{Width: 100, Height: 100, Data: []byte{1}}
}

func TestRecognizeValidation(t *testing.T) {
	tests := []struct {
		name string
		img  engine.Image
		want types.ErrorKind
	}{
		{"released buffer", engine.Image{Width: 10, Height: 10}, types.KindInvalidInput},
		{"zero width", engine.Image{Width: 0, Height: 10, Data: []byte{1}}, types.KindInvalidInput},
		{"zero height", engine.Image{Width: 10, Height: 0, Data: []byte{1}}, types.KindInvalidInput},
		{"oversized width", engine.Image{Width: MaxDimension + 1, Height: 10, Data: []byte{1}}, types.KindInvalidInput},
		{"oversized height", engine.Image{Width: 10, Height: MaxDimension + 1, Data: []byte{1}}, types.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &stubRecognizer{text: "hello"}
			svc := New(eng, Options{})

			_, err := svc.Recognize(context.Background(), tt.img)
			if types.KindOf(err) != tt.want {
				t.Errorf("Recognize() error kind = %q, want %q", types.KindOf(err), tt.want)
			}
			if eng.calls != 0 {
				t.Errorf("engine called %d times on invalid input, want 0", eng.calls)
			}
		})
	}
}

func TestRecognizeNoTextFound(t *testing.T) {
	svc := New(&stubRecognizer{text: "  \n\t "}, Options{})
	_, err := svc.Recognize(context.Background(), validImage())
	if types.KindOf(err) != types.KindNoTextFound {
		t.Errorf("Recognize() error kind = %q, want %q", types.KindOf(err), types.KindNoTextFound)
	}
}

func TestRecognizeEngineErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want types.ErrorKind
	}{
		{"deadline becomes timeout", context.DeadlineExceeded, types.KindTimeout},
		{"other failure wrapped", errors.New("engine broke"), types.KindRecognitionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&stubRecognizer{err: tt.err}, Options{})
			_, err := svc.Recognize(context.Background(), validImage())
			if types.KindOf(err) != tt.want {
				t.Errorf("Recognize() error kind = %q, want %q", types.KindOf(err), tt.want)
			}
		})
	}
}

func TestRecognizeTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", MaxTextLength+500)
	svc := New(&stubRecognizer{text: long}, Options{})

	got, err := svc.Recognize(context.Background(), validImage())
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if len(got) > MaxTextLength {
		t.Errorf("result length = %d, want at most %d", len(got), MaxTextLength)
	}
}

func TestRecognizeTruncatesOnCharacterBoundary(t *testing.T) {
	// Multibyte text must be cut between characters, never inside one.
	long := strings.Repeat("語", MaxTextLength+500)
	svc := New(&stubRecognizer{text: long}, Options{})

	got, err := svc.Recognize(context.Background(), validImage())
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if !utf8.ValidString(got) {
		t.Fatal("truncated result is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n > MaxTextLength {
		t.Errorf("result length = %d characters, want at most %d", n, MaxTextLength)
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"windows line endings", "a\r\nb", "a\nb"},
		{"space runs collapse", "a   \t b", "a b"},
		{"blank line runs collapse", "a\n\n\n\nb", "a\n\nb"},
		{"pipes become I", "|| am here", "I am here"},
		{"missing space at case boundary", "helloWorld", "hello World"},
		{"control characters stripped", "a\x00b\x07c", "abc"},
		{"surrounding whitespace trimmed", "  text  ", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cleanup(tt.in); got != tt.want {
				t.Errorf("Cleanup(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
