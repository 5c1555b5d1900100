package openai

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go/v3"

	"go.lenslate.dev/lenslate/speech"
)

// ttsLanguages are the languages the synthesis voices render reliably.
var ttsLanguages = map[string]bool{
	"zh": true, "en": true, "fr": true, "de": true, "it": true,
	"ja": true, "ko": true, "es": true, "vi": true,
}

// Synthesizer renders speech audio and writes it to a sink, typically an
// audio player's input. It satisfies speech.Synthesizer.
type Synthesizer struct {
	client *Client
	sink   io.Writer
}

// NewSynthesizer wraps client, writing rendered audio to sink.
func NewSynthesizer(client *Client, sink io.Writer) *Synthesizer {
	return &Synthesizer{client: client, sink: sink}
}

// Synthesize renders text and streams the audio to the sink. It blocks
// until the stream is fully written or ctx is cancelled.
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string, rate float64) error {
	resp, err := s.client.api.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: openai.SpeechModel(s.client.cfg.SpeechModel),
		Input: text,
		Voice: openai.AudioSpeechNewParamsVoice(s.client.cfg.Voice),
		Speed: openai.Float(rate),
	})
	if err != nil {
		return fmt.Errorf("synthesize speech: %w", err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(s.sink, resp.Body); err != nil {
		return fmt.Errorf("write speech audio: %w", err)
	}
	return nil
}

func (s *Synthesizer) SupportsLanguage(lang string) bool {
	return ttsLanguages[lang]
}

func (s *Synthesizer) DefaultLanguage() string { return "en" }

func (s *Synthesizer) Close() error { return nil }

// AudioSource supplies recorded audio for one transcription, for example
// a microphone capture or a file.
type AudioSource func(ctx context.Context) (io.ReadCloser, error)

// RecognitionEngine transcribes one utterance per session. It satisfies
// speech.RecognitionEngine: each Open captures audio from the source,
// transcribes it, and delivers exactly one final or error callback.
type RecognitionEngine struct {
	client *Client
	source AudioSource
}

// NewRecognitionEngine wraps client, capturing audio via source.
func NewRecognitionEngine(client *Client, source AudioSource) *RecognitionEngine {
	return &RecognitionEngine{client: client, source: source}
}

type session struct {
	cancel context.CancelFunc
}

func (s *session) Close() error {
	s.cancel()
	return nil
}

// Open starts a one-shot transcription session. Callbacks arrive on a
// background goroutine; closing the returned session cancels capture.
func (e *RecognitionEngine) Open(lang string, h speech.SessionHandler) (io.Closer, error) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if h.OnReady != nil {
			h.OnReady()
		}

		audio, err := e.source(ctx)
		if err != nil {
			e.fail(h, fmt.Errorf("open audio source: %w", err))
			return
		}
		defer audio.Close()

		if h.OnBegin != nil {
			h.OnBegin()
		}

		params := openai.AudioTranscriptionNewParams{
			Model: openai.AudioModel(e.client.cfg.TranscribeModel),
			File:  audio,
		}
		if lang != "" {
			params.Language = openai.String(lang)
		}

		result, err := e.client.api.Audio.Transcriptions.New(ctx, params)
		if err != nil {
			e.fail(h, fmt.Errorf("transcribe audio: %w", err))
			return
		}
		if h.OnFinal != nil {
			h.OnFinal(result.Text)
		}
	}()

	return &session{cancel: cancel}, nil
}

func (e *RecognitionEngine) fail(h speech.SessionHandler, err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}
