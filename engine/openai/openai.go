// Package openai implements the engine interfaces against the OpenAI API
// and compatible endpoints: chat-completion translation and language
// identification, vision text recognition, audio synthesis, and one-shot
// transcription.
package openai

import (
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"go.lenslate.dev/lenslate/netcheck"
)

// Default models for each capability. All overridable via Config.
const (
	defaultModel           = "gpt-4o-mini"
	defaultVisionModel     = "gpt-4o-mini"
	defaultSpeechModel     = "tts-1"
	defaultTranscribeModel = "whisper-1"
	defaultVoice           = "alloy"
)

// Config holds credentials and model selection for one backend.
type Config struct {
	APIKey  string
	BaseURL string // empty means the official endpoint

	Model           string // chat model for translation and identification
	VisionModel     string // chat model for image text recognition
	SpeechModel     string // audio synthesis model
	TranscribeModel string // audio transcription model
	Voice           string // synthesis voice
}

func (c *Config) withDefaults() Config {
	cfg := *c
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = defaultVisionModel
	}
	if cfg.SpeechModel == "" {
		cfg.SpeechModel = defaultSpeechModel
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = defaultTranscribeModel
	}
	if cfg.Voice == "" {
		cfg.Voice = defaultVoice
	}
	return cfg
}

// Client is the shared SDK client behind every adapter in this package.
// Create with NewClient.
type Client struct {
	api openai.Client
	cfg Config
	net netcheck.Checker
}

// NewClient builds a client from cfg. net reports connectivity and
// metering; it may be nil, in which case downloads are never refused.
func NewClient(cfg Config, net netcheck.Checker) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		api: openai.NewClient(opts...),
		cfg: cfg.withDefaults(),
		net: net,
	}
}
