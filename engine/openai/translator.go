package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"go.lenslate.dev/lenslate/engine"
)

// Factory creates chat-completion translator handles. It satisfies
// engine.Factory.
type Factory struct {
	client *Client
}

// NewFactory wraps client.
func NewFactory(client *Client) *Factory {
	return &Factory{client: client}
}

// NewTranslator returns a handle bound to one source/target pair.
func (f *Factory) NewTranslator(sourceCode, targetCode string) (engine.Translator, error) {
	if sourceCode == "" || targetCode == "" {
		return nil, engine.ErrUnsupportedPair
	}
	return &translator{
		client: f.client,
		source: sourceCode,
		target: targetCode,
	}, nil
}

type translator struct {
	client *Client
	source string
	target string
}

const translateSystemPrompt = "You are a translation engine. Translate the " +
	"user's text from %s to %s. Output only the translation, with no " +
	"explanations, no quotes, and no added commentary. Preserve line breaks."

func (t *translator) Translate(ctx context.Context, text string) (string, error) {
	system := fmt.Sprintf(translateSystemPrompt, t.source, t.target)

	resp, err := t.client.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(t.client.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("translate %s to %s: %w", t.source, t.target, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translate %s to %s: empty response", t.source, t.target)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// EnsureModel verifies the configured model is reachable. A remote model
// has nothing to download, but the availability check still respects the
// WiFi constraint so metered connections get the deferred-fallback path.
func (t *translator) EnsureModel(ctx context.Context, cond engine.DownloadConditions) error {
	if cond.RequireWiFi && t.client.net != nil && t.client.net.Metered() {
		return errors.New("model check deferred on metered connection")
	}
	if _, err := t.client.api.Models.Get(ctx, t.client.cfg.Model); err != nil {
		return fmt.Errorf("model %s unavailable: %w", t.client.cfg.Model, err)
	}
	return nil
}

func (t *translator) Close() error { return nil }
