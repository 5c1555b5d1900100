package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"go.lenslate.dev/lenslate/engine"
)

// Identifier detects the language of a text with a chat model. It
// satisfies engine.Identifier and can stand in for the local detector
// when an API-backed answer is preferred.
type Identifier struct {
	client *Client
}

// NewIdentifier wraps client.
func NewIdentifier(client *Client) *Identifier {
	return &Identifier{client: client}
}

const identifyPrompt = "Identify the language of the user's text. Reply " +
	"with only its BCP-47 code (for example en, vi, zh-Hans). If you " +
	"cannot determine the language, reply with exactly: und"

// Identify returns a BCP-47 tag, or engine.Undetermined when the model
// cannot decide.
func (d *Identifier) Identify(ctx context.Context, text string) (string, error) {
	resp, err := d.client.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(d.client.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(identifyPrompt),
			openai.UserMessage(text),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("identify language: %w", err)
	}
	if len(resp.Choices) == 0 {
		return engine.Undetermined, nil
	}

	code := strings.TrimSpace(resp.Choices[0].Message.Content)
	// Anything that does not look like a language tag is treated as
	// undetermined rather than propagated downstream.
	if code == "" || len(code) > 12 || strings.ContainsAny(code, " \n.") {
		return engine.Undetermined, nil
	}
	return code, nil
}

func (d *Identifier) Close() error { return nil }
