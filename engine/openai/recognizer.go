package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"go.lenslate.dev/lenslate/engine"
)

// Recognizer extracts text from images with a vision chat model. It
// satisfies engine.Recognizer.
type Recognizer struct {
	client *Client
}

// NewRecognizer wraps client.
func NewRecognizer(client *Client) *Recognizer {
	return &Recognizer{client: client}
}

const recognizePrompt = "Extract all readable text from this image. " +
	"Output only the text in reading order, preserving line breaks. " +
	"If the image contains no text, output nothing."

// Recognize sends img as an inline data URL and returns the extracted
// text. The caller validates dimensions and handles empty results.
func (r *Recognizer) Recognize(ctx context.Context, img engine.Image) (string, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(img.Data)

	resp, err := r.client.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(r.client.cfg.VisionModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(recognizePrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("recognize image: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (r *Recognizer) Close() error { return nil }
