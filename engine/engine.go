// Package engine defines the interfaces to the external ML engines: text
// recognition, translation, and language identification. Implementations
// live in subpackages; adapters in recognize, detect, and translate wrap
// these interfaces with validation, timeouts, and error mapping.
package engine

import (
	"context"
	"errors"
)

// Undetermined is the sentinel the language-identification engine returns
// when no language could be determined.
const Undetermined = "und"

// ErrUnsupportedPair is returned by a Factory when the engine has no model
// for the requested direction.
var ErrUnsupportedPair = errors.New("unsupported language pair")

// Image is an in-memory image buffer plus orientation metadata, as handed
// to the recognition engine. A nil Data slice means the buffer was released.
type Image struct {
	Width       int
	Height      int
	Data        []byte
	Orientation int // clockwise rotation in degrees: 0, 90, 180, 270
}

// Released reports whether the underlying buffer is gone.
func (img Image) Released() bool { return img.Data == nil }

// Recognizer extracts plain text from an image.
type Recognizer interface {
	Recognize(ctx context.Context, img Image) (string, error)
	Close() error
}

// DownloadConditions constrains model downloads, mirroring the engine's
// network-condition options.
type DownloadConditions struct {
	// RequireWiFi refuses the download on metered connections.
	RequireWiFi bool
}

// Translator is a ready-to-use translation direction (source -> target).
// Handles are created by a Factory, cached by translate.HandleCache, and
// must be closed when the owning session ends.
type Translator interface {
	// Translate translates text between the handle's fixed language pair.
	Translate(ctx context.Context, text string) (string, error)

	// EnsureModel makes sure the translation model for this direction is
	// present locally, downloading it under the given conditions if needed.
	EnsureModel(ctx context.Context, cond DownloadConditions) error

	Close() error
}

// Factory creates translator handles for engine language-code pairs.
type Factory interface {
	NewTranslator(sourceCode, targetCode string) (Translator, error)
}

// Identifier determines the language of a text, returning a BCP-47-like
// code or Undetermined.
type Identifier interface {
	Identify(ctx context.Context, text string) (string, error)
	Close() error
}
