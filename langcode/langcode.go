// Package langcode maps application language codes to engine language
// identifiers and normalizes engine-detected codes back.
package langcode

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

// DefaultCode is the fallback when a code cannot be mapped.
const DefaultCode = "en"

// engineCodes maps application codes to the translation engine's language
// identifiers. The engine only understands base languages, so regional
// variants collapse to their base tag.
var engineCodes = map[string]string{
	"af": "af", "ar": "ar", "bg": "bg", "bn": "bn", "ca": "ca",
	"zh": "zh", "zh-CN": "zh", "zh-TW": "zh",
	"hr": "hr", "cs": "cs", "da": "da", "nl": "nl", "en": "en",
	"et": "et", "fi": "fi", "fr": "fr", "gl": "gl", "ka": "ka",
	"de": "de", "el": "el", "gu": "gu", "ht": "ht", "he": "he",
	"hi": "hi", "hu": "hu", "is": "is", "id": "id", "ga": "ga",
	"it": "it", "ja": "ja", "kn": "kn", "ko": "ko", "lv": "lv",
	"lt": "lt", "mk": "mk", "ms": "ms", "ml": "ml", "mt": "mt",
	"mr": "mr", "no": "no", "fa": "fa", "pl": "pl", "pt": "pt",
	"pa": "pa", "ro": "ro", "ru": "ru", "sr": "sr", "sk": "sk",
	"sl": "sl", "es": "es", "sw": "sw", "sv": "sv", "ta": "ta",
	"te": "te", "th": "th", "tr": "tr", "uk": "uk", "ur": "ur",
	"vi": "vi", "cy": "cy",
}

// detectedOverrides collapses engine-specific variants the generic BCP-47
// parse would not map onto an application code.
var detectedOverrides = map[string]string{
	"zh-Hans": "zh-CN",
	"zh-Hant": "zh-TW",
	"zh-HK":   "zh-TW",
	"iw":      "he",
}

// ToEngineCode maps an application language code to the engine identifier.
// It is total: unknown codes fall back to English with a warning, never an
// error.
func ToEngineCode(appCode string) string {
	if code, ok := engineCodes[appCode]; ok {
		return code
	}
	// Try the base language for unknown regional variants.
	if base, _, found := strings.Cut(appCode, "-"); found {
		if code, ok := engineCodes[base]; ok {
			return code
		}
	}
	slog.Warn("unknown language code, falling back to default",
		"code", appCode, "default", DefaultCode)
	return DefaultCode
}

// IsSupported reports whether the application knows the given code.
func IsSupported(appCode string) bool {
	_, ok := engineCodes[appCode]
	return ok
}

// NormalizeDetected collapses an engine-detected BCP-47 code to the
// application's language codes: "zh-Hans" becomes "zh-CN", "en-US" and
// "en-GB" become "en". Unparseable input is returned trimmed as-is.
func NormalizeDetected(detected string) string {
	detected = strings.TrimSpace(detected)
	if detected == "" {
		return ""
	}

	if code, ok := detectedOverrides[detected]; ok {
		return code
	}
	if _, ok := engineCodes[detected]; ok {
		return detected
	}

	tag, err := language.Parse(detected)
	if err != nil {
		slog.Warn("unparseable detected language code", "code", detected)
		return detected
	}

	base, _ := tag.Base()
	if code, ok := engineCodes[base.String()]; ok {
		return code
	}
	return base.String()
}
