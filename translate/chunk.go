package translate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// sentenceEnd reports whether r terminates a sentence.
func sentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}

// splitChunks splits text into pieces of at most max bytes, preferring to
// break after sentence-ending punctuation, then at the last whitespace past
// the chunk midpoint, and only hard-splitting when neither exists. No text
// is dropped; rejoining the chunks in order reproduces the input modulo
// the whitespace consumed at the cut points.
func splitChunks(text string, max int) []string {
	var chunks []string
	for len(text) > max {
		cut := chunkBoundary(text, max)
		chunks = append(chunks, strings.TrimRightFunc(text[:cut], unicode.IsSpace))
		text = strings.TrimLeftFunc(text[cut:], unicode.IsSpace)
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// chunkBoundary picks the byte offset to cut text at, never past max and
// never inside a rune.
func chunkBoundary(text string, max int) int {
	window := max
	for window > 0 && !utf8.RuneStart(text[window]) {
		window--
	}

	best := -1
	lastSpace := -1
	for i, r := range text[:window] {
		next := i + utf8.RuneLen(r)
		if sentenceEnd(r) {
			best = next
		}
		if unicode.IsSpace(r) && i > window/2 {
			lastSpace = i
		}
	}

	if best > 0 {
		return best
	}
	if lastSpace > 0 {
		return lastSpace
	}
	// No boundary in the window: hard split at the size limit.
	return window
}
