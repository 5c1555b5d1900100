// Package summarize produces extractive summaries by scoring sentences on
// position, length, and discourse-marker signals.
package summarize

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.lenslate.dev/lenslate/internal/types"
)

// Style selects the summary variant.
type Style string

const (
	StyleBrief      Style = "brief"       // 1-2 sentences
	StyleDetailed   Style = "detailed"    // up to 5 sentences
	StyleBullets    Style = "bullets"     // key points, one per line
	StyleKeyPhrases Style = "key_phrases" // most frequent terms
)

const (
	// MinTextLength is the shortest text worth summarizing, in characters.
	MinTextLength = 100
	// MaxTextLength is the longest accepted input, in characters.
	MaxTextLength = 10000

	// workingLang is the language the heuristics are tuned for; summaries
	// for other targets are translated after extraction.
	workingLang = "en"

	defaultTimeout = 30 * time.Second

	minSentenceLength = 10
	keyPhraseCount    = 8
)

// sentenceBudget is how many sentences each style keeps.
var sentenceBudget = map[Style]int{
	StyleBrief:    2,
	StyleDetailed: 5,
	StyleBullets:  4,
}

// keywords are discourse and emphasis markers that raise a sentence's
// score.
var keywords = []string{
	"important", "significant", "key", "main", "primary", "essential",
	"critical", "major", "fundamental", "crucial", "vital", "notable",
	"first", "second", "third", "finally", "conclusion", "result",
	"because", "therefore", "however", "although", "moreover",
}

// Translator translates the finished summary when the target language is
// not the working language. translate.Service satisfies it.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Options configures the summarizer.
type Options struct {
	// Timeout bounds one summarization including the optional
	// translation pass. Defaults to 30 seconds.
	Timeout time.Duration
}

// Service is the summarizer. Create with New.
type Service struct {
	translator Translator
	timeout    time.Duration
}

// New creates a summarizer. translator may be nil, in which case summaries
// are returned in the working language regardless of target.
func New(translator Translator, opts Options) *Service {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Service{translator: translator, timeout: timeout}
}

// Summarize produces a summary of text in the requested style, translated
// to targetLang when that is not the working language.
func (s *Service) Summarize(ctx context.Context, text string, style Style, targetLang string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if n := utf8.RuneCountInString(trimmed); n < MinTextLength || n > MaxTextLength {
		return "", types.NewError(types.KindInvalidInput,
			"Text is too short or too long for summarization.", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var summary string
	switch style {
	case StyleKeyPhrases:
		summary = extractKeyPhrases(trimmed)
	case StyleBullets:
		points := topSentences(trimmed, sentenceBudget[style])
		for i, p := range points {
			points[i] = "• " + strings.TrimSpace(p)
		}
		summary = strings.Join(points, "\n")
	case StyleBrief, StyleDetailed:
		summary = strings.Join(topSentences(trimmed, sentenceBudget[style]), " ")
	default:
		return "", types.NewError(types.KindInvalidInput,
			fmt.Sprintf("Unknown summary style %q.", style), nil)
	}

	if targetLang != "" && targetLang != workingLang && s.translator != nil {
		translated, err := s.translator.Translate(ctx, summary, workingLang, targetLang)
		if err != nil {
			return "", types.NewError(types.KindSummarizationFailed,
				"Failed to summarize text: "+types.UserMessage(err), err)
		}
		summary = translated
	}

	return summary, nil
}

var regexSentenceSplit = regexp.MustCompile(`[.!?]+`)

// SplitSentences splits text on terminal punctuation, discarding fragments
// of 10 characters or fewer.
func SplitSentences(text string) []string {
	parts := regexSentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) > minSentenceLength {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

type scoredSentence struct {
	index int
	text  string
	score float64
}

// topSentences scores every sentence and returns the best n in original
// document order.
func topSentences(text string, n int) []string {
	sentences := SplitSentences(text)
	if len(sentences) <= n {
		return sentences
	}

	scored := make([]scoredSentence, len(sentences))
	for i, sentence := range sentences {
		scored[i] = scoredSentence{
			index: i,
			text:  sentence,
			score: scoreSentence(sentence, i, len(sentences)),
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})
	top := scored[:n]

	// Back to document order so the summary reads naturally.
	sort.Slice(top, func(a, b int) bool { return top[a].index < top[b].index })

	result := make([]string, n)
	for i, sc := range top {
		result[i] = sc.text
	}
	return result
}

func scoreSentence(sentence string, index, total int) float64 {
	position := 1.0
	switch {
	case index == 0:
		position = 3.0
	case index == total-1:
		position = 2.0
	case float64(index) < float64(total)*0.3:
		position = 1.5
	}

	length := 1.0
	switch {
	case len(sentence) < 50:
		length = 0.5
	case len(sentence) > 200:
		length = 0.7
	}

	hits := 0
	lower := strings.ToLower(sentence)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}

	return position * length * (1 + 0.1*float64(hits))
}

var regexNonAlpha = regexp.MustCompile(`[^a-zA-Z\s]`)

// extractKeyPhrases returns the 8 most frequent words of at least four
// letters as a flat list. This is frequency extraction, not phrase
// extraction.
func extractKeyPhrases(text string) string {
	cleaned := regexNonAlpha.ReplaceAllString(strings.ToLower(text), "")

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, word := range strings.Fields(cleaned) {
		if len(word) <= 3 {
			continue
		}
		if _, ok := counts[word]; !ok {
			firstSeen[word] = i
		}
		counts[word]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(a, b int) bool {
		if counts[words[a]] != counts[words[b]] {
			return counts[words[a]] > counts[words[b]]
		}
		return firstSeen[words[a]] < firstSeen[words[b]]
	})

	if len(words) > keyPhraseCount {
		words = words[:keyPhraseCount]
	}
	return "Key terms: " + strings.Join(words, ", ")
}
