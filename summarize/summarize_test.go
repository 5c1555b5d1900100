package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.lenslate.dev/lenslate/internal/types"
)

const sampleText = "The important discovery changed everything for the team. " +
	"Researchers spent years collecting observations in the field. " +
	"Some days brought nothing but rain and broken equipment. " +
	"The data was noisy and progress felt impossibly slow at times. " +
	"However, the final result was significant because it confirmed the theory. " +
	"In conclusion, persistence mattered more than any single experiment."

// fakeTranslator records the translation request it receives.
type fakeTranslator struct {
	source string
	target string
	err    error
}

func (f *fakeTranslator) Translate(_ context.Context, text, sourceLang, targetLang string) (string, error) {
	f.source = sourceLang
	f.target = targetLang
	if f.err != nil {
		return "", f.err
	}
	return "translated: " + text, nil
}

func TestSummarizeValidation(t *testing.T) {
	svc := New(nil, Options{})

	tests := []struct {
		name string
		text string
	}{
		{"too short", "Tiny text."},
		{"too short multibyte", strings.Repeat("短", 40)}, // 120 bytes, 40 characters
		{"too long", strings.Repeat("a", MaxTextLength+1)},
		{"too long multibyte", strings.Repeat("短", MaxTextLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Summarize(context.Background(), tt.text, StyleBrief, "en")
			if types.KindOf(err) != types.KindInvalidInput {
				t.Errorf("Summarize() error kind = %q, want %q", types.KindOf(err), types.KindInvalidInput)
			}
		})
	}
}

func TestSummarizeUnknownStyle(t *testing.T) {
	svc := New(nil, Options{})
	_, err := svc.Summarize(context.Background(), sampleText, Style("haiku"), "en")
	if types.KindOf(err) != types.KindInvalidInput {
		t.Errorf("Summarize() error kind = %q, want %q", types.KindOf(err), types.KindInvalidInput)
	}
}

func TestSummarizeBrief(t *testing.T) {
	svc := New(nil, Options{})
	got, err := svc.Summarize(context.Background(), sampleText, StyleBrief, "en")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	// Extractive: the summary is a subset of the input sentences, joined
	// in document order.
	var kept []string
	for _, s := range SplitSentences(sampleText) {
		if strings.Contains(got, s) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 || len(kept) > sentenceBudget[StyleBrief] {
		t.Errorf("brief summary kept %d sentences, want 1-%d", len(kept), sentenceBudget[StyleBrief])
	}
	if joined := strings.Join(kept, " "); joined != got {
		t.Errorf("summary = %q, want sentences joined in order: %q", got, joined)
	}
	// The opening sentence scores highest and must survive.
	if !strings.Contains(got, "The important discovery changed everything") {
		t.Errorf("brief summary dropped the opening sentence: %q", got)
	}
}

func TestSummarizeDetailedKeepsDocumentOrder(t *testing.T) {
	svc := New(nil, Options{})
	got, err := svc.Summarize(context.Background(), sampleText, StyleDetailed, "en")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	var kept []string
	for _, s := range SplitSentences(sampleText) {
		if strings.Contains(got, s) {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 || len(kept) > sentenceBudget[StyleDetailed] {
		t.Fatalf("detailed summary kept %d sentences, want 1-%d", len(kept), sentenceBudget[StyleDetailed])
	}
	// kept is already in document order; the summary must match it.
	if joined := strings.Join(kept, " "); joined != got {
		t.Errorf("summary = %q, want sentences joined in order: %q", got, joined)
	}
}

func TestSummarizeBullets(t *testing.T) {
	svc := New(nil, Options{})
	got, err := svc.Summarize(context.Background(), sampleText, StyleBullets, "en")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	lines := strings.Split(got, "\n")
	if len(lines) > sentenceBudget[StyleBullets] {
		t.Errorf("bullet summary has %d lines, want at most %d",
			len(lines), sentenceBudget[StyleBullets])
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "• ") {
			t.Errorf("line %d = %q, want bullet prefix", i, line)
		}
	}
}

func TestSummarizeKeyPhrases(t *testing.T) {
	svc := New(nil, Options{})
	got, err := svc.Summarize(context.Background(), sampleText, StyleKeyPhrases, "en")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if !strings.HasPrefix(got, "Key terms: ") {
		t.Fatalf("key phrase summary = %q, want %q prefix", got, "Key terms: ")
	}
	terms := strings.Split(strings.TrimPrefix(got, "Key terms: "), ", ")
	if len(terms) > keyPhraseCount {
		t.Errorf("key phrase count = %d, want at most %d", len(terms), keyPhraseCount)
	}
	for _, term := range terms {
		if len(term) <= 3 {
			t.Errorf("key term %q has %d letters, want more than 3", term, len(term))
		}
	}
}

func TestSummarizeTranslatesForOtherTargets(t *testing.T) {
	tr := &fakeTranslator{}
	svc := New(tr, Options{})

	got, err := svc.Summarize(context.Background(), sampleText, StyleBrief, "vi")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !strings.HasPrefix(got, "translated: ") {
		t.Errorf("summary = %q, want translated output", got)
	}
	if tr.source != "en" || tr.target != "vi" {
		t.Errorf("translation pair = %s->%s, want en->vi", tr.source, tr.target)
	}
}

func TestSummarizeEnglishTargetSkipsTranslation(t *testing.T) {
	tr := &fakeTranslator{err: errors.New("must not be called")}
	svc := New(tr, Options{})

	if _, err := svc.Summarize(context.Background(), sampleText, StyleBrief, "en"); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if tr.target != "" {
		t.Error("translator was called for an English target")
	}
}

func TestSummarizeTranslationFailure(t *testing.T) {
	tr := &fakeTranslator{err: errors.New("engine down")}
	svc := New(tr, Options{})

	_, err := svc.Summarize(context.Background(), sampleText, StyleBrief, "vi")
	if types.KindOf(err) != types.KindSummarizationFailed {
		t.Errorf("Summarize() error kind = %q, want %q", types.KindOf(err), types.KindSummarizationFailed)
	}
}

func TestScoreSentencePositionWeighting(t *testing.T) {
	// Same sentence text, different positions: the opener wins.
	s := strings.Repeat("word ", 15) // comfortably mid-length
	first := scoreSentence(s, 0, 10)
	last := scoreSentence(s, 9, 10)
	middle := scoreSentence(s, 5, 10)

	if first <= last {
		t.Errorf("first score %v <= last score %v", first, last)
	}
	if last <= middle {
		t.Errorf("last score %v <= middle score %v", last, middle)
	}
}

func TestScoreSentenceKeywordBoost(t *testing.T) {
	plain := "The weather stayed the same for the whole long week there."
	boosted := "The important key result was significant and crucial throughout."
	if scoreSentence(boosted, 5, 20) <= scoreSentence(plain, 5, 20) {
		t.Error("keyword-bearing sentence did not outscore the plain one")
	}
}

func TestSplitSentencesDiscardsFragments(t *testing.T) {
	got := SplitSentences("Yes. This sentence is long enough to keep. No!")
	if len(got) != 1 {
		t.Fatalf("SplitSentences() kept %d sentences, want 1: %v", len(got), got)
	}
	if got[0] != "This sentence is long enough to keep" {
		t.Errorf("SplitSentences()[0] = %q", got[0])
	}
}
