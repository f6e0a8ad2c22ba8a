// Package tokenizer normalizes raw post text and extracts weighted n-gram
// tokens for relevance scoring.
package tokenizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jonesrussell/marketlink/internal/domain"
)

// DefaultMinTokenLength is the minimum word length kept after filtering.
const DefaultMinTokenLength = 3

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	nonWordPattern    = regexp.MustCompile(`[^\w\s]+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Config holds tokenizer configuration.
type Config struct {
	// MinTokenLength drops words shorter than this after normalization.
	MinTokenLength int `yaml:"min_token_length"`
	// StopWords replaces the default stop-word set when non-empty.
	StopWords []string `yaml:"stop_words"`
}

// Tokenizer extracts weighted unigram/bigram/trigram tokens from text.
// It holds only immutable configuration, so a single instance is safe for
// concurrent use.
type Tokenizer struct {
	minLength int
	stopWords map[string]struct{}
}

// New creates a tokenizer from the given configuration, falling back to
// defaults for unset fields.
func New(cfg Config) *Tokenizer {
	minLength := cfg.MinTokenLength
	if minLength <= 0 {
		minLength = DefaultMinTokenLength
	}

	words := cfg.StopWords
	if len(words) == 0 {
		words = DefaultStopWords
	}
	stopWords := make(map[string]struct{}, len(words))
	for _, w := range words {
		stopWords[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	return &Tokenizer{minLength: minLength, stopWords: stopWords}
}

// Default returns a tokenizer with the default configuration.
func Default() *Tokenizer {
	return New(Config{})
}

// Tokenize normalizes text and returns its weighted token multiset,
// ordered trigrams first, then bigrams, then unigrams. The ordering is a
// debugging aid only; scoring treats the result as unordered. Tokens are
// not de-duplicated, so a repeated phrase contributes repeatedly to
// scoring. Empty or all-noise input yields nil.
func (t *Tokenizer) Tokenize(text string) []domain.Token {
	words := t.extractWords(text)
	if len(words) == 0 {
		return nil
	}

	tokens := make([]domain.Token, 0, 3*len(words))

	// Longer phrases first: trigrams, bigrams, then single words.
	for i := 0; i+2 < len(words); i++ {
		tokens = append(tokens, domain.Token{
			Text:   words[i] + " " + words[i+1] + " " + words[i+2],
			Weight: 3,
		})
	}
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, domain.Token{
			Text:   words[i] + " " + words[i+1],
			Weight: 2,
		})
	}
	for _, w := range words {
		tokens = append(tokens, domain.Token{Text: w, Weight: 1})
	}

	return tokens
}

// extractWords lower-cases, strips URLs and punctuation, and returns the
// retained word sequence after length and stop-word filtering.
func (t *Tokenizer) extractWords(text string) []string {
	if text == "" {
		return nil
	}

	normalized := strings.ToLower(foldDiacritics(text))
	normalized = urlPattern.ReplaceAllString(normalized, " ")
	normalized = nonWordPattern.ReplaceAllString(normalized, " ")
	normalized = whitespacePattern.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return nil
	}

	fields := strings.Split(normalized, " ")
	words := make([]string, 0, len(fields))
	for _, w := range fields {
		if len(w) < t.minLength {
			continue
		}
		if _, stop := t.stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}

// foldDiacritics strips combining marks so accented input matches its
// ASCII spelling ("Montréal" -> "Montreal").
func foldDiacritics(s string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, s)
	if err != nil {
		return s
	}
	return folded
}
