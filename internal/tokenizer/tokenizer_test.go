package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/jonesrussell/marketlink/internal/tokenizer"
)

func TestTokenizer_Tokenize_NgramCounts(t *testing.T) {
	tok := tokenizer.Default()

	// Four retained words: "federal reserve rate decision" (all length >= 3,
	// none are stop words).
	tokens := tok.Tokenize("Federal Reserve rate decision")

	var trigrams, bigrams, unigrams int
	for _, token := range tokens {
		switch token.Weight {
		case 3:
			trigrams++
		case 2:
			bigrams++
		case 1:
			unigrams++
		default:
			t.Errorf("unexpected weight %d for token %q", token.Weight, token.Text)
		}
	}

	// n retained words yield n-2 trigrams, n-1 bigrams, n unigrams.
	if trigrams != 2 {
		t.Errorf("trigrams: got %d, want 2", trigrams)
	}
	if bigrams != 3 {
		t.Errorf("bigrams: got %d, want 3", bigrams)
	}
	if unigrams != 4 {
		t.Errorf("unigrams: got %d, want 4", unigrams)
	}
}

func TestTokenizer_Tokenize_OrderLongestFirst(t *testing.T) {
	tok := tokenizer.Default()

	tokens := tok.Tokenize("federal reserve rate decision")
	if len(tokens) == 0 {
		t.Fatal("expected tokens")
	}

	if tokens[0].Text != "federal reserve rate" {
		t.Errorf("first token: got %q, want leading trigram", tokens[0].Text)
	}
	last := tokens[len(tokens)-1]
	if last.Weight != 1 {
		t.Errorf("last token weight: got %d, want 1", last.Weight)
	}

	// Weights never increase along the sequence.
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Weight > tokens[i-1].Weight {
			t.Fatalf("weight increased at %d: %d after %d", i, tokens[i].Weight, tokens[i-1].Weight)
		}
	}
}

func TestTokenizer_Tokenize_Normalization(t *testing.T) {
	tok := tokenizer.Default()

	tests := []struct {
		name string
		text string
	}{
		{"urls stripped", "big news https://example.com/status/123 coming today"},
		{"punctuation stripped", "Breaking!!! Rates... going, up?"},
		{"mixed case", "FED Raises RATES Again"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, token := range tok.Tokenize(tt.text) {
				if token.Text != strings.ToLower(token.Text) {
					t.Errorf("token %q is not lower-case", token.Text)
				}
				if strings.ContainsAny(token.Text, "!.,?/:") {
					t.Errorf("token %q contains punctuation", token.Text)
				}
				if strings.Contains(token.Text, "http") {
					t.Errorf("token %q contains a URL fragment", token.Text)
				}
			}
		})
	}
}

func TestTokenizer_Tokenize_FiltersShortAndStopWords(t *testing.T) {
	tok := tokenizer.Default()

	// "the", "is", "to" are stop words or too short; only "market" and
	// "crashing" survive.
	tokens := tok.Tokenize("the market is going to be crashing")

	for _, token := range tokens {
		for _, word := range strings.Split(token.Text, " ") {
			if len(word) < tokenizer.DefaultMinTokenLength {
				t.Errorf("token %q contains short word %q", token.Text, word)
			}
			if word == "the" || word == "going" {
				t.Errorf("token %q contains stop word %q", token.Text, word)
			}
		}
	}
}

func TestTokenizer_Tokenize_EmptyInput(t *testing.T) {
	tok := tokenizer.Default()

	for _, text := range []string{"", "   ", "a an it", "https://example.com"} {
		if tokens := tok.Tokenize(text); len(tokens) != 0 {
			t.Errorf("Tokenize(%q): got %d tokens, want 0", text, len(tokens))
		}
	}
}

func TestTokenizer_Tokenize_NoDeduplication(t *testing.T) {
	tok := tokenizer.Default()

	tokens := tok.Tokenize("rates rates")

	count := 0
	for _, token := range tokens {
		if token.Text == "rates" && token.Weight == 1 {
			count++
		}
	}
	if count != 2 {
		t.Errorf("repeated word: got %d unigrams, want 2", count)
	}
}

func TestTokenizer_Tokenize_FoldsDiacritics(t *testing.T) {
	tok := tokenizer.Default()

	tokens := tok.Tokenize("Montréal élection")
	if len(tokens) == 0 {
		t.Fatal("expected tokens")
	}
	for _, token := range tokens {
		if strings.ContainsRune(token.Text, 'é') {
			t.Errorf("token %q retains a diacritic", token.Text)
		}
	}
}

func TestTokenizer_CustomConfig(t *testing.T) {
	tok := tokenizer.New(tokenizer.Config{
		MinTokenLength: 5,
		StopWords:      []string{"market"},
	})

	// "market" is a custom stop word, "rate" is below the custom min
	// length; only "prediction" survives.
	tokens := tok.Tokenize("market rate prediction")

	if len(tokens) != 1 || tokens[0].Text != "prediction" {
		t.Errorf("got %v, want single token %q", tokens, "prediction")
	}
}
