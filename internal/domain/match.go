package domain

import "strings"

// Token is a normalized word or word-phrase extracted from text. Weight
// equals the token's word count, so multi-word phrases outweigh single
// words during scoring.
type Token struct {
	Text   string `json:"text"`
	Weight int    `json:"weight"`
}

// NewToken builds a token from a normalized phrase, deriving the weight
// from its word count.
func NewToken(text string) Token {
	return Token{Text: text, Weight: strings.Count(text, " ") + 1}
}

// Match bundles a winning market with the evidence that selected it.
// A nil *Match is the "no match met the bar" signal; a non-nil Match
// always carries a score at or above the configured minimum.
type Match struct {
	Market   Market  `json:"market"`
	Score    float64 `json:"score"`
	Tokens   []Token `json:"tokens,omitempty"`
	Category string  `json:"category,omitempty"`
}
