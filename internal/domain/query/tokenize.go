// Package query turns free-text queries into TF-IDF vectors aligned to a
// corpus vocabulary.
package query

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// Tokenize lowercases text and splits it on runs of non-word characters.
// Empty tokens are dropped.
func Tokenize(text string) []string {
	parts := nonWord.Split(strings.ToLower(text), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// RemoveStopwords returns the tokens that are not English stopwords.
func RemoveStopwords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !IsStopword(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// IsStopword reports whether a lowercased token is an English stopword.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
