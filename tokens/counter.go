package tokens

import (
	"unicode/utf8"
)

// DefaultCharsPerToken is the default character-to-token ratio.
const DefaultCharsPerToken = 4.0

// Counter estimates token counts for text.
type Counter interface {
	// Count estimates the number of tokens in the given text.
	Count(text string) int
}

// EstimatingCounter uses a character-to-token ratio for estimation.
type EstimatingCounter struct {
	// CharsPerToken is the average characters per token.
	CharsPerToken float64
}

// NewEstimatingCounter creates a token counter with the default ratio.
func NewEstimatingCounter() *EstimatingCounter {
	return NewEstimatingCounterWithRatio(DefaultCharsPerToken)
}

// NewEstimatingCounterWithRatio creates a token counter with a custom ratio.
// If charsPerToken is <= 0, the default ratio is used.
func NewEstimatingCounterWithRatio(charsPerToken float64) *EstimatingCounter {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &EstimatingCounter{CharsPerToken: charsPerToken}
}

// Count estimates the number of tokens in text, rounded to the nearest
// integer. Runes are counted rather than bytes.
func (c *EstimatingCounter) Count(text string) int {
	n := float64(utf8.RuneCountInString(text)) / c.CharsPerToken
	return int(n + 0.5)
}

// EstimateTokens is a convenience function using the default counter.
func EstimateTokens(text string) int {
	return NewEstimatingCounter().Count(text)
}
