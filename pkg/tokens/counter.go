package tokens

import "strings"

// DefaultTokensPerWord is the scaling ratio used by the approximate counter.
// English text averages roughly 1.3 sub-word tokens per whitespace word.
const DefaultTokensPerWord = 1.3

// Counter counts tokens in a piece of text.
// Implementations may use different algorithms (word-count heuristic,
// BPE, an exact tokenizer backend, etc.).
type Counter interface {
	// Count returns the number of tokens in text.
	Count(text string) int
}

// WordCounter is the approximate, dependency-free token counter.
// It counts whitespace-delimited words and scales by TokensPerWord.
type WordCounter struct {
	// TokensPerWord is the word-to-token scaling ratio.
	// Zero or negative values fall back to DefaultTokensPerWord.
	TokensPerWord float64
}

// NewWordCounter creates a WordCounter with the default scaling ratio.
func NewWordCounter() *WordCounter {
	return &WordCounter{TokensPerWord: DefaultTokensPerWord}
}

// Count returns the approximate token count for text.
func (c *WordCounter) Count(text string) int {
	ratio := c.TokensPerWord
	if ratio <= 0 {
		ratio = DefaultTokensPerWord
	}

	words := len(strings.Fields(text))
	return int(float64(words) * ratio)
}
