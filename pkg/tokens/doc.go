// Package tokens provides pluggable token counting strategies.
//
// Token counting is modeled as a Counter interface so an exact tokenizer
// backend can be injected where one is available. The default WordCounter
// approximates sub-word tokenization by scaling the whitespace-delimited
// word count by a fixed ratio. For a given strategy the count is
// deterministic: the same text always produces the same token count.
package tokens
