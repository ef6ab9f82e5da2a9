package tokens

import "testing"

func TestWordCounter_Count(t *testing.T) {
	c := NewWordCounter()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single word", "hello", 1},
		{"ten words", "one two three four five six seven eight nine ten", 13},
		{"extra whitespace", "  spaced   out\twords\n", 3},
		{"hundred words", repeatWords("token", 100), 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Count(tt.text)
			if got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestWordCounter_Deterministic(t *testing.T) {
	c := NewWordCounter()
	text := repeatWords("deterministic", 37)

	first := c.Count(text)
	for i := 0; i < 10; i++ {
		if got := c.Count(text); got != first {
			t.Fatalf("Count changed between invocations: %d != %d", got, first)
		}
	}
}

func TestWordCounter_ZeroRatioFallsBack(t *testing.T) {
	c := &WordCounter{}

	if got := c.Count("one two three four five six seven eight nine ten"); got != 13 {
		t.Errorf("Expected default ratio fallback to yield 13, got %d", got)
	}
}

func TestWordCounter_CustomRatio(t *testing.T) {
	c := &WordCounter{TokensPerWord: 2.0}

	if got := c.Count("a b c"); got != 6 {
		t.Errorf("Expected 6 with ratio 2.0, got %d", got)
	}
}

func repeatWords(word string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += " "
		}
		out += word
	}
	return out
}
