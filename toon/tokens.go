package toon

import (
	"fmt"
	"unicode/utf8"
)

// TokenCounter counts tokens in a finished string. Exact counting
// belongs to an external tokenizer; implementations plug in here.
type TokenCounter interface {
	Count(text string) (int, error)
}

// CounterFunc adapts a plain function to TokenCounter.
type CounterFunc func(text string) (int, error)

// Count calls f.
func (f CounterFunc) Count(text string) (int, error) {
	return f(text)
}

// Estimator is a heuristic TokenCounter: roughly four characters per
// token, rune-counted so multibyte text is not overcounted. It is not
// a tokenizer and never fails.
type Estimator struct{}

// Count returns the estimated token count for text.
func (Estimator) Count(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4, nil
}

// Savings returns the token savings percentage of optimized over
// original, as counted by c.
func Savings(original, optimized string, c TokenCounter) (float64, error) {
	orig, err := c.Count(original)
	if err != nil {
		return 0, fmt.Errorf("toon: counting original: %w", err)
	}
	opt, err := c.Count(optimized)
	if err != nil {
		return 0, fmt.Errorf("toon: counting optimized: %w", err)
	}
	if orig == 0 {
		return 0, nil
	}
	return 100 * (1 - float64(opt)/float64(orig)), nil
}
