package toon

import (
	"context"
	"fmt"
)

// Output is the final record of a formatting run.
type Output struct {
	Content string `json:"content"`
	Format  string `json:"format"`

	// TokenCount is populated by the TokenCounter capability and left
	// nil when counting fails or no counter is configured.
	TokenCount *int `json:"token_count,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// Translator translates finished text to a target language. The
// translate package provides the production implementation.
type Translator interface {
	Translate(ctx context.Context, text, lang string) (string, error)
}

// Formatter runs the full pipeline: encode (with fallback), optional
// translation, optional token counting. Capabilities are injected;
// nil disables the corresponding stage.
type Formatter struct {
	Options    Options
	Counter    TokenCounter
	Translator Translator
}

// NewFormatter returns a Formatter with default options and a
// heuristic token counter.
func NewFormatter() *Formatter {
	return &Formatter{
		Options: DefaultOptions(),
		Counter: Estimator{},
	}
}

// Format encodes a value tree and runs the post-processing stages.
//
// Translation is a hard error only when explicitly requested and not
// available or failing. Token counting never fails the run: on error
// the count is simply absent.
func (f *Formatter) Format(ctx context.Context, v *Value) (Output, error) {
	content, err := EncodeWithOptions(v, f.Options)
	if err != nil {
		return Output{}, err
	}

	out := Output{Content: content, Format: "toon"}

	if lang := f.Options.TranslateTo; lang != "" {
		if f.Translator == nil {
			return Output{}, ErrTranslatorUnavailable
		}
		translated, err := f.Translator.Translate(ctx, content, lang)
		if err != nil {
			return Output{}, fmt.Errorf("toon: translate to %q: %w", lang, err)
		}
		out.Content = translated
		out.Metadata = map[string]string{"translated_to": lang}
	}

	if f.Counter != nil {
		if n, err := f.Counter.Count(out.Content); err == nil {
			out.TokenCount = &n
		}
	}

	return out, nil
}
