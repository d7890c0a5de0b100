package translate

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Common target language codes.
const (
	Chinese    = "zh-cn"
	English    = "en"
	Hindi      = "hi"
	Spanish    = "es"
	French     = "fr"
	German     = "de"
	Japanese   = "ja"
	Korean     = "ko"
	Russian    = "ru"
	Arabic     = "ar"
	Portuguese = "pt"
	Italian    = "it"
	Dutch      = "nl"
)

var languageNames = map[string]string{
	"chinese":    Chinese,
	"english":    English,
	"hindi":      Hindi,
	"spanish":    Spanish,
	"french":     French,
	"german":     German,
	"japanese":   Japanese,
	"korean":     Korean,
	"russian":    Russian,
	"arabic":     Arabic,
	"portuguese": Portuguese,
	"italian":    Italian,
	"dutch":      Dutch,
}

// ResolveLanguage maps a human name ("chinese", "German") or a BCP 47
// tag ("zh-CN", "pt-BR") to the lowercase code the translation service
// expects.
func ResolveLanguage(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", fmt.Errorf("translate: empty language")
	}
	if code, ok := languageNames[key]; ok {
		return code, nil
	}

	tag, err := language.Parse(key)
	if err != nil {
		return "", fmt.Errorf("translate: unsupported language %q (known: %s)", name, knownLanguages())
	}
	return strings.ToLower(tag.String()), nil
}

func knownLanguages() string {
	names := make([]string, 0, len(languageNames))
	for n := range languageNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
