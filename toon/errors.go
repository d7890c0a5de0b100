package toon

import (
	"errors"
	"fmt"
)

// EncodeError is raised when a value cannot be rendered by the engine.
// It names the offending kind so callers can see what was unsupported.
type EncodeError struct {
	Kind   Kind
	Detail string
}

func (e *EncodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("toon: cannot encode %s value", e.Kind)
	}
	return fmt.Sprintf("toon: cannot encode %s value: %s", e.Kind, e.Detail)
}

// ErrTranslatorUnavailable is returned when Options.TranslateTo is set
// but no Translator capability was provided to the Formatter.
var ErrTranslatorUnavailable = errors.New("toon: translation requested but no translator configured")
