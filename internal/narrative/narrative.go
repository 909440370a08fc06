// Package narrative isolates the LLM collaborator behind a one-method
// interface so the numeric pipeline stays deterministic. Every stage calls
// Compose, which degrades to a caller-supplied deterministic sentence when
// the generator is missing, slow, or failing.
package narrative

import (
	"context"
	"strings"
	"time"
)

// Generator produces natural-language analysis from a structured prompt.
type Generator interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// DefaultTimeout bounds a single narrative call.
const DefaultTimeout = 20 * time.Second

// Compose invokes the generator with a bounded timeout and falls back to the
// deterministic text on any failure. The returned flag is true when the text
// is the fallback, so callers can tell LLM-backed prose from degraded prose.
func Compose(ctx context.Context, gen Generator, timeout time.Duration, prompt, fallback string) (string, bool) {
	if gen == nil {
		return fallback, true
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := gen.Summarize(callCtx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		return fallback, true
	}
	return strings.TrimSpace(text), false
}
