package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Client abstracts LLM providers for structured field extraction.
type Client interface {
	ExtractFields(ctx context.Context, documentText string) (json.RawMessage, error)
}

// ErrUnavailable is returned when the provider cannot be reached or rejects
// the request for transient reasons.
var ErrUnavailable = errors.New("llm service unavailable")

// MalformedOutputError is returned when the provider answered but its output
// could not be parsed as the expected JSON object. Raw keeps the verbatim
// output for diagnostics.
type MalformedOutputError struct {
	Raw string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("llm output is not a valid JSON object (%d bytes)", len(e.Raw))
}

// PlaceholderClient is a stub implementation used when no provider is
// configured; every call reports the upstream as unavailable.
type PlaceholderClient struct{}

func (PlaceholderClient) ExtractFields(ctx context.Context, documentText string) (json.RawMessage, error) {
	_ = ctx
	_ = documentText
	return nil, ErrUnavailable
}

// StripFences removes a wrapping markdown code fence from model output.
// Providers occasionally wrap JSON in ```json blocks even when asked not to.
func StripFences(raw string) string {
	out := strings.TrimSpace(raw)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
