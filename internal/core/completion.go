package core

import (
	"context"
	"fmt"
)

// FailureKind classifies why a completion provider could not produce text.
type FailureKind string

const (
	FailureAuthMissing     FailureKind = "auth_missing"
	FailureNetwork         FailureKind = "network_error"
	FailureService         FailureKind = "service_error"
	FailureProcessNotFound FailureKind = "process_not_found"
	FailureProcess         FailureKind = "process_error"
	FailureTimeout         FailureKind = "timeout"
	FailureEmptyOutput     FailureKind = "empty_output"
)

// ProviderError is the uniform failure signal returned by both completion
// tiers. Providers never panic and never surface raw transport errors:
// everything crossing the provider boundary is one of these, so the
// router can decide to fall back without string matching.
type ProviderError struct {
	Kind    FailureKind
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newProviderError(kind FailureKind, format string, args ...any) *ProviderError {
	return &ProviderError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// CompletionProvider is one tier of the AI engine. Complete returns the
// model's text, or a *ProviderError describing the failure.
type CompletionProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
