package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// RemoteProvider is the hosted completion tier (Gemini). It is preferred
// for quality whenever the probe reports the network as reachable, and it
// maps every service fault to a ProviderError so the router can fall back
// to the local tier.
type RemoteProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewRemoteProvider builds the remote tier. An empty API key is not an
// error: it yields an unconfigured provider whose Complete reports
// AuthMissing without attempting any network call.
func NewRemoteProvider(ctx context.Context, apiKey, model string, timeout time.Duration) (*RemoteProvider, error) {
	p := &RemoteProvider{model: model, timeout: timeout}
	if apiKey == "" {
		return p, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	p.client = client
	return p, nil
}

// Configured reports whether a credential was supplied.
func (p *RemoteProvider) Configured() bool {
	return p.client != nil
}

func (p *RemoteProvider) Close() {
	if p.client != nil {
		if err := p.client.Close(); err != nil {
			log.Error().Err(err).Msg("error closing GenAI client")
		}
	}
}

func (p *RemoteProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.client == nil {
		return "", newProviderError(FailureAuthMissing, "missing remote API key")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	model := p.client.GenerativeModel(p.model)
	// Low temperature: most responses are re-parsed as structured data.
	model.SetTemperature(0.6)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyRemoteError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", newProviderError(FailureEmptyOutput, "remote response had no candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	if text.Len() == 0 {
		return "", newProviderError(FailureEmptyOutput, "remote response had no text parts")
	}
	return text.String(), nil
}

// classifyRemoteError maps SDK and transport failures onto the uniform
// taxonomy. Service-reported errors keep the service's message so the
// caller can diagnose quota and rate-limit responses.
func classifyRemoteError(err error) *ProviderError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newProviderError(FailureTimeout, "remote completion timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return newProviderError(FailureService, "%s", apiErr.Message)
	}

	return newProviderError(FailureNetwork, "%v", err)
}
