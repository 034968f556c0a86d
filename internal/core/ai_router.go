package core

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Tier names recorded into analytics for each served completion.
const (
	TierOnline = "online"
	TierLocal  = "local"
)

type onlineChecker interface {
	Online() bool
}

type remoteTier interface {
	CompletionProvider
	Configured() bool
}

// UsageRecorder receives the tier that served each completion. Optional.
type UsageRecorder interface {
	RecordAIUsage(tier string)
}

// AIService is the single completion entry point every feature uses.
// It prefers the remote tier when the network is reachable and a
// credential is configured, and falls back to the local tier otherwise.
// At most one remote attempt and one local attempt are made per call:
// retry policy belongs to callers, not this router.
type AIService struct {
	probe  onlineChecker
	remote remoteTier
	local  CompletionProvider
	usage  UsageRecorder
}

func NewAIService(probe onlineChecker, remote remoteTier, local CompletionProvider, usage UsageRecorder) *AIService {
	return &AIService{probe: probe, remote: remote, local: local, usage: usage}
}

// Ask resolves a prompt to text. On failure the returned error is the
// last attempted tier's *ProviderError; no fault is ever encoded into
// the text itself.
func (s *AIService) Ask(ctx context.Context, prompt string) (string, error) {
	if s.remote.Configured() && s.probe.Online() {
		text, err := s.remote.Complete(ctx, prompt)
		if err == nil {
			s.record(TierOnline)
			return text, nil
		}
		log.Warn().Err(err).Msg("remote completion failed, falling back to local model")
	}

	text, err := s.local.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	s.record(TierLocal)
	return text, nil
}

func (s *AIService) record(tier string) {
	if s.usage != nil {
		s.usage.RecordAIUsage(tier)
	}
}
