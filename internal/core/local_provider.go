package core

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// LocalProvider is the resilience tier: it runs a locally-resident model
// through the ollama CLI, writing the prompt to stdin and collecting
// stdout within a wall-clock budget. Each call pays full process-startup
// cost; the subprocess is not pooled.
type LocalProvider struct {
	binary  string
	model   string
	timeout time.Duration
}

func NewLocalProvider(binary, model string, timeout time.Duration) *LocalProvider {
	if binary == "" {
		binary = "ollama"
	}
	return &LocalProvider{binary: binary, model: model, timeout: timeout}
}

func (p *LocalProvider) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.binary, "run", p.model)
	cmd.Stdin = strings.NewReader(prompt)
	// On deadline the context kills only the direct child; Wait would
	// still block on the output pipes while any spawned helper process
	// holds them open. WaitDelay abandons the pipes shortly after cancel
	// so the wall-clock budget is actually enforced.
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", newProviderError(FailureProcessNotFound, "%s not installed", p.binary)
		}
		if ctx.Err() == context.DeadlineExceeded {
			return "", newProviderError(FailureTimeout, "local model timed out after %s", p.timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", newProviderError(FailureProcess, "%s", msg)
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		return "", newProviderError(FailureEmptyOutput, "local model produced no output")
	}
	return output, nil
}
