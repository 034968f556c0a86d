package core

import "context"

type fakeProbe struct {
	online bool
}

func (p *fakeProbe) Online() bool { return p.online }

type fakeRemote struct {
	configured bool
	text       string
	err        error
	calls      int
}

func (r *fakeRemote) Configured() bool { return r.configured }

func (r *fakeRemote) Complete(ctx context.Context, prompt string) (string, error) {
	r.calls++
	return r.text, r.err
}

type fakeLocal struct {
	text  string
	err   error
	calls int
}

func (l *fakeLocal) Complete(ctx context.Context, prompt string) (string, error) {
	l.calls++
	return l.text, l.err
}

type fakeUsage struct {
	tiers []string
}

func (u *fakeUsage) RecordAIUsage(tier string) {
	u.tiers = append(u.tiers, tier)
}
