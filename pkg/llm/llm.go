package llm

import (
	"context"
	"errors"
	"sync"
)

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ErrUnsupportedRuntime means no inference-capable runtime is configured.
// Terminal for the model path: callers must go straight to the deterministic
// fallback instead of retrying.
var ErrUnsupportedRuntime = errors.New("nenhum runtime de inferência disponível")

// ErrPlaceholderOutput means the model echoed template tokens instead of real
// extracted values. Recovered internally, never surfaced to the end user.
var ErrPlaceholderOutput = errors.New("modelo devolveu valores de template")

// Provider owns the shared model instance. Construction is lazy: the first
// Acquire builds (or refuses) the model, every later call reuses the same
// outcome. This keeps the load cost to one call per process and makes the
// lifecycle explicit instead of an ambient package variable.
type Provider struct {
	build func() (ChatModel, error)

	once  sync.Once
	model ChatModel
	err   error
}

// NewProvider wraps a constructor. The constructor should return
// ErrUnsupportedRuntime when the runtime lacks inference capability.
func NewProvider(build func() (ChatModel, error)) *Provider {
	return &Provider{build: build}
}

// Acquire returns the shared model, building it on first use.
func (p *Provider) Acquire() (ChatModel, error) {
	p.once.Do(func() {
		if p.build == nil {
			p.err = ErrUnsupportedRuntime
			return
		}
		p.model, p.err = p.build()
		if p.model == nil && p.err == nil {
			p.err = ErrUnsupportedRuntime
		}
	})
	return p.model, p.err
}
