// Package sanitize decorates any registered engine so its rendered output is
// passed through a bluemonday HTML policy before reaching the caller. The
// file-rendering capability of the inner engine is preserved when present.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"

	enginecache "github.com/doowb/engine-cache"
)

// Option configures the decorator.
type Option func(*Engine)

// WithPolicy overrides the default UGC policy. A nil policy is ignored.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(e *Engine) {
		if policy != nil {
			e.policy = policy
		}
	}
}

// Engine wraps an inner engine and sanitizes its output.
type Engine struct {
	inner  enginecache.Engine
	policy *bluemonday.Policy
}

// New wraps inner with output sanitization. The returned engine exposes
// RenderFile only when inner does, so registration detects the same
// capabilities the inner engine had.
func New(inner enginecache.Engine, options ...Option) enginecache.Engine {
	e := &Engine{
		inner:  inner,
		policy: bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if fe, ok := inner.(enginecache.FileEngine); ok {
		return &fileEngine{Engine: e, inner: fe}
	}
	return e
}

// Render delegates to the inner engine and sanitizes the result.
func (e *Engine) Render(input string, locals map[string]any) (string, error) {
	out, err := e.inner.Render(input, locals)
	if err != nil {
		return "", err
	}
	return e.policy.Sanitize(out), nil
}

type fileEngine struct {
	*Engine
	inner enginecache.FileEngine
}

func (e *fileEngine) RenderFile(path string, locals map[string]any) (string, error) {
	out, err := e.inner.RenderFile(path, locals)
	if err != nil {
		return "", err
	}
	return e.policy.Sanitize(out), nil
}
