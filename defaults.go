package enginecache

import (
	"fmt"
	"os"
	"sync"

	"github.com/aymerick/raymond"
)

// TmplEngine backs the bundled ".tmpl" descriptor. It interpolates locals
// into {{ variable }} placeholders using Handlebars-compatible templates and
// caches compiled templates by source so repeated renders skip the parse.
type TmplEngine struct {
	mu    sync.RWMutex
	cache map[string]*raymond.Template
}

// NewTmplEngine constructs an engine with an empty compile cache.
func NewTmplEngine() *TmplEngine {
	return &TmplEngine{
		cache: make(map[string]*raymond.Template),
	}
}

// Render interpolates locals into input.
func (e *TmplEngine) Render(input string, locals map[string]any) (string, error) {
	tmpl, err := e.compiled(input)
	if err != nil {
		return "", fmt.Errorf("enginecache: parse template: %w", err)
	}
	out, err := tmpl.Exec(locals)
	if err != nil {
		return "", fmt.Errorf("enginecache: execute template: %w", err)
	}
	return out, nil
}

// RenderFile reads the template at path and renders its contents.
func (e *TmplEngine) RenderFile(path string, locals map[string]any) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("enginecache: read template %s: %w", path, err)
	}
	return e.Render(string(data), locals)
}

func (e *TmplEngine) compiled(source string) (*raymond.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.cache[source]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[source]; ok {
		return tmpl, nil
	}
	tmpl, err := raymond.Parse(source)
	if err != nil {
		return nil, err
	}
	e.cache[source] = tmpl
	return tmpl, nil
}

// Noop returns the identity descriptor installed under the wildcard key: its
// render returns the input unchanged so lookups for unknown extensions stay
// safe to invoke.
func Noop() *Descriptor {
	return &Descriptor{
		Render: func(input string, _ map[string]any) (string, error) {
			return input, nil
		},
		Options: map[string]any{},
	}
}
