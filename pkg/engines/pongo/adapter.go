// Package pongo adapts a pongo2 template set to the engine-cache descriptor
// contract. The adapter satisfies the Engine, FileEngine, and Configured
// capabilities structurally, so it registers like any other renderer.
package pongo

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	globals   map[string]any
	options   map[string]any
}

// WithBaseDir loads templates (and template includes) from a directory on
// disk. Defaults to the working directory when neither WithBaseDir nor WithFS
// is supplied.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS, typically an embed.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithGlobals seeds context values available to every template.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// WithOptions attaches engine-carried options, reported through
// EngineOptions and merged into the descriptor at registration time.
func WithOptions(options map[string]any) Option {
	return func(cfg *config) {
		if len(options) == 0 {
			return
		}
		if cfg.options == nil {
			cfg.options = make(map[string]any, len(options))
		}
		for key, value := range options {
			cfg.options[key] = value
		}
	}
}

// Engine renders pongo2 (django-style) templates from strings or files.
type Engine struct {
	mu      sync.RWMutex
	set     *pongo2.TemplateSet
	files   map[string]*pongo2.Template
	options map[string]any
}

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("pongo: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	if len(loaders) == 0 {
		loader, err := pongo2.NewLocalFileSystemLoader("")
		if err != nil {
			return nil, fmt.Errorf("pongo: create default loader: %w", err)
		}
		loaders = append(loaders, loader)
	}

	engine := &Engine{
		set:     pongo2.NewSet("engine-cache", loaders...),
		files:   make(map[string]*pongo2.Template),
		options: cfg.options,
	}
	if len(cfg.globals) > 0 {
		if engine.set.Globals == nil {
			engine.set.Globals = make(pongo2.Context)
		}
		engine.set.Globals.Update(pongo2.Context(cfg.globals))
	}
	return engine, nil
}

// Render parses input as template source and executes it with locals.
func (e *Engine) Render(input string, locals map[string]any) (string, error) {
	tmpl, err := e.set.FromString(input)
	if err != nil {
		return "", fmt.Errorf("pongo: parse template string: %w", err)
	}
	out, err := tmpl.Execute(pongo2.Context(locals))
	if err != nil {
		return "", fmt.Errorf("pongo: execute template string: %w", err)
	}
	return out, nil
}

// RenderFile executes the template at path with locals. Compiled templates
// are cached per path.
func (e *Engine) RenderFile(path string, locals map[string]any) (string, error) {
	tmpl, err := e.file(path)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(pongo2.Context(locals))
	if err != nil {
		return "", fmt.Errorf("pongo: execute template %q: %w", path, err)
	}
	return out, nil
}

// EngineOptions reports the options attached via WithOptions.
func (e *Engine) EngineOptions() map[string]any {
	return e.options
}

func (e *Engine) file(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.files[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.files[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load template %q: %w", path, err)
	}
	e.files[path] = tmpl
	return tmpl, nil
}
