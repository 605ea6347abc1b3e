package enginecache

// RenderFunc renders raw template input with the supplied locals. It is the
// minimal callable an engine must provide; a bare RenderFunc registers
// directly because it satisfies Engine.
type RenderFunc func(input string, locals map[string]any) (string, error)

// Render implements Engine.
func (f RenderFunc) Render(input string, locals map[string]any) (string, error) {
	return f(input, locals)
}

// FileRenderFunc renders the template stored at path with the supplied locals.
type FileRenderFunc func(path string, locals map[string]any) (string, error)

// Engine is the capability contract every registered renderer must satisfy.
type Engine interface {
	Render(input string, locals map[string]any) (string, error)
}

// FileEngine is an Engine that can additionally render straight from a file
// path. The capability is optional; registration detects it.
type FileEngine interface {
	Engine
	RenderFile(path string, locals map[string]any) (string, error)
}

// LegacyFileEngine matches renderers ported from Express-style middleware,
// which expose their file renderer as Express instead of RenderFile. The
// registration boundary adapts the shape into a canonical Descriptor; the
// cache never sees it.
type LegacyFileEngine interface {
	Express(path string, locals map[string]any) (string, error)
}

// Configured is an Engine that carries its own option defaults. Options
// reported here override any options supplied at registration time.
type Configured interface {
	EngineOptions() map[string]any
}

// Descriptor is the cache value: one pluggable rendering backend. Render is
// required; RenderFile and Options are optional capabilities.
type Descriptor struct {
	Render     RenderFunc
	RenderFile FileRenderFunc
	Options    map[string]any
}
