package enginecache

// Wildcard is the extension key for the fallback descriptor returned by Get
// when no exact match exists. It is exempt from dot-normalization.
const Wildcard = "*"

// Registry owns two mappings: a flat options store and an engine cache keyed
// by normalized extension. All operations are synchronous call-and-return;
// the registry itself performs no I/O and no locking.
type Registry struct {
	options map[string]any
	cache   map[string]*Descriptor
}

// New constructs a registry and Inits it with the supplied option maps.
func New(options ...map[string]any) *Registry {
	r := &Registry{}
	r.Init(options...)
	return r
}

// Init discards all prior state: both mappings are recreated empty, the
// supplied option maps are shallow-merged into the fresh options store, and
// the bundled ".tmpl" and wildcard descriptors are installed. Calling Init
// twice with the same input yields the same final state.
func (r *Registry) Init(options ...map[string]any) {
	r.options = mergeMaps(nil, options...)
	r.cache = make(map[string]*Descriptor)
	r.installDefaults()
}

func (r *Registry) installDefaults() {
	tmpl := NewTmplEngine()
	r.cache[".tmpl"] = &Descriptor{
		Render:     tmpl.Render,
		RenderFile: tmpl.RenderFile,
		Options:    map[string]any{},
	}
	r.cache[Wildcard] = Noop()
}

// Extend shallow-merges opts into the options store: existing keys are
// overwritten, new keys added, keys absent from opts untouched. Returns the
// registry for chaining. Contents are not validated.
func (r *Registry) Extend(opts map[string]any) *Registry {
	r.options = mergeMaps(r.options, opts)
	return r
}

// Option reads a single option. The second return reports whether the key
// was set; an unset key is not an error.
func (r *Registry) Option(key string) (any, bool) {
	value, ok := r.options[key]
	return value, ok
}

// SetOption sets a single option and returns the registry for chaining.
func (r *Registry) SetOption(key string, value any) *Registry {
	r.options[key] = value
	return r
}

// Options returns the live options store. Mutating it mutates the registry.
func (r *Registry) Options() map[string]any {
	return r.options
}

// Register resolves engine into a descriptor and stores it under the
// normalized extension, replacing any prior entry wholesale. The optional
// option maps merge left to right into the descriptor; options the engine
// carries itself override them. Registration fails with *InvalidEngineError
// when the resolved descriptor has no render function, in which case the
// cache is left unmodified.
func (r *Registry) Register(ext string, engine Engine, options ...map[string]any) error {
	return r.put(ext, describeEngine(engine, options))
}

// RegisterDescriptor stores a caller-built descriptor under the normalized
// extension. Validation matches Register: a nil Render fails before the cache
// is touched.
func (r *Registry) RegisterDescriptor(ext string, desc Descriptor) error {
	return r.put(ext, normalizeDescriptor(desc))
}

func (r *Registry) put(ext string, desc Descriptor) error {
	key := NormalizeExt(ext)
	if desc.Render == nil {
		return &InvalidEngineError{Ext: key}
	}
	r.cache[key] = &desc
	return nil
}

// Load bulk-registers every entry whose Render is set, using the map key as
// the extension. Entries without a render function are silently skipped.
// Returns the registry for chaining.
func (r *Registry) Load(engines map[string]Descriptor) *Registry {
	for ext, desc := range engines {
		if desc.Render == nil {
			continue
		}
		_ = r.RegisterDescriptor(ext, desc)
	}
	return r
}

// Get returns the descriptor for the normalized extension, falling back to
// the wildcard descriptor when no exact match exists. As long as the bundled
// defaults are installed Get never returns nil; it returns nil only when the
// wildcard itself was removed and the extension is unknown.
//
// A wildcard fallback is indistinguishable from an exact match by value;
// callers that need to tell them apart compare identity against
// Get(Wildcard).
func (r *Registry) Get(ext string) *Descriptor {
	if desc, ok := r.cache[NormalizeExt(ext)]; ok {
		return desc
	}
	return r.cache[Wildcard]
}

// Engines returns the live engine cache keyed by normalized extension. It is
// not a copy: mutating the returned map mutates the registry.
func (r *Registry) Engines() map[string]*Descriptor {
	return r.cache
}

// Unregister removes the entry for the normalized extension. Removing an
// unknown key is a no-op.
func (r *Registry) Unregister(ext string) {
	delete(r.cache, NormalizeExt(ext))
}

// Clear replaces the engine cache with an empty map. The options store is
// untouched; only Init resets options.
func (r *Registry) Clear() {
	r.cache = make(map[string]*Descriptor)
}
