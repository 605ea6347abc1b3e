package enginecache

import "strings"

// NormalizeExt converts an extension key into its canonical leading-dot form.
// The wildcard key and the empty string pass through untouched, so
// NormalizeExt is idempotent.
func NormalizeExt(ext string) string {
	if ext == "" || ext == Wildcard {
		return ext
	}
	if strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// describeEngine resolves the engine call shape into a canonical Descriptor.
// Register-time options merge left to right; options the engine carries itself
// (Configured) override them. Legacy Express-style renderers are adapted into
// the RenderFile capability here so the cache only ever holds canonical
// descriptors. The result may have a nil Render; validation happens before
// the cache is touched.
func describeEngine(engine Engine, extra []map[string]any) Descriptor {
	desc := Descriptor{Options: mergeMaps(nil, extra...)}
	if engine == nil {
		return desc
	}

	if fn, ok := engine.(RenderFunc); ok {
		if fn != nil {
			desc.Render = fn
		}
	} else {
		desc.Render = engine.Render
	}

	switch e := engine.(type) {
	case FileEngine:
		desc.RenderFile = e.RenderFile
	case LegacyFileEngine:
		desc.RenderFile = e.Express
	}

	if cfg, ok := engine.(Configured); ok {
		desc.Options = mergeMaps(desc.Options, cfg.EngineOptions())
	}
	return desc
}

// normalizeDescriptor fills descriptor defaults for the record call shape.
func normalizeDescriptor(desc Descriptor) Descriptor {
	if desc.Options == nil {
		desc.Options = map[string]any{}
	}
	return desc
}

// mergeMaps shallow-merges sources into dst in order, allocating dst when nil.
// Later sources overwrite earlier keys; nothing is ever removed.
func mergeMaps(dst map[string]any, sources ...map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for _, src := range sources {
		for key, value := range src {
			dst[key] = value
		}
	}
	return dst
}
