// Package enginecache maps file extensions to pluggable template-rendering
// engines and keeps a flat key/value options store alongside the engine cache.
// The registry holds references to externally supplied renderers; it performs
// no rendering, no I/O, and no locking of its own.
//
// A Registry is an explicit, instantiable object. Construct one per consumer
// (or share a single instance through dependency injection) rather than
// relying on package-level state:
//
//	reg := enginecache.New()
//	reg.Register("hbs", myEngine)
//	desc := reg.Get("hbs")
//	out, err := desc.Render("{{ title }}", map[string]any{"title": "Home"})
//
// Lookups for unregistered extensions fall back to the wildcard ("*")
// descriptor installed by Init, whose render is the identity transform.
// Callers that need to tell "registered engine" apart from "wildcard
// fallback" can compare descriptor identity against Get(Wildcard).
//
// The registry is not safe for concurrent mutation; callers that share an
// instance across goroutines must synchronise around it.
package enginecache
