package enginecache_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	enginecache "github.com/doowb/engine-cache"
)

func upper(input string, _ map[string]any) (string, error) {
	out := make([]byte, len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out), nil
}

// configuredEngine carries its own options, which must win over any options
// supplied at registration time.
type configuredEngine struct {
	options map[string]any
}

func (e *configuredEngine) Render(input string, _ map[string]any) (string, error) {
	return input, nil
}

func (e *configuredEngine) EngineOptions() map[string]any { return e.options }

// legacyEngine exposes its file renderer under the Express-style name.
type legacyEngine struct{}

func (legacyEngine) Render(input string, _ map[string]any) (string, error) {
	return input, nil
}

func (legacyEngine) Express(path string, _ map[string]any) (string, error) {
	return "from:" + path, nil
}

func cacheKeys(reg *enginecache.Registry) []string {
	keys := make([]string, 0, len(reg.Engines()))
	for key := range reg.Engines() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func TestInit_SeedsOptionsAndDefaults(t *testing.T) {
	reg := enginecache.New(map[string]any{"a": 1})

	if got, ok := reg.Option("a"); !ok || got != 1 {
		t.Fatalf("option a: want 1, got %v (ok=%v)", got, ok)
	}
	if diff := cmp.Diff([]string{"*", ".tmpl"}, cacheKeys(reg)); diff != "" {
		t.Fatalf("default cache keys mismatch (-want +got):\n%s", diff)
	}
}

func TestInit_DiscardsPriorState(t *testing.T) {
	reg := enginecache.New(map[string]any{"a": 1})
	reg.SetOption("b", 2)
	if err := reg.Register("hbs", enginecache.RenderFunc(upper)); err != nil {
		t.Fatalf("register: %v", err)
	}

	reg.Init(map[string]any{"a": 1})

	if _, ok := reg.Option("b"); ok {
		t.Fatal("option b survived Init")
	}
	if got, ok := reg.Option("a"); !ok || got != 1 {
		t.Fatalf("option a after re-init: want 1, got %v (ok=%v)", got, ok)
	}
	if diff := cmp.Diff([]string{"*", ".tmpl"}, cacheKeys(reg)); diff != "" {
		t.Fatalf("cache after re-init mismatch (-want +got):\n%s", diff)
	}
}

func TestGet_NormalizationIsIdempotent(t *testing.T) {
	reg := enginecache.New()
	if err := reg.Register("hbs", enginecache.RenderFunc(upper)); err != nil {
		t.Fatalf("register: %v", err)
	}

	bare := reg.Get("hbs")
	dotted := reg.Get(".hbs")
	if bare == nil || bare != dotted {
		t.Fatalf("get(hbs) and get(.hbs) should be the identical descriptor, got %p vs %p", bare, dotted)
	}
}

func TestRegister_FuncEngine(t *testing.T) {
	reg := enginecache.New()
	if err := reg.Register("hbs", enginecache.RenderFunc(upper)); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc := reg.Get("hbs")
	if desc == reg.Get(enginecache.Wildcard) {
		t.Fatal("expected an exact match, got the wildcard fallback")
	}
	out, err := desc.Render("hello", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "HELLO" {
		t.Fatalf("render: want HELLO, got %q", out)
	}
	if desc.RenderFile != nil {
		t.Fatal("bare render function should not gain a file capability")
	}
}

func TestRegister_InvalidEngine(t *testing.T) {
	reg := enginecache.New()

	err := reg.RegisterDescriptor("x", enginecache.Descriptor{})
	if err == nil {
		t.Fatal("expected error for descriptor without render")
	}
	if !enginecache.IsInvalidEngine(err) {
		t.Fatalf("expected InvalidEngineError, got %T: %v", err, err)
	}
	if _, ok := reg.Engines()[".x"]; ok {
		t.Fatal("failed registration must leave the cache unmodified")
	}

	if err := reg.Register("y", nil); !enginecache.IsInvalidEngine(err) {
		t.Fatalf("nil engine: expected InvalidEngineError, got %v", err)
	}
	if err := reg.Register("z", enginecache.RenderFunc(nil)); !enginecache.IsInvalidEngine(err) {
		t.Fatalf("nil render func: expected InvalidEngineError, got %v", err)
	}
}

func TestGet_WildcardFallback(t *testing.T) {
	reg := enginecache.New()

	desc := reg.Get("unknownext")
	if desc == nil {
		t.Fatal("expected the wildcard fallback, got nil")
	}
	if desc != reg.Get(enginecache.Wildcard) {
		t.Fatal("fallback should be the wildcard descriptor itself")
	}
	out, err := desc.Render("hello", map[string]any{"ignored": true})
	if err != nil {
		t.Fatalf("noop render: %v", err)
	}
	if out != "hello" {
		t.Fatalf("noop render: want identity, got %q", out)
	}
}

func TestGet_NilWhenWildcardRemoved(t *testing.T) {
	reg := enginecache.New()
	reg.Unregister(enginecache.Wildcard)

	if desc := reg.Get("unknownext"); desc != nil {
		t.Fatalf("expected nil without wildcard, got %+v", desc)
	}
	if desc := reg.Get("tmpl"); desc == nil {
		t.Fatal("exact matches must survive wildcard removal")
	}
}

func TestClearAndUnregister(t *testing.T) {
	reg := enginecache.New(map[string]any{"a": 1})

	reg.Unregister("tmpl")
	if diff := cmp.Diff([]string{"*"}, cacheKeys(reg)); diff != "" {
		t.Fatalf("unregister tmpl mismatch (-want +got):\n%s", diff)
	}

	// Unknown key is a silent no-op.
	reg.Unregister("nope")

	reg.Clear()
	if len(reg.Engines()) != 0 {
		t.Fatalf("clear: cache should be empty, got %v", cacheKeys(reg))
	}
	if got, ok := reg.Option("a"); !ok || got != 1 {
		t.Fatalf("clear must not touch options, got %v (ok=%v)", got, ok)
	}
}

func TestExtend_AccumulatesShallowMerges(t *testing.T) {
	reg := enginecache.New()
	reg.Extend(map[string]any{"a": 1}).Extend(map[string]any{"b": 2})

	if got, ok := reg.Option("a"); !ok || got != 1 {
		t.Fatalf("option a: want 1, got %v (ok=%v)", got, ok)
	}
	if got, ok := reg.Option("b"); !ok || got != 2 {
		t.Fatalf("option b: want 2, got %v (ok=%v)", got, ok)
	}

	reg.Extend(map[string]any{"a": 3})
	if got, _ := reg.Option("a"); got != 3 {
		t.Fatalf("option a after overwrite: want 3, got %v", got)
	}
}

func TestLoad_SkipsEntriesWithoutRender(t *testing.T) {
	reg := enginecache.New()
	reg.Load(map[string]enginecache.Descriptor{
		"hbs": {Render: upper},
		"txt": {},
	})

	if _, ok := reg.Engines()[".hbs"]; !ok {
		t.Fatal("load should register entries with a render function")
	}
	if _, ok := reg.Engines()[".txt"]; ok {
		t.Fatal("load should silently skip entries without a render function")
	}
}

func TestRegister_EngineOptionsOverrideRegistrationOptions(t *testing.T) {
	reg := enginecache.New()
	engine := &configuredEngine{options: map[string]any{"cache": false}}

	err := reg.Register("html", engine,
		map[string]any{"cache": true, "layout": "base"},
		map[string]any{"layout": "article"},
	)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	want := map[string]any{"cache": false, "layout": "article"}
	if diff := cmp.Diff(want, reg.Get("html").Options); diff != "" {
		t.Fatalf("descriptor options mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister_LegacyExpressShapeAdapted(t *testing.T) {
	reg := enginecache.New()
	if err := reg.Register("ejs", legacyEngine{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc := reg.Get("ejs")
	if desc.RenderFile == nil {
		t.Fatal("legacy Express shape should surface as RenderFile")
	}
	out, err := desc.RenderFile("views/home.ejs", nil)
	if err != nil {
		t.Fatalf("render file: %v", err)
	}
	if out != "from:views/home.ejs" {
		t.Fatalf("adapted RenderFile: got %q", out)
	}
}

func TestEngines_ReturnsLiveReference(t *testing.T) {
	reg := enginecache.New()
	desc := &enginecache.Descriptor{Render: upper, Options: map[string]any{}}

	reg.Engines()[".live"] = desc
	if reg.Get("live") != desc {
		t.Fatal("Engines must expose the live cache, not a copy")
	}
}

func TestOption_AbsentKey(t *testing.T) {
	reg := enginecache.New()
	if value, ok := reg.Option("missing"); ok || value != nil {
		t.Fatalf("unset option: want (nil,false), got (%v,%v)", value, ok)
	}
}
