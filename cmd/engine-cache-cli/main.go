// Command engine-cache-cli renders a template file through an engine-cache
// registry, picking the engine by the file's extension. Unknown extensions
// fall through to the wildcard engine, which echoes the file unchanged.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	enginecache "github.com/doowb/engine-cache"
	"github.com/doowb/engine-cache/pkg/engines/pongo"
)

type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }

func (s *setFlags) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	template := flag.String("template", "", "template file to render")
	engine := flag.String("engine", "", "engine extension override (defaults to the template's extension)")
	dataFile := flag.String("data", "", "YAML or JSON file with template locals")
	optionsFile := flag.String("options", "", "YAML or JSON file merged into the registry options")
	output := flag.String("output", "", "output file (stdout if empty)")
	interactive := flag.Bool("interactive", false, "prompt for missing template and engine")
	var sets setFlags
	flag.Var(&sets, "set", "key=value local, repeatable")
	flag.Parse()

	reg := enginecache.New()
	registerBundled(reg)

	if *optionsFile != "" {
		if err := reg.ExtendFromFile(*optionsFile); err != nil {
			log.Fatalf("Failed to load options: %v", err)
		}
	}

	locals, err := collectLocals(*dataFile, sets)
	if err != nil {
		log.Fatalf("Failed to collect locals: %v", err)
	}

	path := *template
	ext := *engine
	if *interactive {
		path, ext, err = prompt(reg, path, ext)
		if err != nil {
			log.Fatalf("Prompt aborted: %v", err)
		}
	}
	if path == "" {
		log.Fatal("No template given; pass -template or -interactive")
	}
	if ext == "" {
		ext = filepath.Ext(path)
	}

	rendered, err := renderPath(reg, ext, path, locals)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Rendered output written to %s\n", *output)
	} else {
		fmt.Println(rendered)
	}
}

func registerBundled(reg *enginecache.Registry) {
	adapter, err := pongo.New()
	if err != nil {
		log.Fatalf("Failed to build pongo engine: %v", err)
	}
	for _, ext := range []string{"j2", "html"} {
		if err := reg.Register(ext, adapter); err != nil {
			log.Fatalf("Failed to register %s engine: %v", ext, err)
		}
	}
}

func renderPath(reg *enginecache.Registry, ext, path string, locals map[string]any) (string, error) {
	desc := reg.Get(ext)
	if desc == nil {
		return "", fmt.Errorf("no engine registered for %q and no wildcard fallback", ext)
	}
	if desc.RenderFile != nil {
		return desc.RenderFile(path, locals)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return desc.Render(string(data), locals)
}

func collectLocals(dataFile string, sets setFlags) (map[string]any, error) {
	locals := map[string]any{}
	if dataFile != "" {
		data, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, err
		}
		parsed, err := enginecache.ParseOptions(data, dataFile)
		if err != nil {
			return nil, err
		}
		for key, value := range parsed {
			locals[key] = value
		}
	}
	for _, pair := range sets {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid -set %q, want key=value", pair)
		}
		locals[strings.TrimSpace(key)] = value
	}
	return locals, nil
}

func prompt(reg *enginecache.Registry, path, ext string) (string, string, error) {
	if path == "" {
		if err := survey.AskOne(&survey.Input{Message: "Template file:"}, &path, survey.WithValidator(survey.Required)); err != nil {
			return "", "", err
		}
	}
	if ext == "" {
		exts := make([]string, 0, len(reg.Engines()))
		for key := range reg.Engines() {
			exts = append(exts, key)
		}
		sort.Strings(exts)
		if err := survey.AskOne(&survey.Select{
			Message: "Engine:",
			Options: exts,
			Default: enginecache.Wildcard,
		}, &ext); err != nil {
			return "", "", err
		}
	}
	return path, ext, nil
}
