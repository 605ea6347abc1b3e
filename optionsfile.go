package enginecache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseOptions decodes an options document into a flat map. JSON is used for
// .json paths, YAML for everything else. The path only selects the decoder
// and labels errors; it is not read.
func ParseOptions(data []byte, path string) (map[string]any, error) {
	opts := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &opts); err != nil {
			return nil, fmt.Errorf("enginecache: parse options %s: %w", path, err)
		}
		return opts, nil
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("enginecache: parse options %s: %w", path, err)
	}
	return opts, nil
}

// ExtendFromFile reads a YAML or JSON options file and shallow-merges it into
// the options store, exactly like Extend with the decoded map.
func (r *Registry) ExtendFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("enginecache: read options %s: %w", path, err)
	}
	opts, err := ParseOptions(data, path)
	if err != nil {
		return err
	}
	r.Extend(opts)
	return nil
}
