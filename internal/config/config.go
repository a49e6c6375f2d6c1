package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var parserMap = map[string]koanf.Parser{
	".yaml": yaml.Parser(),
	".yml":  yaml.Parser(),
	".toml": toml.Parser(),
	".json": json.Parser(),
}

// Load reads the given values files in order, overlays --set overrides, and
// resolves the result against the chart defaults. Later files win over
// earlier ones, and --set overrides win over all files.
func Load(files []string, sets []string) (*Values, error) {
	k := koanf.New(".")

	for _, path := range files {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	if len(sets) > 0 {
		overrides, err := ParseSetFlags(sets)
		if err != nil {
			return nil, err
		}
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	loaded := &Values{}
	if err := k.Unmarshal("", loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal values: %w", err)
	}

	return Resolve(loaded)
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("values file does not exist: %s", path)
	} else if err != nil {
		return fmt.Errorf("failed to check values file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parser, ok := parserMap[ext]
	if !ok {
		return fmt.Errorf("unsupported values file format: %s", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load values file %s: %w", path, err)
	}

	log.Debug("loaded values file", "path", path)
	return nil
}

// ParseSetFlags turns "a.b.c=value" pairs into a nested map suitable for
// overlaying onto the loaded configuration tree.
func ParseSetFlags(pairs []string) (map[string]interface{}, error) {
	root := make(map[string]interface{})

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set value %q, expected key=value", pair)
		}

		node := root
		segments := strings.Split(key, ".")
		for _, segment := range segments[:len(segments)-1] {
			child, ok := node[segment].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[segment] = child
			}
			node = child
		}
		node[segments[len(segments)-1]] = value
	}

	return root, nil
}
