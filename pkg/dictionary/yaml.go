package dictionary

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

func decodeYAML(data []byte) (map[string]any, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("could not parse yaml: %w", err)
	}
	normalized, _ := normalizeYAML(root).(map[string]any)
	return normalized, nil
}

func parseYAML(data []byte) (*Dictionary, error) {
	root, err := decodeYAML(data)
	if err != nil {
		return nil, err
	}
	return build(root)
}

// normalizeYAML converts the map[interface{}]interface{} values yaml.v2
// produces for nested mappings into map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}
