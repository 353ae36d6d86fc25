package dictionary

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

func decodeTOML(data []byte) (map[string]any, error) {
	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("could not parse toml: %w", err)
	}
	return root, nil
}

func parseTOML(data []byte) (*Dictionary, error) {
	root, err := decodeTOML(data)
	if err != nil {
		return nil, err
	}
	return build(root)
}
