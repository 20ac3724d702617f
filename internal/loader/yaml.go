package loader

import (
	"github.com/hustcer/crowbook/pkg/options"
	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) ([]options.Pair, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var pairs []options.Pair
	if err := flatten("", doc, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}
