package loader

import (
	"github.com/hustcer/crowbook/pkg/options"
	"github.com/pelletier/go-toml/v2"
)

func decodeTOML(data []byte) ([]options.Pair, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var pairs []options.Pair
	if err := flatten("", doc, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}
