package loader

import (
	"fmt"
	"strings"

	"github.com/hustcer/crowbook/pkg/options"
)

// ParseAssignments turns key=value arguments into pairs, keeping their
// order. The value is everything after the first '=' and is not trimmed.
func ParseAssignments(args []string) ([]options.Pair, error) {
	pairs := make([]options.Pair, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: expected key=value", arg)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid assignment %q: empty key", arg)
		}
		pairs = append(pairs, options.Pair{Key: key, Value: value})
	}
	return pairs, nil
}
