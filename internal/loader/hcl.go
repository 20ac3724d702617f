package loader

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hustcer/crowbook/pkg/options"
	"github.com/zclconf/go-cty/cty"
)

// decodeHCL reads attributes as options. Unlabelled blocks prefix their
// attributes, so `output { epub = "book.epub" }` sets output.epub.
func decodeHCL(name string, data []byte) ([]options.Pair, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type %T", file.Body)
	}

	var pairs []options.Pair
	if err := flattenHCLBody("", body, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

func flattenHCLBody(prefix string, body *hclsyntax.Body, out *[]options.Pair) error {
	for name, attr := range body.Attributes {
		key := join(prefix, name)

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("option %q: %w", key, diags)
		}
		text, err := ctyText(val)
		if err != nil {
			return fmt.Errorf("option %q: %w", key, err)
		}
		*out = append(*out, options.Pair{Key: key, Value: text})
	}

	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			return fmt.Errorf("block %q: labels are not supported", join(prefix, block.Type))
		}
		if err := flattenHCLBody(join(prefix, block.Type), block.Body, out); err != nil {
			return err
		}
	}
	return nil
}

// ctyText converts a primitive cty value to option text.
func ctyText(val cty.Value) (string, error) {
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("value is empty")
	}

	ty := val.Type()
	switch {
	case ty.Equals(cty.String):
		return val.AsString(), nil
	case ty.Equals(cty.Bool):
		if val.True() {
			return "true", nil
		}
		return "false", nil
	case ty.Equals(cty.Number):
		bf := val.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int(nil)
			return i.String(), nil
		}
		return bf.Text('f', -1), nil
	default:
		return "", fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
