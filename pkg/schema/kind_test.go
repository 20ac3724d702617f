package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for token, want := range map[string]Kind{
		"str": KindString, "bool": KindBool, "char": KindChar, "int": KindInt, "path": KindPath,
	} {
		k, err := ParseKind(token)
		require.NoError(t, err)
		assert.Equal(t, want, k)
		assert.Equal(t, token, k.String())
	}

	_, err := ParseKind("float")
	assert.Error(t, err)
}

func TestHumanName(t *testing.T) {
	assert.Equal(t, "string", KindString.HumanName())
	assert.Equal(t, "boolean", KindBool.HumanName())
	assert.Equal(t, "char", KindChar.HumanName())
	assert.Equal(t, "integer", KindInt.HumanName())
	assert.Equal(t, "path", KindPath.HumanName())
}

func TestParseChar(t *testing.T) {
	tests := []struct {
		raw  string
		want rune
		ok   bool
	}{
		{"' '", ' ', true},
		{"'a'", 'a', true},
		{"  'é'  ", 'é', true},
		{"'~'", '~', true},
		{"xx", 0, false},
		{"''", 0, false},
		{"'ab'", 0, false},
		{"'''", 0, false},
		{"a", 0, false},
		{"'a", 0, false},
		{"x'a'y", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseChar(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBool(t *testing.T) {
	v, ok := ParseBool("true")
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = ParseBool("false")
	assert.True(t, ok)
	assert.False(t, v)

	for _, raw := range []string{"True", "TRUE", "1", "yes", " true", "notabool", ""} {
		_, ok := ParseBool(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseInt(t *testing.T) {
	v, ok := ParseInt("2")
	assert.True(t, ok)
	assert.Equal(t, int32(2), v)

	v, ok = ParseInt("-2147483648")
	assert.True(t, ok)
	assert.Equal(t, int32(-2147483648), v)

	for _, raw := range []string{"2147483648", "1.5", "0x10", "foo", "", " 1"} {
		_, ok := ParseInt(raw)
		assert.False(t, ok, raw)
	}
}

func TestCheckLiteral(t *testing.T) {
	assert.True(t, CheckLiteral(KindString, "anything"))
	assert.True(t, CheckLiteral(KindPath, ""))
	assert.True(t, CheckLiteral(KindInt, "42"))
	assert.False(t, CheckLiteral(KindInt, "forty-two"))
	assert.False(t, CheckLiteral(Kind(99), "x"))
}
