package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarationNamePredicates(t *testing.T) {
	tests := []struct {
		name    string
		kind    DeclKind
		dunder  bool
		private bool
		init    bool
	}{
		{"__init__", DeclMethod, true, false, true},
		{"__init__", DeclFunction, true, false, false},
		{"__repr__", DeclMethod, true, false, false},
		{"_helper", DeclFunction, false, true, false},
		{"__mangled", DeclMethod, false, true, false},
		{"____", DeclFunction, false, true, false},
		{"public", DeclFunction, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.kind.String(), func(t *testing.T) {
			d := Declaration{Name: tt.name, Kind: tt.kind}
			assert.Equal(t, tt.dunder, d.IsDunder())
			assert.Equal(t, tt.private, d.IsPrivate())
			assert.Equal(t, tt.init, d.IsInit())
		})
	}
}

func TestReturnsValue(t *testing.T) {
	assert.False(t, (&Declaration{Kind: DeclFunction}).ReturnsValue())
	assert.True(t, (&Declaration{Kind: DeclFunction, Returns: true}).ReturnsValue())
	assert.True(t, (&Declaration{Kind: DeclFunction, ReturnAnnotation: "int"}).ReturnsValue())
	assert.False(t, (&Declaration{Kind: DeclFunction, ReturnAnnotation: "None", Returns: true}).ReturnsValue())
	assert.False(t, (&Declaration{Kind: DeclClass, Returns: true}).ReturnsValue())
}

func TestDocumentedParamsSkipsReceiver(t *testing.T) {
	params := []Param{{Name: "self"}, {Name: "x"}}
	m := Declaration{Kind: DeclMethod, Params: params}
	assert.Equal(t, []Param{{Name: "x"}}, m.DocumentedParams())

	f := Declaration{Kind: DeclFunction, Params: params}
	assert.Len(t, f.DocumentedParams(), 2)

	star := Declaration{Kind: DeclMethod, Params: []Param{{Name: "self", Variadic: VariadicArgs}}}
	assert.Len(t, star.DocumentedParams(), 1)
}

func TestAddRaiseKeepsFirstSeenOrder(t *testing.T) {
	var d Declaration
	for _, n := range []string{"KeyError", "ValueError", "KeyError", "errors.Bad"} {
		d.AddRaise(n)
	}
	assert.Equal(t, []string{"KeyError", "ValueError", "errors.Bad"}, d.Raises)
}

func TestCloneIsDeep(t *testing.T) {
	d := Declaration{Params: []Param{{Name: "a"}}, Raises: []string{"E"}}
	c := d.Clone()
	c.Params[0].Name = "b"
	c.Raises[0] = "F"
	assert.Equal(t, "a", d.Params[0].Name)
	assert.Equal(t, "E", d.Raises[0])
}

func TestParamDisplayName(t *testing.T) {
	assert.Equal(t, "*args", Param{Name: "args", Variadic: VariadicArgs}.DisplayName())
	assert.Equal(t, "**kw", Param{Name: "kw", Variadic: VariadicKwargs}.DisplayName())
	assert.Equal(t, "x", Param{Name: "x"}.DisplayName())
}

func TestParamAnnotationAndDefault(t *testing.T) {
	bare := Param{Name: "x"}
	assert.False(t, bare.HasAnnotation())
	assert.False(t, bare.HasDefault())

	full := Param{Name: "n", Annotation: "int", Default: "0"}
	assert.True(t, full.HasAnnotation())
	assert.True(t, full.HasDefault())
}

func TestKindsMarshalByName(t *testing.T) {
	out, err := json.Marshal(Declaration{Name: "f", Kind: DeclMethod, Params: []Param{{Name: "a", Variadic: VariadicArgs}}})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"kind":"method"`)
	assert.Contains(t, string(out), `"variadic":"args"`)
	assert.NotContains(t, string(out), "BodyIndent")
}

func TestKindTextRoundTrip(t *testing.T) {
	for _, k := range []DeclKind{DeclFunction, DeclMethod, DeclClass} {
		text, err := k.MarshalText()
		require.NoError(t, err)
		var back DeclKind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back)
	}
	var v Variadic
	require.NoError(t, v.UnmarshalText([]byte("kwargs")))
	assert.Equal(t, VariadicKwargs, v)
	assert.Error(t, v.UnmarshalText([]byte("star")))
}
