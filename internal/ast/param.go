package ast

// Param is one declared parameter. Annotation and Default hold the source
// text verbatim, with line breaks inside them collapsed to single spaces.
type Param struct {
	Name       string   `json:"name" yaml:"name"`
	Annotation string   `json:"annotation,omitempty" yaml:"annotation,omitempty"`
	Default    string   `json:"default,omitempty" yaml:"default,omitempty"`
	Variadic   Variadic `json:"variadic" yaml:"variadic"`
}

// HasAnnotation is false for bare `x`; the block then shows a placeholder type.
func (p Param) HasAnnotation() bool { return p.Annotation != "" }

// HasDefault marks the argument optional in the rendered block.
func (p Param) HasDefault() bool { return p.Default != "" }

// DisplayName returns the name with its star prefix, the way it is spelled
// in the header.
func (p Param) DisplayName() string {
	switch p.Variadic {
	case VariadicArgs:
		return "*" + p.Name
	case VariadicKwargs:
		return "**" + p.Name
	default:
		return p.Name
	}
}

// IsReceiver reports whether the parameter is the implicit self/cls of a method.
func (p Param) IsReceiver() bool {
	return p.Variadic == VariadicNone && (p.Name == "self" || p.Name == "cls")
}
