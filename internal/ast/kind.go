package ast

import "fmt"

// DeclKind distinguishes the three documented header shapes.
type DeclKind uint8

const (
	DeclFunction DeclKind = iota
	DeclMethod
	DeclClass
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclMethod:
		return "method"
	case DeclClass:
		return "class"
	default:
		return "unknown"
	}
}

// MarshalText lets json/yaml output print the kind by name.
func (k DeclKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DeclKind) UnmarshalText(b []byte) error {
	for _, c := range []DeclKind{DeclFunction, DeclMethod, DeclClass} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown declaration kind %q", b)
}

// Variadic marks star parameters.
type Variadic uint8

const (
	VariadicNone   Variadic = iota
	VariadicArgs            // *args
	VariadicKwargs          // **kwargs
)

func (v Variadic) String() string {
	switch v {
	case VariadicArgs:
		return "args"
	case VariadicKwargs:
		return "kwargs"
	default:
		return "none"
	}
}

func (v Variadic) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Variadic) UnmarshalText(b []byte) error {
	for _, c := range []Variadic{VariadicNone, VariadicArgs, VariadicKwargs} {
		if c.String() == string(b) {
			*v = c
			return nil
		}
	}
	return fmt.Errorf("unknown variadic kind %q", b)
}
