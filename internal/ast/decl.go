package ast

import (
	"slices"
	"strings"
)

// Declaration describes one def/class header and what the scanner learned
// about its body. Values are not modified after the scan returns them.
type Declaration struct {
	Name             string   `json:"name" yaml:"name"`
	QualName         string   `json:"qualname" yaml:"qualname"`
	Kind             DeclKind `json:"kind" yaml:"kind"`
	Async            bool     `json:"async,omitempty" yaml:"async,omitempty"`
	Decorators       []string `json:"decorators,omitempty" yaml:"decorators,omitempty"`
	Params           []Param  `json:"params,omitempty" yaml:"params,omitempty"`
	ReturnAnnotation string   `json:"return_annotation,omitempty" yaml:"return_annotation,omitempty"`

	// Depth is the indentation level of the header: the number of
	// enclosing blocks of any kind.
	Depth       int    `json:"depth" yaml:"depth"`
	HeaderStart uint32 `json:"header_start" yaml:"header_start"` // 1-based line of def/class
	HeaderEnd   uint32 `json:"header_end" yaml:"header_end"`     // 1-based line holding the closing ':'

	HasDocumentation   bool `json:"documented" yaml:"documented"`
	BlankDocumentation bool `json:"blank_documentation,omitempty" yaml:"blank_documentation,omitempty"`
	// Inline is set for bodies that sit on the header line (def f(): pass).
	Inline bool `json:"inline,omitempty" yaml:"inline,omitempty"`

	// BodyIndent is the leading whitespace of the first body line.
	BodyIndent string `json:"-" yaml:"-"`
	// InsertOffset is the byte offset right after the header's last line terminator.
	InsertOffset uint32 `json:"-" yaml:"-"`

	Returns bool     `json:"returns,omitempty" yaml:"returns,omitempty"`
	Raises  []string `json:"raises,omitempty" yaml:"raises,omitempty"`
}

func (d *Declaration) IsClass() bool  { return d.Kind == DeclClass }
func (d *Declaration) IsMethod() bool { return d.Kind == DeclMethod }

// IsInit reports whether the declaration is a constructor method.
func (d *Declaration) IsInit() bool {
	return d.Kind == DeclMethod && d.Name == "__init__"
}

// IsDunder reports names of the __x__ form.
func (d *Declaration) IsDunder() bool {
	return len(d.Name) > 4 && strings.HasPrefix(d.Name, "__") && strings.HasSuffix(d.Name, "__")
}

// IsPrivate reports names with a leading underscore that are not dunders.
func (d *Declaration) IsPrivate() bool {
	return strings.HasPrefix(d.Name, "_") && !d.IsDunder()
}

// NeedsDocumentation reports whether a block can and should be inserted.
func (d *Declaration) NeedsDocumentation() bool {
	return !d.HasDocumentation && !d.Inline
}

// ReturnsValue reports whether a Returns section applies: an annotation
// other than None, or an unannotated body with a non-trivial return.
func (d *Declaration) ReturnsValue() bool {
	if d.Kind == DeclClass {
		return false
	}
	if d.ReturnAnnotation != "" {
		return d.ReturnAnnotation != "None"
	}
	return d.Returns
}

// DocumentedParams returns the parameters that get an entry in the
// Arguments section; the receiver of a method is left out.
func (d *Declaration) DocumentedParams() []Param {
	params := d.Params
	if d.Kind == DeclMethod && len(params) > 0 && params[0].IsReceiver() {
		params = params[1:]
	}
	return params
}

// AddRaise records a raised name once, keeping first-seen order.
func (d *Declaration) AddRaise(name string) {
	if !slices.Contains(d.Raises, name) {
		d.Raises = append(d.Raises, name)
	}
}

// Clone returns a deep copy.
func (d Declaration) Clone() Declaration {
	d.Decorators = slices.Clone(d.Decorators)
	d.Params = slices.Clone(d.Params)
	d.Raises = slices.Clone(d.Raises)
	return d
}
