package docgen

import (
	"strings"

	"docweave/internal/ast"
)

type SectionKind uint8

const (
	SectionSummary SectionKind = iota
	SectionArgs
	SectionReturns
	SectionRaises
)

// Arg is one entry of the Arguments section.
type Arg struct {
	Name        string // с '*' / '**' для вариативных
	Type        string
	Default     string
	Description string
}

func (a Arg) Optional() bool { return a.Default != "" }

type Section struct {
	Kind       SectionKind
	Summary    string   // SectionSummary
	Args       []Arg    // SectionArgs
	ReturnType string   // SectionReturns
	Raises     []string // SectionRaises
}

// Block is a documentation skeleton bound to an insertion point.
type Block struct {
	Line     uint32 // header line the block goes under
	Offset   uint32 // byte offset of the insertion
	Indent   string // body indentation of the declaration
	Sections []Section
}

// SummaryOnly reports whether the block renders as a single line.
func (b Block) SummaryOnly() bool {
	return len(b.Sections) == 1 && b.Sections[0].Kind == SectionSummary
}

const (
	returnDescription = "Description of return value."
	raiseDescription  = "If an error condition occurs."
	argsDescription   = "Variable arguments."
	kwargsDescription = "Keyword arguments."
	fallbackIndent    = "    "
)

type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

func (g *Generator) Options() Options { return g.opts }

// Synthesize builds the block for decl. It does not look at
// decl.HasDocumentation; callers pick which declarations to document.
func (g *Generator) Synthesize(decl *ast.Declaration) Block {
	indent := decl.BodyIndent
	if indent == "" {
		indent = fallbackIndent
	}
	b := Block{
		Line:   decl.HeaderEnd,
		Offset: decl.InsertOffset,
		Indent: indent,
	}
	b.Sections = append(b.Sections, Section{Kind: SectionSummary, Summary: g.summary(decl)})

	if decl.Kind != ast.DeclClass {
		if params := decl.DocumentedParams(); len(params) > 0 {
			args := make([]Arg, 0, len(params))
			for _, p := range params {
				args = append(args, argFor(p))
			}
			b.Sections = append(b.Sections, Section{Kind: SectionArgs, Args: args})
		}
		if decl.ReturnsValue() {
			rt := decl.ReturnAnnotation
			if rt == "" {
				rt = PlaceholderType
			}
			b.Sections = append(b.Sections, Section{Kind: SectionReturns, ReturnType: rt})
		}
	}
	if len(decl.Raises) > 0 {
		b.Sections = append(b.Sections, Section{Kind: SectionRaises, Raises: append([]string(nil), decl.Raises...)})
	}
	return b
}

func argFor(p ast.Param) Arg {
	a := Arg{Name: p.DisplayName(), Type: PlaceholderType}
	if p.HasAnnotation() {
		a.Type = p.Annotation
	}
	if p.HasDefault() {
		a.Default = p.Default
	}
	switch p.Variadic {
	case ast.VariadicArgs:
		a.Description = argsDescription
	case ast.VariadicKwargs:
		a.Description = kwargsDescription
	default:
		a.Description = "Description of " + p.Name + "."
	}
	return a
}

// Text renders b as insertable source: every non-blank line carries the
// block indentation and ends with nl.
func (g *Generator) Text(b Block, nl string) string {
	if nl == "" {
		nl = "\n"
	}
	lines := g.render(b)
	var sb strings.Builder
	for _, line := range lines {
		if line != "" {
			sb.WriteString(b.Indent)
			sb.WriteString(line)
		}
		sb.WriteString(nl)
	}
	return sb.String()
}

// Render is Synthesize followed by Text.
func (g *Generator) Render(decl *ast.Declaration, nl string) string {
	return g.Text(g.Synthesize(decl), nl)
}
