package docgen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"docweave/internal/ast"
)

func (g *Generator) summary(decl *ast.Declaration) string {
	switch {
	case decl.IsInit():
		return "Initializes " + ownerName(decl) + "."
	case g.opts.Summary == SummaryHumanized && decl.Kind == ast.DeclClass:
		return decl.Name + " class."
	case g.opts.Summary == SummaryHumanized:
		return Humanize(decl.Name)
	case decl.Kind == ast.DeclClass:
		return "Represents " + decl.Name + "."
	default:
		return "Processes " + decl.Name + "."
	}
}

// ownerName returns the class that owns a method: the segment of QualName
// before the method name.
func ownerName(decl *ast.Declaration) string {
	owner := strings.TrimSuffix(decl.QualName, "."+decl.Name)
	if i := strings.LastIndexByte(owner, '.'); i >= 0 {
		owner = owner[i+1:]
	}
	if owner == "" || owner == decl.QualName {
		return decl.Name
	}
	return owner
}

// Humanize turns an identifier into a sentence: snake_case and camelCase
// words are split, the first is capitalized, the rest are lower-cased.
func Humanize(name string) string {
	words := splitIdent(name)
	if len(words) == 0 {
		return name + "."
	}
	title := cases.Title(language.English)
	lower := cases.Lower(language.English)
	for i, w := range words {
		if i == 0 {
			words[i] = title.String(w)
		} else if !isAcronym(w) {
			words[i] = lower.String(w)
		}
	}
	return strings.Join(words, " ") + "."
}

func splitIdent(name string) []string {
	var words []string
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		words = append(words, splitCamel(part)...)
	}
	return words
}

// splitCamel режет "parseHTTPResponse" на parse, HTTP, Response.
func splitCamel(s string) []string {
	rs := []rune(s)
	var out []string
	start := 0
	for i := 1; i < len(rs); i++ {
		prev, cur := rs[i-1], rs[i]
		boundary := unicode.IsLower(prev) && unicode.IsUpper(cur)
		if !boundary && unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(rs) && unicode.IsLower(rs[i+1]) {
			boundary = true
		}
		if boundary {
			out = append(out, string(rs[start:i]))
			start = i
		}
	}
	return append(out, string(rs[start:]))
}

func isAcronym(w string) bool {
	if len(w) < 2 {
		return false
	}
	for _, r := range w {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
