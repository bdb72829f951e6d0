package docgen

import (
	"strings"
)

// render возвращает строки блока без отступа; "" - пустая строка.
func (g *Generator) render(b Block) []string {
	q := g.opts.quote()
	if b.SummaryOnly() {
		return []string{q + g.escape(b.Sections[0].Summary) + q}
	}

	var body []string
	switch g.opts.Style {
	case StyleNumpy:
		body = g.renderNumpy(b)
	case StyleSphinx:
		body = g.renderSphinx(b)
	default:
		body = g.renderGoogle(b)
	}
	lines := make([]string, 0, len(body)+1)
	lines = append(lines, q+body[0])
	lines = append(lines, body[1:]...)
	lines = append(lines, q)
	return lines
}

// paragraphs склеивает группы строк через пустую строку.
func paragraphs(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, g...)
	}
	return out
}

func (g *Generator) renderGoogle(b Block) []string {
	var groups [][]string
	for _, sec := range b.Sections {
		var lines []string
		switch sec.Kind {
		case SectionSummary:
			lines = []string{g.escape(sec.Summary)}
		case SectionArgs:
			lines = append(lines, "Args:")
			for _, a := range sec.Args {
				typ := a.Type
				if a.Optional() {
					typ += ", optional"
				}
				lines = append(lines, "    "+g.escape(a.Name+" ("+typ+"): "+argText(a)))
			}
		case SectionReturns:
			lines = []string{"Returns:", "    " + g.escape(sec.ReturnType+": "+returnDescription)}
		case SectionRaises:
			lines = append(lines, "Raises:")
			for _, r := range sec.Raises {
				lines = append(lines, "    "+g.escape(r+": "+raiseDescription))
			}
		}
		groups = append(groups, lines)
	}
	return paragraphs(groups...)
}

func (g *Generator) renderNumpy(b Block) []string {
	var groups [][]string
	for _, sec := range b.Sections {
		var lines []string
		switch sec.Kind {
		case SectionSummary:
			lines = []string{g.escape(sec.Summary)}
		case SectionArgs:
			lines = underline("Parameters")
			for _, a := range sec.Args {
				typ := a.Type
				if a.Optional() {
					typ += ", optional"
				}
				lines = append(lines, g.escape(a.Name+" : "+typ), "    "+g.escape(argText(a)))
			}
		case SectionReturns:
			lines = append(underline("Returns"), g.escape(sec.ReturnType), "    "+returnDescription)
		case SectionRaises:
			lines = underline("Raises")
			for _, r := range sec.Raises {
				lines = append(lines, g.escape(r), "    "+raiseDescription)
			}
		}
		groups = append(groups, lines)
	}
	return paragraphs(groups...)
}

func underline(title string) []string {
	return []string{title, strings.Repeat("-", len(title))}
}

func (g *Generator) renderSphinx(b Block) []string {
	var summary, fields []string
	for _, sec := range b.Sections {
		switch sec.Kind {
		case SectionSummary:
			summary = []string{g.escape(sec.Summary)}
		case SectionArgs:
			for _, a := range sec.Args {
				typ := a.Type
				if a.Optional() {
					typ += ", optional"
				}
				fields = append(fields,
					g.escape(":param "+a.Name+": "+argText(a)),
					g.escape(":type "+a.Name+": "+typ))
			}
		case SectionReturns:
			fields = append(fields, ":returns: "+returnDescription, g.escape(":rtype: "+sec.ReturnType))
		case SectionRaises:
			for _, r := range sec.Raises {
				fields = append(fields, g.escape(":raises "+r+": "+raiseDescription))
			}
		}
	}
	return paragraphs(summary, fields)
}

func argText(a Arg) string {
	if a.Optional() {
		return a.Description + " Defaults to " + a.Default + "."
	}
	return a.Description
}

// escape защищает текст внутри литерала: бэкслэши удваиваются, а тройная
// кавычка экранируется, чтобы исходный текст по умолчанию (r'\d', """x""")
// не закрыл и не испортил docstring.
func (g *Generator) escape(s string) string {
	q := g.opts.quote()
	if !strings.ContainsRune(s, '\\') && !strings.Contains(s, q) {
		return s
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	qc := q[:1]
	return strings.ReplaceAll(s, q, `\`+qc+`\`+qc+`\`+qc)
}
