package parser

import (
	"docweave/internal/ast"
	"docweave/internal/diag"
	"docweave/internal/lexer"
	"docweave/internal/source"
	"docweave/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter

	// SkipPrivate drops _name declarations from the result.
	SkipPrivate bool
	// SkipDunder drops __name__ declarations other than __init__.
	SkipDunder bool
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Decls []ast.Declaration
	Bag   *diag.Bag
}

// Undocumented returns the declarations that lack a docstring.
func (r Result) Undocumented() []ast.Declaration {
	out := make([]ast.Declaration, 0, len(r.Decls))
	for _, d := range r.Decls {
		if !d.HasDocumentation {
			out = append(out, d)
		}
	}
	return out
}

// frame - открытая область объявления, в которую попадают return/raise.
type frame struct {
	decl int // индекс в Parser.decls
}

// Parser - состояние сканера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	buf      []token.Token // lookahead поверх lexer.Peek
	lastSpan source.Span   // span последнего съеденного токена для лучшей диагностики

	depth  int     // текущий уровень вложенности блоков
	frames []frame // стек объявлений
	decls  []ast.Declaration
}

// ParseFile - входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		file:     lx.File(),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	p.parseStatements(false)

	return Result{
		Decls: p.filtered(),
		Bag:   bagOf(opts.Reporter),
	}
}

// Scan tokenizes and scans file. Lexical and structural diagnostics land in
// the same bag; when opts.Reporter is nil a fresh unlimited bag is used.
// The lexer and the scanner report through one DedupReporter, so a broken
// bracket noticed by both shows up once.
func Scan(file *source.File, opts Options) Result {
	if opts.Reporter == nil {
		opts.Reporter = &diag.BagReporter{Bag: diag.NewBag(0)}
	}
	bag := bagOf(opts.Reporter)
	opts.Reporter = diag.NewDedupReporter(opts.Reporter)
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	res := ParseFile(lx, opts)
	res.Bag = bag
	return res
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch br := r.(type) {
	case *diag.BagReporter:
		return br.Bag
	case diag.BagReporter:
		return br.Bag
	}
	return nil
}

func (p *Parser) filtered() []ast.Declaration {
	if !p.opts.SkipPrivate && !p.opts.SkipDunder {
		return p.decls
	}
	out := make([]ast.Declaration, 0, len(p.decls))
	for i := range p.decls {
		d := &p.decls[i]
		if p.opts.SkipPrivate && d.IsPrivate() {
			continue
		}
		if p.opts.SkipDunder && d.IsDunder() && d.Name != "__init__" {
			continue
		}
		out = append(out, *d)
	}
	return out
}

// current возвращает ближайшее открытое объявление или nil.
func (p *Parser) current() *ast.Declaration {
	if len(p.frames) == 0 {
		return nil
	}
	return &p.decls[p.frames[len(p.frames)-1].decl]
}

func (p *Parser) pushFrame(decl int) {
	p.frames = append(p.frames, frame{decl: decl})
}

func (p *Parser) popFrame() {
	p.frames = p.frames[:len(p.frames)-1]
}
