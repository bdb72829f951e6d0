package token

var keywords = map[string]Kind{
	"def":      KwDef,
	"class":    KwClass,
	"async":    KwAsync,
	"return":   KwReturn,
	"raise":    KwRaise,
	"from":     KwFrom,
	"lambda":   KwLambda,
	"None":     KwNone,
	"True":     KwTrue,
	"False":    KwFalse,
	"pass":     KwPass,
	"await":    KwAwait,
	"yield":    KwYield,
	"and":      KwOther,
	"as":       KwOther,
	"assert":   KwOther,
	"break":    KwOther,
	"continue": KwOther,
	"del":      KwOther,
	"elif":     KwOther,
	"else":     KwOther,
	"except":   KwOther,
	"finally":  KwOther,
	"for":      KwOther,
	"global":   KwOther,
	"if":       KwOther,
	"import":   KwOther,
	"in":       KwOther,
	"is":       KwOther,
	"nonlocal": KwOther,
	"not":      KwOther,
	"or":       KwOther,
	"try":      KwOther,
	"while":    KwOther,
	"with":     KwOther,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: "none" - обычное имя.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
