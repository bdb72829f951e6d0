// Package fuzztests houses Go fuzz harnesses that exercise the docweave
// pipeline (source -> lexer -> parser -> docgen -> rewrite) on arbitrary
// bytes. Its goal is to guard against panics and hangs and to check the
// rewrite invariants on whatever the scanner accepts.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, сканер
// и переписывание без записи на диск.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/docgen, internal/rewrite, internal/testkit.
package fuzztests
