package diagfmt

import (
	"errors"
	"fmt"
	"io"

	"docweave/internal/driver"
)

// Error prints err with its failure kind, for example
//
//	error[ParseError]: mod.py:4:12: expected ':' after parameter list (SYN2006)
func Error(w io.Writer, err error, opts Options) {
	if err == nil {
		return
	}
	kind := driver.Kind(err)
	head := opts.paint(colorError...).Sprintf("error[%s]", kind)

	var pe *driver.ParseError
	if errors.As(err, &pe) {
		loc := opts.formatPath(pe.Path)
		if pe.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", loc, pe.Line, pe.Col)
		}
		msg := pe.Msg
		if pe.Code != 0 {
			msg = fmt.Sprintf("%s (%s)", msg, pe.Code.ID())
		}
		fmt.Fprintf(w, "%s: %s: %s\n", head, opts.paint(colorPath...).Sprint(loc), msg)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", head, err.Error())
}
