package diagfmt

import "docweave/internal/source"

func (o Options) formatPath(p string) string {
	switch o.PathMode {
	case PathModeAbsolute:
		if abs, err := source.AbsolutePath(p); err == nil {
			return abs
		}
	case PathModeRelative:
		if rel, err := source.RelativePath(p, o.BaseDir); err == nil {
			return rel
		}
	case PathModeBasename:
		return source.BaseName(p)
	}
	return p
}
