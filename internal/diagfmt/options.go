package diagfmt

import "github.com/fatih/color"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints paths as they were given.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// Options configures human-readable output.
type Options struct {
	Color    bool
	PathMode PathMode
	BaseDir  string // для PathModeRelative
	Context  int    // строк контекста в diff; 0 - по умолчанию 3
}

func (o Options) context() int {
	if o.Context <= 0 {
		return 3
	}
	return o.Context
}

// paint returns a color that is enabled only when color output is on.
func (o Options) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if o.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
