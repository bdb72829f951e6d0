package docgen

import (
	"fmt"
	"strings"
)

// Style selects the section layout of generated blocks.
type Style uint8

const (
	StyleGoogle Style = iota
	StyleNumpy
	StyleSphinx
)

var styleNames = [...]string{
	StyleGoogle: "google",
	StyleNumpy:  "numpy",
	StyleSphinx: "sphinx",
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", s)
}

// ParseStyle accepts a style name case-insensitively; "" means google.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "google":
		return StyleGoogle, nil
	case "numpy":
		return StyleNumpy, nil
	case "sphinx", "rest":
		return StyleSphinx, nil
	}
	return StyleGoogle, fmt.Errorf("unknown docstring style %q (want google, numpy or sphinx)", name)
}

// SummaryMode selects how the summary line is worded.
type SummaryMode uint8

const (
	// SummaryGeneric: "Processes add.", "Represents Shape.", "Initializes Shape."
	SummaryGeneric SummaryMode = iota
	// SummaryHumanized derives the sentence from the identifier: load_config -> "Load config."
	SummaryHumanized
)

func (m SummaryMode) String() string {
	if m == SummaryHumanized {
		return "humanized"
	}
	return "generic"
}

func ParseSummaryMode(name string) (SummaryMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "generic":
		return SummaryGeneric, nil
	case "humanized", "humanised":
		return SummaryHumanized, nil
	}
	return SummaryGeneric, fmt.Errorf("unknown summary mode %q (want generic or humanized)", name)
}

const (
	// PlaceholderType stands in for missing annotations.
	PlaceholderType = "Any"
	DefaultQuote    = `"""`
	AltQuote        = `'''`
)

type Options struct {
	Style   Style
	Summary SummaryMode
	Quote   string // `"""` или `'''`; пусто - DefaultQuote
}

func (o Options) quote() string {
	if o.Quote == AltQuote {
		return AltQuote
	}
	return DefaultQuote
}

// Fingerprint identifies the rendering options; equal fingerprints render
// equal blocks for equal declarations.
func (o Options) Fingerprint() string {
	return o.Style.String() + "/" + o.Summary.String() + "/" + o.quote()
}
