package diag

// Severity orders diagnostics; higher values are more serious.
type Severity uint8

const (
	// SevInfo notes something docweave left alone on purpose,
	// for example a body on the header line.
	SevInfo Severity = iota
	// SevWarning flags a questionable existing docstring (blank text).
	SevWarning
	// SevError means the file cannot be scanned; nothing is written for it.
	SevError
)

var severityNames = [...]string{
	SevInfo:    "info",
	SevWarning: "warning",
	SevError:   "error",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

// Fatal reports whether a diagnostic of this severity stops the file.
func (s Severity) Fatal() bool { return s >= SevError }
