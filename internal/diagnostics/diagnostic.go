package diagnostics

import (
	"cyrcount/internal/source"
)

// Severity represents the severity level of a diagnostic
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Label points at the place in the input a diagnostic is about
type Label struct {
	Location *source.Location
	Message  string
}

// Note represents additional information attached to a diagnostic
type Note struct {
	Message string
}

// Diagnostic is a single problem found while scanning an input
type Diagnostic struct {
	Severity Severity
	Message  string
	Code     string // e.g. "D0001"
	FilePath string
	Label    *Label
	Notes    []Note
	Help     string
}

func newDiagnostic(severity Severity, message string) *Diagnostic {
	return &Diagnostic{
		Severity: severity,
		Message:  message,
		Notes:    make([]Note, 0),
	}
}

// NewError creates a new error diagnostic
func NewError(message string) *Diagnostic {
	return newDiagnostic(Error, message)
}

// NewWarning creates a new warning diagnostic
func NewWarning(message string) *Diagnostic {
	return newDiagnostic(Warning, message)
}

// NewInfo creates a new info diagnostic
func NewInfo(message string) *Diagnostic {
	return newDiagnostic(Info, message)
}

// WithCode sets the diagnostic code
func (d *Diagnostic) WithCode(code string) *Diagnostic {
	d.Code = code
	return d
}

// WithFile sets the input the diagnostic belongs to
func (d *Diagnostic) WithFile(path string) *Diagnostic {
	d.FilePath = path
	return d
}

// WithLabel attaches a location to the diagnostic
func (d *Diagnostic) WithLabel(loc *source.Location, message string) *Diagnostic {
	d.Label = &Label{Location: loc, Message: message}
	return d
}

// WithNote adds a note to the diagnostic
func (d *Diagnostic) WithNote(message string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message})
	return d
}

// WithHelp sets a suggestion for the user
func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}
