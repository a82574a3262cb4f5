package diagnostic

import (
	"errors"
	"strings"

	"annotation-merger/internal/common"
)

// Diagnostics holds all diagnostic information from validation or tree construction.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Annotation identifies which annotation type this relates to (if any).
	Annotation string
	// Attribute identifies which attribute this relates to (if any).
	Attribute string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, annotation, attribute string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:   SeverityError,
		Code:       code,
		Message:    message,
		Annotation: annotation,
		Attribute:  attribute,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, annotation, attribute string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:   SeverityWarning,
		Code:       code,
		Message:    message,
		Annotation: annotation,
		Attribute:  attribute,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, annotation, attribute string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:   SeverityInfo,
		Code:       code,
		Message:    message,
		Annotation: annotation,
		Attribute:  attribute,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	msgs := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		msgs = append(msgs, e.Render())
	}

	return errors.New(strings.Join(msgs, "; "))
}

// Render formats a single diagnostic for display.
func (e Diagnostic) Render() string {
	var sb strings.Builder

	sb.WriteString(e.Severity.String())
	sb.WriteString(" [")
	sb.WriteString(e.Code)
	sb.WriteString("]")

	if e.Annotation != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Annotation)

		if e.Attribute != "" {
			sb.WriteString(".")
			sb.WriteString(e.Attribute)
		}
	}

	sb.WriteString(": ")
	sb.WriteString(e.Message)

	return sb.String()
}
