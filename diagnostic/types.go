package diagnostic

// Diagnostic codes reported while extracting a type mapping.
const (
	CodeInvalidTag      = "invalid-tag"
	CodeNegativeIndex   = "negative-index"
	CodeUnexported      = "unexported-field"
	CodeEmbedded        = "embedded-field"
	CodeUnsupportedKind = "unsupported-kind"
)

// Diagnostics holds the warnings gathered for one or more types. Excluding a
// field is never fatal, so warnings are the only severity.
type Diagnostics struct {
	Warnings []Diagnostic `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Code is a unique identifier for this type of diagnostic.
	Code string `json:"code" yaml:"code"`
	// Message is the human-readable description.
	Message string `json:"message" yaml:"message"`
	// Type identifies which mapped type this relates to (if any).
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	// Field identifies which field this relates to (if any).
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Code:    code,
		Message: message,
		Type:    typeName,
		Field:   field,
	})
}

// Len returns the number of diagnostics.
func (d Diagnostics) Len() int {
	return len(d.Warnings)
}

// All returns every diagnostic in the order it was reported.
func (d Diagnostics) All() []Diagnostic {
	return append([]Diagnostic(nil), d.Warnings...)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Warnings = append(d.Warnings, other.Warnings...)
}
