package diag

import "fmt"

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageLexer     Stage = "lexer"
	StageParser    Stage = "parser"
	StageValidate  Stage = "validate"
	StageResolve   Stage = "resolve"
	StageTypeCheck Stage = "typecheck"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeUnexpectedCharacter     Code = "UNEXPECTED_CHARACTER"
	CodeUnterminatedString      Code = "UNTERMINATED_STRING"
	CodeUnterminatedBlockComment Code = "UNTERMINATED_BLOCK_COMMENT"

	// Parser errors
	CodeUnexpectedToken        Code = "UNEXPECTED_TOKEN"
	CodeAnyTypeRejected        Code = "ANY_TYPE_REJECTED"
	CodeExpressionBodyRejected Code = "EXPRESSION_BODY_REJECTED"

	// Validator errors
	CodeReturnNotLast Code = "RETURN_NOT_LAST"

	// Resolver errors
	CodeDuplicateDeclaration Code = "DUPLICATE_DECLARATION"
	CodeDuplicateParameter   Code = "DUPLICATE_PARAMETER"
	CodeUndeclaredReference  Code = "UNDECLARED_REFERENCE"

	// Type checker errors
	CodeTypeMismatch        Code = "TYPE_MISMATCH"
	CodeInfiniteType        Code = "INFINITE_TYPE"
	CodeArityMismatch       Code = "ARITY_MISMATCH"
	CodeNotCallable         Code = "NOT_CALLABLE"
	CodeUnsupportedOperator Code = "UNSUPPORTED_OPERATOR"
)

// Span represents a location in source code.
type Span struct {
	Filename string `yaml:"filename,omitempty"`
	Line     int    `yaml:"line"`
	Column   int    `yaml:"column"`
	Start    int    `yaml:"start"`
	End      int    `yaml:"end"`
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a front-end diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage    `yaml:"stage"`
	Severity Severity `yaml:"severity"`
	Code     Code     `yaml:"code"`
	Message  string   `yaml:"message"`
	Span     Span     `yaml:"span"`
	Help     string   `yaml:"help,omitempty"`
	Notes    []string `yaml:"notes,omitempty"`
}

// WithHelp returns a copy of the diagnostic with help text attached.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// WithNote returns a copy of the diagnostic with a note appended.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// HasErrors reports whether any diagnostic in ds is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
