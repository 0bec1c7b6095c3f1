// Package issues is the diagnostic catalog and issue manager used by every
// stage of the grammar compiler: transform, semantics, ATN construction, and
// analysis all report problems by pushing an Issue onto a shared Manager
// instead of returning early or panicking.
package issues

import "fmt"

// Severity is the closed enumeration of diagnostic severities named in
// spec.md §7.
type Severity int

const (
	Info Severity = iota
	Warning
	WarningOneOff
	Error
	ErrorOneOff
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning, WarningOneOff:
		return "warning"
	case Error, ErrorOneOff:
		return "error"
	case Fatal:
		return "error"
	default:
		return "unknown"
	}
}

// isError returns whether the severity counts toward the pipeline's error
// count (the count the driver checks between stages, per §7).
func (s Severity) isError() bool {
	return s == Error || s == ErrorOneOff || s == Fatal
}

// oneOff returns whether repeats of this severity's code should be
// suppressed after the first occurrence.
func (s Severity) oneOff() bool {
	return s == WarningOneOff || s == ErrorOneOff
}

// Code is the closed numeric enumeration of diagnostic kinds. New codes are
// appended; values are never reused or renumbered, since external tooling
// (and this module's own tests) key off of them.
type Code int

const (
	CodeUnknown Code = iota

	// Redefinition
	CodeActionRedefinition
	CodeTokenNameReassignment
	CodeModeWithoutRules

	// Reference
	CodeRuleHasNoArgs
	CodeMissingRuleArgs
	CodeImplicitTokenDefinition
	CodeImplicitStringDefinition
	CodeLeftRecursionCycles
	CodeUnresolvedQualifiedRuleRef
	CodeUnknownAttributeReference

	// Label
	CodeLabelConflict
	CodeLabelBlockNotASet

	// Options
	CodeIllegalOption
	CodeOptionsInDelegate
	CodeRedundantCaseInsensitiveOption

	// Lexer
	CodeEpsilonToken
	CodeTokenUnreachable
	CodeCharactersCollisionInSet
	CodeRangeProbablyNotImplied
	CodeModeConflictsWithCommonConstants
	CodeChannelConflictsWithCommonConstants
	CodeReservedRuleName
	CodeTokenNamesMustStartUpper
	CodeLexerCommandIncompatible
	CodeLexerCommandDuplicated

	// Grammar structure
	CodeRepeatedPrequel
	CodeTokenTypeOverflow

	// Internal / driver
	CodeInternalError
	CodeWarningTreatedAsError
	CodeCannotWriteFile
)

// Location pinpoints a diagnostic in grammar source text.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Issue is a single diagnostic produced by some stage of the pipeline. It
// optionally wraps an underlying error (Unwrap), the same "carries both a
// human-facing message and a wrapped technical error" shape the teacher uses
// for its own domain errors.
type Issue struct {
	Code     Code
	Severity Severity
	Message  string
	Location Location
	wrapped  error
}

func (i *Issue) Error() string {
	return i.Message
}

func (i *Issue) Unwrap() error {
	return i.wrapped
}

// New builds an Issue with a wrapped underlying error.
func New(code Code, sev Severity, loc Location, wrap error, format string, args ...interface{}) *Issue {
	return &Issue{
		Code:     code,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
		wrapped:  wrap,
	}
}
