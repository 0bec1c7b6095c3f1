package issues

import "fmt"

// Format is the location-prefix style used when rendering an Issue as text,
// per spec.md §6's "Diagnostic format" contract.
type Format int

const (
	FormatANTLR Format = iota
	FormatGNU
	FormatVS2005
)

// ParseFormat maps a CLI/config flag value to a Format, defaulting to
// FormatANTLR for anything unrecognized.
func ParseFormat(name string) Format {
	switch name {
	case "gnu":
		return FormatGNU
	case "vs2005":
		return FormatVS2005
	default:
		return FormatANTLR
	}
}

// String renders iss using f's location-prefix convention. Only the location
// prefix differs between formats; the severity/code/message suffix is shared.
func (f Format) String(iss *Issue) string {
	var prefix string
	switch f {
	case FormatGNU:
		prefix = fmt.Sprintf("%s:%d:%d", iss.Location.File, iss.Location.Line, iss.Location.Column)
	case FormatVS2005:
		prefix = fmt.Sprintf("%s(%d,%d)", iss.Location.File, iss.Location.Line, iss.Location.Column)
	default:
		prefix = iss.Location.String()
	}
	return fmt.Sprintf("%s(%d): %s: %s", iss.Severity, int(iss.Code), prefix, iss.Message)
}

// InternalPanic is the type thrown for the "truly unrecoverable" internal
// invariant violations named in §7. Every other diagnostic is a recoverable
// Issue pushed through a Manager; InternalPanic is reserved for conditions
// that mean a prior stage's own invariants broke (not anything a grammar
// author can fix), and is recovered at the top of the pipeline orchestrator
// and converted into a CodeInternalError Issue.
type InternalPanic struct {
	Reason string
}

func (p InternalPanic) Error() string {
	return "internal error: " + p.Reason
}

// Panicf raises an InternalPanic with a formatted reason.
func Panicf(format string, args ...interface{}) {
	panic(InternalPanic{Reason: fmt.Sprintf(format, args...)})
}

// RecoverInternal must be called via defer at the top of any entry point that
// runs pipeline stages. It converts a recovered InternalPanic into a
// CodeInternalError Issue added to mgr and sets *errOut accordingly;
// non-InternalPanic panics are re-raised, since those indicate a bug this
// module cannot itself classify as a known internal invariant violation.
func RecoverInternal(mgr *Manager, errOut *error) {
	if r := recover(); r != nil {
		ip, ok := r.(InternalPanic)
		if !ok {
			panic(r)
		}
		iss := New(CodeInternalError, Fatal, Location{}, ip, "%s", ip.Error())
		mgr.Add(iss)
		*errOut = iss
	}
}
