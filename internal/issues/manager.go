package issues

// Listener receives every Issue added to a Manager, in registration order.
// The CLI's pterm-backed console reporter implements this via ListenerFunc,
// rendering each issue with Format.String.
type Listener interface {
	IssueAdded(iss *Issue)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(iss *Issue)

func (f ListenerFunc) IssueAdded(iss *Issue) { f(iss) }

// Manager is the single write-aggregator named in spec.md §5: every
// component reports diagnostics through it, and it broadcasts to registered
// listeners synchronously in registration order. It is never a package-level
// singleton; the pipeline orchestrator threads one instance explicitly
// through every stage (the "pipeline-level context value" redesign named in
// §9).
type Manager struct {
	all             []*Issue
	listeners       []Listener
	seenOneOff      map[Code]bool
	warningsAsError bool
	counts          map[Severity]int
}

// NewManager returns an empty Manager with no listeners registered.
func NewManager() *Manager {
	return &Manager{
		seenOneOff: map[Code]bool{},
		counts:     map[Severity]int{},
	}
}

// AddListener registers l to receive every future Add call, in addition to
// any already recorded issues being irrelevant to it (Listeners only see
// issues added after they register, matching the teacher's registration-order
// broadcast in ErrorManager).
func (m *Manager) AddListener(l Listener) {
	m.listeners = append(m.listeners, l)
}

// WarningsAreErrors turns on or off the promotion policy from §7: when
// enabled, every Warning/WarningOneOff Add also emits a companion
// CodeWarningTreatedAsError diagnostic at Error severity.
func (m *Manager) WarningsAreErrors(on bool) {
	m.warningsAsError = on
}

// Add records iss, applying one-shot suppression and warnings-as-errors
// promotion, then broadcasts it (and any promotion issue) to every
// registered listener in order.
func (m *Manager) Add(iss *Issue) {
	if iss.Severity.oneOff() {
		if m.seenOneOff[iss.Code] {
			return
		}
		m.seenOneOff[iss.Code] = true
	}

	m.record(iss)

	if m.warningsAsError && (iss.Severity == Warning || iss.Severity == WarningOneOff) {
		promoted := New(CodeWarningTreatedAsError, Error, iss.Location, iss,
			"warning treated as error: %s", iss.Message)
		m.record(promoted)
	}
}

func (m *Manager) record(iss *Issue) {
	m.all = append(m.all, iss)
	m.counts[iss.Severity]++
	for _, l := range m.listeners {
		l.IssueAdded(iss)
	}
}

// All returns every issue recorded so far, in the order they were added.
func (m *Manager) All() []*Issue {
	cp := make([]*Issue, len(m.all))
	copy(cp, m.all)
	return cp
}

// ErrorCount returns the number of recorded issues whose severity counts as
// an error (Error, ErrorOneOff, or Fatal, plus any warnings promoted by
// WarningsAreErrors). Pipeline stages compare this value before and after a
// pass and abort remaining passes if it grew, per §7.
func (m *Manager) ErrorCount() int {
	n := 0
	for sev, c := range m.counts {
		if sev.isError() {
			n += c
		}
	}
	return n
}

// HasFatal returns whether any Fatal-severity issue has been recorded.
func (m *Manager) HasFatal() bool {
	return m.counts[Fatal] > 0
}
