// Package fsm implements a generic table-driven state machine engine,
// shared by the coordinator's three owned instances (top, mode, menu).
// States and transitions are plain Go slices built once and never
// mutated — the closest idiomatic Go analogue to tables living in
// read-only program memory.
package fsm

// ID identifies a state or an event. Two values are reserved sentinels.
type ID int

const (
	// AnyState is a wildcard on the from-side of a Transition: it matches
	// any current state.
	AnyState ID = -1
	// NoTransition is a wildcard on the to-side of a Transition: run the
	// action but do not change state.
	NoTransition ID = -2
)

// Action is a no-argument action bound to a specific coordinator, built by
// the table's owner (see coordinator/tables.go) by closing over the
// coordinator instance rather than passing it as an argument.
type Action func()

// State describes one state's optional lifecycle hooks.
type State struct {
	ID       ID
	OnEnter  Action
	OnExit   Action
	OnUpdate Action
}

// Transition describes one edge: From (or AnyState) plus Event must match
// for the transition to fire; To (or NoTransition) is the resulting state.
type Transition struct {
	From   ID
	Event  ID
	To     ID
	Action Action
}

// Machine is a table-driven finite state machine instance.
type Machine struct {
	states      []State
	transitions []Transition
	current     ID
	initial     ID
	active      bool
}

// New builds a Machine over the given immutable state/transition tables,
// with initial as the starting state id. The tables are not copied; the
// caller must not mutate them after handing them to New.
func New(states []State, transitions []Transition, initial ID) *Machine {
	return &Machine{
		states:      states,
		transitions: transitions,
		current:     initial,
		initial:     initial,
	}
}

// Start activates the machine and runs the initial state's on-enter hook.
func (m *Machine) Start() {
	m.active = true
	m.runEnter(m.current)
}

// Stop runs the current state's on-exit hook and deactivates the machine.
func (m *Machine) Stop() {
	m.runExit(m.current)
	m.active = false
}

// Reset returns the machine to its initial state, running exit and entry
// hooks as if transitioning there.
func (m *Machine) Reset() {
	m.runExit(m.current)
	m.current = m.initial
	m.runEnter(m.current)
}

// Current returns the current state id.
func (m *Machine) Current() ID { return m.current }

// JumpTo forces the machine directly into state id, running the current
// state's on-exit and the target state's on-enter, without consulting the
// transition table. Used for programmatic placement (e.g. selecting a
// menu's entry page) rather than event-driven transitions.
func (m *Machine) JumpTo(id ID) {
	m.runExit(m.current)
	m.current = id
	m.runEnter(m.current)
}

// Process looks up the first transition whose From matches the current
// state (exactly or via AnyState) and whose Event matches event. If none
// matches, Process is a no-op and returns false. If the match's To is
// NoTransition, its action runs and the state does not change. Otherwise
// the current state's on-exit runs, then the transition's action, then the
// current state becomes To and its on-enter runs. Returns whether the
// state changed.
func (m *Machine) Process(event ID) bool {
	t, ok := m.find(event)
	if !ok {
		return false
	}

	if t.To == NoTransition {
		if t.Action != nil {
			t.Action()
		}
		return false
	}

	m.runExit(m.current)
	if t.Action != nil {
		t.Action()
	}
	m.current = t.To
	m.runEnter(m.current)
	return true
}

// Update runs the current state's on-update hook, if any.
func (m *Machine) Update() {
	if s, ok := m.stateByID(m.current); ok && s.OnUpdate != nil {
		s.OnUpdate()
	}
}

func (m *Machine) find(event ID) (Transition, bool) {
	for _, t := range m.transitions {
		if (t.From == m.current || t.From == AnyState) && t.Event == event {
			return t, true
		}
	}
	return Transition{}, false
}

func (m *Machine) stateByID(id ID) (State, bool) {
	for _, s := range m.states {
		if s.ID == id {
			return s, true
		}
	}
	return State{}, false
}

func (m *Machine) runEnter(id ID) {
	if s, ok := m.stateByID(id); ok && s.OnEnter != nil {
		s.OnEnter()
	}
}

func (m *Machine) runExit(id ID) {
	if s, ok := m.stateByID(id); ok && s.OnExit != nil {
		s.OnExit()
	}
}
