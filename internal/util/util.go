package util

import "strings"

// MakeTextList gives a nice comma/"and"-joined list of display names.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	if len(items) == 1 {
		return items[0]
	} else if len(items) == 2 {
		return items[0] + " and " + items[1]
	}

	cp := make([]string, len(items))
	copy(cp, items)
	cp[len(cp)-1] = "and " + cp[len(cp)-1]
	return strings.Join(cp, ", ")
}

// InSlice returns whether needle is present in haystack.
func InSlice[E comparable](needle E, haystack []E) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// OrderedKeys returns the keys of m sorted by less. Symbol tables (token
// names, channel names, mode names) need deterministic iteration order for
// reproducible diagnostic output, so callers use this instead of ranging
// over the map directly.
func OrderedKeys[K comparable, V any](m map[K]V, less func(a, b K) bool) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// simple insertion sort; symbol tables are small enough that this never
	// shows up in a profile.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && less(keys[j], keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// Stack is a generic LIFO. No other package in the module uses it; the ATN
// factory and the analysis package keep their own work lists in slices and
// maps.
type Stack[E any] struct {
	items []E
}

// NewStack returns an empty Stack.
func NewStack[E any]() *Stack[E] {
	return &Stack[E]{}
}

// Push adds v to the top of the stack.
func (s *Stack[E]) Push(v E) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top of the stack. ok is false if the stack was
// empty, in which case the returned value is the zero value of E.
func (s *Stack[E]) Pop() (v E, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	idx := len(s.items) - 1
	v = s.items[idx]
	s.items = s.items[:idx]
	return v, true
}

// Peek returns the top of the stack without removing it.
func (s *Stack[E]) Peek() (v E, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of items on the stack.
func (s *Stack[E]) Len() int {
	return len(s.items)
}

// Empty returns whether the stack has no items.
func (s *Stack[E]) Empty() bool {
	return len(s.items) == 0
}
