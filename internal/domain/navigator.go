package domain

import "math/rand/v2"

// Policy selects how the navigator moves through the collection.
// The two policies are alternatives, not composable: cyclic stepping is
// deterministic, random selection keeps an undo history instead.
type Policy string

const (
	// PolicyCyclic steps deterministically through the collection with
	// wraparound in both directions.
	PolicyCyclic Policy = "cyclic"

	// PolicyRandom picks a uniformly random different quote on each
	// advance and keeps a LIFO history so prev() can undo.
	PolicyRandom Policy = "random"
)

// Valid reports whether p is a recognized policy.
func (p Policy) Valid() bool {
	return p == PolicyCyclic || p == PolicyRandom
}

// MaxHistory bounds the random-policy undo stack. Once full, the oldest
// entry drops off on each advance, so persisted session state stays small
// no matter how long a visitor keeps pressing next.
const MaxHistory = 50

// NavigatorState is the serializable snapshot of a navigator's cursor.
// It is what gets persisted between requests for a visitor session.
type NavigatorState struct {
	// Policy is the navigation policy the state was produced under.
	Policy Policy `json:"policy"`

	// Index is the current cursor position.
	Index int `json:"index"`

	// History is the undo stack of previously visited indices.
	// Only populated under PolicyRandom.
	History []int `json:"history,omitempty"`
}

// Navigator holds a cursor into an immutable quote collection and moves it
// forward and backward according to its policy. It never mutates the
// backing collection; the only mutable state is the cursor and, under the
// random policy, the undo history.
//
// All operations are safe no-ops on an empty collection.
type Navigator struct {
	collection Collection
	policy     Policy
	index      int
	history    []int
	intN       func(n int) int
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithPolicy sets the navigation policy. Invalid values fall back to
// PolicyCyclic.
func WithPolicy(p Policy) NavigatorOption {
	return func(n *Navigator) {
		if p.Valid() {
			n.policy = p
		}
	}
}

// WithRandSource replaces the random index source. Tests inject a
// deterministic function here.
func WithRandSource(intN func(n int) int) NavigatorOption {
	return func(n *Navigator) {
		if intN != nil {
			n.intN = intN
		}
	}
}

// WithState restores a previously snapshotted cursor. Out-of-range
// positions are clamped back to zero rather than trusted.
func WithState(state NavigatorState) NavigatorOption {
	return func(n *Navigator) {
		if state.Policy.Valid() {
			n.policy = state.Policy
		}

		if state.Index >= 0 && state.Index < len(n.collection) {
			n.index = state.Index
		}

		for _, idx := range state.History {
			if idx >= 0 && idx < len(n.collection) {
				n.history = append(n.history, idx)
			}
		}

		// Oversized snapshots keep only their most recent entries.
		if len(n.history) > MaxHistory {
			n.history = n.history[len(n.history)-MaxHistory:]
		}
	}
}

// NewNavigator creates a navigator over the given collection, positioned
// at the first quote. The default policy is cyclic.
func NewNavigator(collection Collection, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		collection: collection,
		policy:     PolicyCyclic,
		intN:       rand.IntN,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Policy returns the active navigation policy.
func (n *Navigator) Policy() Policy {
	return n.policy
}

// Current returns the quote under the cursor. The second return value is
// false when the collection is empty.
func (n *Navigator) Current() (Quote, bool) {
	if len(n.collection) == 0 {
		return Quote{}, false
	}

	return n.collection[n.index], true
}

// Total returns the size of the collection.
func (n *Navigator) Total() int {
	return len(n.collection)
}

// Position returns the 1-based rank of the current quote for
// "i / N" style display, or 0 when the collection is empty.
func (n *Navigator) Position() int {
	if len(n.collection) == 0 {
		return 0
	}

	return n.index + 1
}

// Peek returns the quote the cursor would land on after Next() under the
// cyclic policy. Used for prefetching the upcoming author photo; under the
// random policy the next quote is unknowable, so Peek returns the current
// one.
func (n *Navigator) Peek() (Quote, bool) {
	if len(n.collection) == 0 {
		return Quote{}, false
	}

	if n.policy == PolicyRandom {
		return n.collection[n.index], true
	}

	return n.collection[(n.index+1)%len(n.collection)], true
}

// Next advances the cursor. Under the cyclic policy it steps forward with
// wraparound; under the random policy it pushes the current index onto the
// history and jumps to a uniformly chosen different index (staying put
// only when the collection has a single quote).
func (n *Navigator) Next() {
	total := len(n.collection)
	if total == 0 {
		return
	}

	if n.policy == PolicyRandom {
		n.history = append(n.history, n.index)
		if len(n.history) > MaxHistory {
			n.history = n.history[len(n.history)-MaxHistory:]
		}

		n.index = n.randomOther(total)

		return
	}

	n.index = (n.index + 1) % total
}

// Prev moves the cursor backward. Under the cyclic policy it steps back
// with wraparound; under the random policy it pops the most recent index
// off the history, doing nothing when there is nothing to return to.
func (n *Navigator) Prev() {
	total := len(n.collection)
	if total == 0 {
		return
	}

	if n.policy == PolicyRandom {
		if len(n.history) == 0 {
			return
		}

		n.index = n.history[len(n.history)-1]
		n.history = n.history[:len(n.history)-1]

		return
	}

	n.index = (n.index - 1 + total) % total
}

// CanGoBack reports whether Prev() would move the cursor under the random
// policy. Always true under the cyclic policy for non-empty collections.
func (n *Navigator) CanGoBack() bool {
	if len(n.collection) == 0 {
		return false
	}

	if n.policy == PolicyRandom {
		return len(n.history) > 0
	}

	return true
}

// State snapshots the cursor for persistence.
func (n *Navigator) State() NavigatorState {
	state := NavigatorState{
		Policy: n.policy,
		Index:  n.index,
	}

	if len(n.history) > 0 {
		state.History = make([]int, len(n.history))
		copy(state.History, n.history)
	}

	return state
}

// randomOther returns a uniformly random index in [0, total) that differs
// from the current index whenever total > 1.
func (n *Navigator) randomOther(total int) int {
	if total <= 1 {
		return 0
	}

	r := n.intN(total - 1)
	if r >= n.index {
		r++
	}

	return r
}
