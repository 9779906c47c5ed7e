// Package lifecycle governs legal order status transitions.
//
// The machine is a pure function of (current, requested): the domain store
// applies statuses and timestamps, this package only answers whether a move
// is allowed.
package lifecycle

// Status is an order's position in its lifecycle.
type Status string

const (
	Processing Status = "processing"
	Shipped    Status = "shipped"
	Completed  Status = "completed"
	Cancelled  Status = "cancelled"
)

// transitions holds the only legal forward edges. Completed and cancelled
// are terminal; shipped can only complete.
var transitions = map[Status][]Status{
	Processing: {Shipped, Cancelled},
	Shipped:    {Completed},
	Completed:  {},
	Cancelled:  {},
}

// Valid reports whether s is a known status.
func Valid(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether an order currently at from may move to to.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s, for UIs that render
// the allowed actions. The returned slice must not be mutated.
func NextStatuses(s Status) []Status {
	return transitions[s]
}
