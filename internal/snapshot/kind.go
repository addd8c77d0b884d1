// Package snapshot computes the compact widget summaries and serializes
// them into the versioned JSON payloads the out-of-process widget reads.
package snapshot

import "fmt"

// Kind identifies one widget payload shape.
type Kind string

const (
	KindHabit   Kind = "habit"
	KindFinance Kind = "finance"
	KindPlanner Kind = "planner"
)

// Kinds lists every widget kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindHabit, KindFinance, KindPlanner}
}

// ParseKind validates a kind string coming from the API or a queue message.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindHabit, KindFinance, KindPlanner:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown widget kind %q", s)
	}
}

func (k Kind) String() string {
	return string(k)
}
