package domain

import "fmt"

// Status mirrors the numeric status codes assigned by the remote order
// service. Values outside the three known codes are carried as-is and treated
// as unknown rather than rejected, since the service may grow new codes.
type Status int

const (
	StatusPending   Status = 0
	StatusCancelled Status = 1
	StatusCompleted Status = 2
)

// Known reports whether the status is one of the modeled codes.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Label returns the human-readable name for the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCancelled:
		return "Cancelled"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// DisplayTag maps a status to its dashboard color tag. Total over all inputs:
// codes the service may introduce later fall back to the pending tag.
func (s Status) DisplayTag() string {
	switch s {
	case StatusCancelled:
		return "red"
	case StatusCompleted:
		return "green"
	default:
		return "gray"
	}
}

// Transition is a user-requested status change on a pending order.
type Transition string

const (
	TransitionCancel   Transition = "cancel"
	TransitionComplete Transition = "complete"
)

// Target returns the status code the transition moves an order into.
func (t Transition) Target() (Status, error) {
	switch t {
	case TransitionCancel:
		return StatusCancelled, nil
	case TransitionComplete:
		return StatusCompleted, nil
	default:
		return 0, fmt.Errorf("unknown transition %q", string(t))
	}
}

// ParseTransition validates a wire-level transition name.
func ParseTransition(s string) (Transition, error) {
	switch Transition(s) {
	case TransitionCancel:
		return TransitionCancel, nil
	case TransitionComplete:
		return TransitionComplete, nil
	default:
		return "", fmt.Errorf("unknown transition %q", s)
	}
}

// Filter narrows an order listing by status.
type Filter string

const (
	FilterAll       Filter = "All"
	FilterPending   Filter = "Pending"
	FilterCompleted Filter = "Completed"
	FilterCancelled Filter = "Cancelled"
)

// ParseFilter maps a wire-level filter name to a Filter. Matching is
// case-insensitive on the first letter convention used by the dashboard; an
// empty value means no filtering.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "all", string(FilterAll):
		return FilterAll, nil
	case "pending", string(FilterPending):
		return FilterPending, nil
	case "completed", string(FilterCompleted):
		return FilterCompleted, nil
	case "cancelled", string(FilterCancelled):
		return FilterCancelled, nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// Status returns the status code the filter selects, and false for FilterAll.
func (f Filter) Status() (Status, bool) {
	switch f {
	case FilterPending:
		return StatusPending, true
	case FilterCancelled:
		return StatusCancelled, true
	case FilterCompleted:
		return StatusCompleted, true
	default:
		return 0, false
	}
}
