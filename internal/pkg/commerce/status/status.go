package status

import "strings"

// Behavioral flags a status can carry. Other subsystems read these to decide
// behavior; a status itself never performs I/O.
const (
	FlagIncomplete              = "incomplete"
	FlagComplete                = "complete"
	FlagTriggerOption           = "trigger_option"
	FlagAttendeeGeneration      = "attendee_generation"
	FlagStockReduced            = "stock_reduced"
	FlagCountAttendee           = "count_attendee"
	FlagCountIncomplete         = "count_incomplete"
	FlagCountSales              = "count_sales"
	FlagCountCompleted          = "count_completed"
	FlagRefunded                = "refunded"
	FlagSendEmailCompletedOrder = "send_email_completed_order"
)

// FlagSet is an immutable set of named status flags.
type FlagSet map[string]struct{}

// NewFlagSet builds a set from flag names, normalizing case and whitespace.
func NewFlagSet(flags ...string) FlagSet {
	set := make(FlagSet, len(flags))
	for _, f := range flags {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		set[f] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given flag.
func (s FlagSet) Has(flag string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(flag))]
	return ok
}

// Intersects reports whether any of the given flags is in the set.
func (s FlagSet) Intersects(flags ...string) bool {
	for _, f := range flags {
		if s.Has(f) {
			return true
		}
	}
	return false
}

// RegistrationArgs describe how the host content layer should expose the
// status as a queryable state.
type RegistrationArgs struct {
	Public                bool
	ExcludeFromSearch     bool
	ShowInAdminAllList    bool
	ShowInAdminStatusList bool
}

// Status is one named, immutable point in the order lifecycle.
type Status struct {
	Slug  string
	Name  string
	Flags FlagSet
	Args  RegistrationArgs
}

// Has reports whether the status carries the given flag.
func (s *Status) Has(flag string) bool {
	return s.Flags.Has(flag)
}

// IsIncomplete reports whether the status represents a not-yet-settled order.
func (s *Status) IsIncomplete() bool {
	return s.Has(FlagIncomplete)
}

// CountsAsSale reports whether orders in this status count towards sales
// reporting.
func (s *Status) CountsAsSale() bool {
	return s.Has(FlagCountSales)
}

// GeneratesAttendees reports whether attendee records should exist for
// orders in this status.
func (s *Status) GeneratesAttendees() bool {
	return s.Has(FlagAttendeeGeneration)
}

// ReducesStock reports whether orders in this status hold reduced stock.
func (s *Status) ReducesStock() bool {
	return s.Has(FlagStockReduced)
}
