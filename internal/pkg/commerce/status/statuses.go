package status

// Slugs of the built-in statuses.
const (
	Created        = "created"
	Pending        = "pending"
	ActionRequired = "action-required"
	Completed      = "completed"
	Denied         = "denied"
	NotCompleted   = "not-completed"
	Refunded       = "refunded"
	Reversed       = "reversed"
	Voided         = "voided"
	Undefined      = "undefined"
)

var defaultAdminArgs = RegistrationArgs{
	Public:                true,
	ExcludeFromSearch:     false,
	ShowInAdminAllList:    true,
	ShowInAdminStatusList: true,
}

// NewDefaultRegistry builds the registry with every built-in status. This is
// the single place statuses are defined; lookups everywhere else go by slug.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	statuses := []*Status{
		{
			Slug:  Created,
			Name:  "Created",
			Flags: NewFlagSet(FlagIncomplete, FlagTriggerOption, FlagCountIncomplete),
			Args:  defaultAdminArgs,
		},
		{
			// Payment has begun but the purchaser has not finished with the
			// gateway yet. We hold the record of sale without settlement.
			Slug: Pending,
			Name: "Pending",
			Flags: NewFlagSet(
				FlagIncomplete,
				FlagTriggerOption,
				FlagAttendeeGeneration,
				FlagStockReduced,
				FlagCountAttendee,
				FlagCountIncomplete,
				FlagCountSales,
			),
			Args: defaultAdminArgs,
		},
		{
			// Gateway asked the purchaser for an extra authentication step
			// (3DS and the like) before the payment can settle.
			Slug: ActionRequired,
			Name: "Action Required",
			Flags: NewFlagSet(
				FlagIncomplete,
				FlagTriggerOption,
				FlagAttendeeGeneration,
				FlagStockReduced,
				FlagCountAttendee,
				FlagCountIncomplete,
				FlagCountSales,
			),
			Args: defaultAdminArgs,
		},
		{
			Slug: Completed,
			Name: "Completed",
			Flags: NewFlagSet(
				FlagComplete,
				FlagTriggerOption,
				FlagAttendeeGeneration,
				FlagStockReduced,
				FlagCountAttendee,
				FlagCountCompleted,
				FlagCountSales,
				FlagSendEmailCompletedOrder,
			),
			Args: defaultAdminArgs,
		},
		{
			Slug:  Denied,
			Name:  "Denied",
			Flags: NewFlagSet(FlagTriggerOption),
			Args:  defaultAdminArgs,
		},
		{
			Slug:  NotCompleted,
			Name:  "Not Completed",
			Flags: NewFlagSet(FlagIncomplete, FlagCountIncomplete),
			Args: RegistrationArgs{
				Public:                false,
				ExcludeFromSearch:     true,
				ShowInAdminAllList:    false,
				ShowInAdminStatusList: false,
			},
		},
		{
			Slug:  Refunded,
			Name:  "Refunded",
			Flags: NewFlagSet(FlagRefunded, FlagTriggerOption),
			Args:  defaultAdminArgs,
		},
		{
			Slug:  Reversed,
			Name:  "Reversed",
			Flags: NewFlagSet(FlagRefunded, FlagTriggerOption),
			Args:  defaultAdminArgs,
		},
		{
			Slug:  Voided,
			Name:  "Voided",
			Flags: NewFlagSet(FlagTriggerOption),
			Args:  defaultAdminArgs,
		},
		{
			Slug:  Undefined,
			Name:  "Undefined",
			Flags: NewFlagSet(FlagIncomplete, FlagCountIncomplete),
			Args: RegistrationArgs{
				Public:                false,
				ExcludeFromSearch:     true,
				ShowInAdminAllList:    false,
				ShowInAdminStatusList: false,
			},
		},
	}

	for _, s := range statuses {
		if err := r.Register(s); err != nil {
			// Built-in slugs are constants; a collision here is a bug.
			panic(err)
		}
	}

	return r
}
