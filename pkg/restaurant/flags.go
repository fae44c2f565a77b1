package restaurant

// AllergyCheck records one allergy safety confirmation made by the agent.
type AllergyCheck struct {
	ItemID        string
	Allergy       string
	ConfirmedSafe bool
}

// GoodwillItem records a complimentary drink or appetizer offered to
// appease a customer.
type GoodwillItem struct {
	Kind   string // drink or appetizer
	Item   string
	Reason string
}

// Alternative records an alternative solution offered when the original
// request could not be fulfilled.
type Alternative struct {
	Original     string
	Offered      string
	Compensation string
}

// Communication records one message delivered to the customer about a delay
// or issue, with whether it exposed internal problems.
type Communication struct {
	Message         string
	Tone            string
	ExposedInternal bool
}

// Flags tracks agent behavior across a session for deterministic scoring.
// Tools set these as side effects of accepted calls; assertion predicates
// read them from the final snapshot. The scorer never infers any of this
// from free-form text.
type Flags struct {
	// Escalation
	EscalationMade      bool
	EscalationTo        string
	EscalationReason    string
	RecommendedDiscount *int
	RecommendedActions  []string

	// Compensation
	CompensationOffered bool
	CompItemsGiven      []string
	DiscountsGiven      []float64

	// Safety
	AllergyChecks            []AllergyCheck
	UnsafeRecommendationMade bool
	SafeItemsRecommended     []string

	// Order handling
	OrderExpedited bool
	DishRemade     bool
	TableChanged   bool

	// Membership
	MembershipChecked bool
	MembershipOffered bool
	CustomerMood      string
	MoodExplicitlySet bool

	// Kitchen coordination
	KitchenStatusChecked    bool
	SpecialRequestAttempted bool
	ComplimentaryOffered    bool
	ComplimentaryItems      []GoodwillItem
	AlternativeOffered      bool
	Alternatives            []Alternative
	InternalIssueExposed    bool
	Communications          []Communication

	// Phone reservation flow
	AvailabilityChecked    bool
	ReservationConfirmed   bool
	WaitlistSuggested      bool
	AlternativeTimeOffered bool
}
