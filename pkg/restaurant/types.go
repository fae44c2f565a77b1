package restaurant

// TableStatus represents the occupancy state of a table.
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableCleaning  TableStatus = "cleaning"
)

// CapacityTier identifies which seating tier a table is currently using.
type CapacityTier string

const (
	// TierStandard is the table's normal capacity without extra chairs.
	TierStandard CapacityTier = "standard"

	// TierExpansion is the capacity with the default extra chairs added.
	TierExpansion CapacityTier = "expansion"

	// TierSqueeze is the historical maximum. Reaching it requires an
	// explicit, rule-gated transition driven by a customer request.
	TierSqueeze CapacityTier = "squeeze"
)

// Table is a physical table with three capacity tiers.
type Table struct {
	ID            string       `yaml:"id"`
	Type          string       `yaml:"type"`
	StdCapacity   int          `yaml:"std_capacity"`
	StdExpansion  int          `yaml:"std_expansion"`
	MaxSqueeze    int          `yaml:"max_squeeze"`
	Status        TableStatus  `yaml:"status"`
	PartySize     int          `yaml:"party_size"`
	Tier          CapacityTier `yaml:"tier"`
	ReservationID string       `yaml:"reservation_id"`
}

// Capacity returns the seat count of the table's active tier.
func (t *Table) Capacity() int {
	switch t.Tier {
	case TierExpansion:
		return t.StdExpansion
	case TierSqueeze:
		return t.MaxSqueeze
	default:
		return t.StdCapacity
	}
}

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationHeld     ReservationStatus = "held"
	ReservationSeated   ReservationStatus = "seated"
	ReservationReleased ReservationStatus = "released"
	ReservationNoShow   ReservationStatus = "no_show"
)

// Reservation is a booking request for a party.
type Reservation struct {
	ID              string            `yaml:"id"`
	CustomerName    string            `yaml:"customer_name"`
	Phone           string            `yaml:"phone"`
	PartySize       int               `yaml:"party_size"`
	Date            string            `yaml:"date"` // YYYY-MM-DD
	Time            string            `yaml:"time"` // HH:MM
	TableID         string            `yaml:"table_id"`
	Status          ReservationStatus `yaml:"status"`
	SpecialOccasion string            `yaml:"special_occasion"`
	NumKids         int               `yaml:"num_kids"`
	Notes           string            `yaml:"notes"`
	HasCake         bool              `yaml:"has_cake"`
	CakeType        string            `yaml:"cake_type"` // regular or ice_cream
}

// WaitlistEntry records a party waiting for a table. Parties whose held
// reservation expired are placed at the head of the list rather than dropped.
type WaitlistEntry struct {
	Name          string `yaml:"name"`
	Phone         string `yaml:"phone"`
	PartySize     int    `yaml:"party_size"`
	ReservationID string `yaml:"reservation_id"`
}

// MemberTier is a loyalty membership level.
type MemberTier string

const (
	TierBronze  MemberTier = "Bronze"
	TierSilver  MemberTier = "Silver"
	TierGold    MemberTier = "Gold"
	TierDiamond MemberTier = "Diamond"
)

// Customer is a member profile with a points balance.
type Customer struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Phone       string     `yaml:"phone"`
	Email       string     `yaml:"email"`
	Tier        MemberTier `yaml:"tier"`
	Points      int        `yaml:"points"`
	BirthMonth  string     `yaml:"birth_month"`
	AnnualSpent float64    `yaml:"annual_spent"`
	VisitCount  int        `yaml:"visit_count"`
	TableID     string     `yaml:"table_id"`
	Notes       string     `yaml:"notes"`
}

// OrderStatus represents the kitchen lifecycle of an order.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderInKitchen OrderStatus = "in_kitchen"
	OrderDelayed   OrderStatus = "delayed"
	OrderServed    OrderStatus = "served"
	OrderComped    OrderStatus = "comped"
)

// OrderItem is a single line item on an order.
type OrderItem struct {
	ItemID   string  `yaml:"item_id"`
	Name     string  `yaml:"name"`
	Quantity int     `yaml:"quantity"`
	Price    float64 `yaml:"price"`
	Notes    string  `yaml:"notes"`
}

// Order is a table's bill for the current visit.
type Order struct {
	ID              string      `yaml:"id"`
	TableID         string      `yaml:"table_id"`
	PartySize       int         `yaml:"party_size"`
	HasMember       bool        `yaml:"has_member"`
	CustomerID      string      `yaml:"customer_id"`
	Items           []OrderItem `yaml:"items"`
	Subtotal        float64     `yaml:"subtotal"`
	SauceBarCharge  float64     `yaml:"sauce_bar_charge"`
	DiscountApplied string      `yaml:"discount_applied"`
	DiscountAmount  float64     `yaml:"discount_amount"`
	Tax             float64     `yaml:"tax"`
	Total           float64     `yaml:"total"`
	Status          OrderStatus `yaml:"status"`
	CreatedAt       string      `yaml:"created_at"`
	PromotionCode   string      `yaml:"promotion_code"`
	SecretCodeUsed  string      `yaml:"secret_code_used"`
}

// IncidentCategory classifies a service incident for remedy derivation.
type IncidentCategory string

const (
	IncidentSafety             IncidentCategory = "safety"
	IncidentPropertyDamage     IncidentCategory = "property_damage"
	IncidentCelebrationFailure IncidentCategory = "celebration_failure"
	IncidentServiceDelay       IncidentCategory = "service_delay"
	IncidentQualityIssue       IncidentCategory = "quality_issue"

	// IncidentManagerRequest and IncidentReviewThreat are escalation
	// triggers rather than physical incidents, but the remedy rules key on
	// them the same way.
	IncidentManagerRequest IncidentCategory = "manager_request"
	IncidentReviewThreat   IncidentCategory = "review_threat"
)

// Incident is a recorded service incident.
type Incident struct {
	ID           string           `yaml:"id"`
	OrderID      string           `yaml:"order_id"`
	TableID      string           `yaml:"table_id"`
	Category     IncidentCategory `yaml:"category"`
	Severity     string           `yaml:"severity"`
	Description  string           `yaml:"description"`
	Resolution   string           `yaml:"resolution"`
	Compensation string           `yaml:"compensation"`
	Escalated    bool             `yaml:"escalated"`
	CreatedAt    string           `yaml:"created_at"`
}

// StaffRole identifies the acting staff member's role for the session.
type StaffRole string

const (
	RoleServer  StaffRole = "Server"
	RoleHost    StaffRole = "Host"
	RoleManager StaffRole = "Manager"
)

// StaffAuthority is the numeric ceiling profile for a role. Roles are ceiling
// records, not a hierarchy: Manager is a distinct profile with Unlimited set.
type StaffAuthority struct {
	Role           StaffRole `yaml:"role"`
	MaxDiscountPct float64   `yaml:"max_discount_pct"`
	MaxCompValue   float64   `yaml:"max_comp_value"`
	MaxRoundOff    float64   `yaml:"max_round_off"`
	Unlimited      bool      `yaml:"unlimited"`
}

// SoupBase is a hot pot soup base with allergen metadata.
type SoupBase struct {
	ID                string             `yaml:"id"`
	Name              string             `yaml:"name"`
	SpicyLevel        int                `yaml:"spicy_level"`
	Allergens         []string           `yaml:"allergens"`
	HiddenIngredients []string           `yaml:"hidden_ingredients"`
	PreProcessed      bool               `yaml:"pre_processed"`
	GlutenSafe        bool               `yaml:"gluten_safe"`
	Prices            map[string]float64 `yaml:"prices"`
}

// MenuItem is a non-soup menu item with allergen metadata.
type MenuItem struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Category     string   `yaml:"category"`
	Price        float64  `yaml:"price"`
	Allergens    []string `yaml:"allergens"`
	PreProcessed bool     `yaml:"pre_processed"`
	GlutenSafe   bool     `yaml:"gluten_safe"`
	Note         string   `yaml:"note"`
}

// LunchSpecial is the weekday lunch combo configuration.
type LunchSpecial struct {
	Price           float64 `yaml:"price"`
	Availability    string  `yaml:"availability"`
	HolidayExcluded bool    `yaml:"holiday_excluded"`
}

// InventoryItem is a gift or merchandise item with a stock level.
type InventoryItem struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Stock          int    `yaml:"stock"`
	Type           string `yaml:"type"`
	PointsRequired int    `yaml:"points_required"`
}

// Promotion is a coupon or SMS promotion.
type Promotion struct {
	ID                string  `yaml:"id"`
	Description       string  `yaml:"description"`
	DiscountType      string  `yaml:"discount_type"`
	DiscountValue     float64 `yaml:"discount_value"`
	Conditions        string  `yaml:"conditions"`
	WeekdayOnly       bool    `yaml:"weekday_only"`
	ValidFrom         string  `yaml:"valid_from"`
	ValidUntil        string  `yaml:"valid_until"`
	SMSText           string  `yaml:"sms_text"`
	MissingTermsInSMS string  `yaml:"missing_terms_in_sms"`
}

// SecretCode is a secret phrase redeemable for a free item, once per table.
type SecretCode struct {
	Code          string `yaml:"code"`
	RewardItem    string `yaml:"reward_item"`
	RewardItemID  string `yaml:"reward_item_id"`
	LimitPerTable int    `yaml:"limit_per_table"`
}

// RestaurantInfo holds the static facts about the restaurant.
type RestaurantInfo struct {
	Name     string            `yaml:"name"`
	Location string            `yaml:"location"`
	Hours    map[string]string `yaml:"hours"`
}

// KitchenState carries the scripted kitchen context for coordination
// scenarios. Tasks seed it; coordination tools read it back verbatim.
type KitchenState struct {
	Status        string `yaml:"status"`
	Response      string `yaml:"response"`
	CanFulfill    *bool  `yaml:"can_fulfill"`
	EstimatedWait int    `yaml:"estimated_wait"`
	ChecksMade    int    `yaml:"-"`
}

// SMSClaim is a customer's claimed SMS promotion, seeded for verification.
type SMSClaim struct {
	Date          string  `yaml:"date"`
	Content       string  `yaml:"content"`
	MissingTerms  string  `yaml:"missing_terms"`
	DiscountValue float64 `yaml:"discount_value"`
}

// CompanyError reports whether the restaurant omitted terms in its own
// communication, which obliges honoring the claim.
func (c *SMSClaim) CompanyError() bool {
	return c != nil && c.MissingTerms != ""
}
