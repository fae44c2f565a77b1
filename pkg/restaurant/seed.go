package restaurant

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Seed is the structured dataset a session's Store is built from: the fixed
// restaurant facts plus scenario-specific records. Task files may override
// individual sections; anything omitted falls back to the default dataset.
type Seed struct {
	Info         RestaurantInfo   `yaml:"restaurant"`
	SoupBases    []SoupBase       `yaml:"soup_bases"`
	MenuItems    []MenuItem       `yaml:"menu_items"`
	LunchSpecial *LunchSpecial    `yaml:"lunch_special"`
	Tables       []Table          `yaml:"tables"`
	Customers    []Customer       `yaml:"customers"`
	Reservations []Reservation    `yaml:"reservations"`
	Orders       []Order          `yaml:"orders"`
	Inventory    []InventoryItem  `yaml:"inventory"`
	Promotions   []Promotion      `yaml:"promotions"`
	SecretCodes  []SecretCode     `yaml:"secret_codes"`
	Authorities  []StaffAuthority `yaml:"staff_authorities"`

	Role          StaffRole    `yaml:"staff_role"`
	ManagerOnDuty *bool        `yaml:"manager_on_duty"`
	Kitchen       KitchenState `yaml:"kitchen"`
	SMSClaim      *SMSClaim    `yaml:"sms_claim"`
	CustomerMood  string       `yaml:"customer_mood"`

	HoldWindowMinutes int `yaml:"hold_window_minutes"`
}

// LoadSeed reads a seed dataset from a YAML file. A load failure is fatal to
// the session that requested it.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %q: %w", path, err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %q: %w", path, err)
	}
	return &seed, nil
}

// Merge overlays non-empty sections of other onto the seed.
func (s *Seed) Merge(other *Seed) {
	if other == nil {
		return
	}
	if other.Info.Name != "" {
		s.Info = other.Info
	}
	if len(other.SoupBases) > 0 {
		s.SoupBases = other.SoupBases
	}
	if len(other.MenuItems) > 0 {
		s.MenuItems = other.MenuItems
	}
	if other.LunchSpecial != nil {
		s.LunchSpecial = other.LunchSpecial
	}
	if len(other.Tables) > 0 {
		s.Tables = other.Tables
	}
	if len(other.Customers) > 0 {
		s.Customers = other.Customers
	}
	if len(other.Reservations) > 0 {
		s.Reservations = other.Reservations
	}
	if len(other.Orders) > 0 {
		s.Orders = other.Orders
	}
	if len(other.Inventory) > 0 {
		s.Inventory = other.Inventory
	}
	if len(other.Promotions) > 0 {
		s.Promotions = other.Promotions
	}
	if len(other.SecretCodes) > 0 {
		s.SecretCodes = other.SecretCodes
	}
	if len(other.Authorities) > 0 {
		s.Authorities = other.Authorities
	}
	if other.Role != "" {
		s.Role = other.Role
	}
	if other.ManagerOnDuty != nil {
		s.ManagerOnDuty = other.ManagerOnDuty
	}
	if other.Kitchen.Status != "" || other.Kitchen.Response != "" {
		s.Kitchen = other.Kitchen
	}
	if other.SMSClaim != nil {
		s.SMSClaim = other.SMSClaim
	}
	if other.CustomerMood != "" {
		s.CustomerMood = other.CustomerMood
	}
	if other.HoldWindowMinutes > 0 {
		s.HoldWindowMinutes = other.HoldWindowMinutes
	}
}

// Validate checks the seed for structural problems that would make a session
// meaningless.
func (s *Seed) Validate() error {
	if len(s.Tables) == 0 {
		return fmt.Errorf("seed has no tables")
	}
	if len(s.Authorities) == 0 {
		return fmt.Errorf("seed has no staff authority profiles")
	}
	if s.Role != "" {
		if _, ok := authorityFor(s.Authorities, s.Role); !ok {
			return fmt.Errorf("seed staff role %q has no authority profile", s.Role)
		}
	}
	for _, t := range s.Tables {
		if t.StdCapacity <= 0 || t.StdExpansion < t.StdCapacity || t.MaxSqueeze < t.StdExpansion {
			return fmt.Errorf("table %s has inconsistent capacity tiers", t.ID)
		}
	}
	for _, c := range s.Customers {
		if c.Points < 0 {
			return fmt.Errorf("customer %s has negative points balance", c.ID)
		}
	}
	return nil
}

func authorityFor(auths []StaffAuthority, role StaffRole) (StaffAuthority, bool) {
	for _, a := range auths {
		if a.Role == role {
			return a, true
		}
	}
	return StaffAuthority{}, false
}

// Build constructs a session Store from the seed. The seed is copied into the
// store so later sessions can reuse it.
func (s *Seed) Build() (*Store, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	store := &Store{
		Info:         s.Info,
		SoupBases:    append([]SoupBase(nil), s.SoupBases...),
		MenuItems:    append([]MenuItem(nil), s.MenuItems...),
		Tables:       append([]Table(nil), s.Tables...),
		Customers:    append([]Customer(nil), s.Customers...),
		Reservations: append([]Reservation(nil), s.Reservations...),
		Orders:       append([]Order(nil), s.Orders...),
		Inventory:    append([]InventoryItem(nil), s.Inventory...),
		Promotions:   append([]Promotion(nil), s.Promotions...),
		SecretCodes:  append([]SecretCode(nil), s.SecretCodes...),
		Authorities:  append([]StaffAuthority(nil), s.Authorities...),
		Offers:       make(map[string][]Offer),
		Role:         s.Role,
		Kitchen:      s.Kitchen,
	}
	for i := range store.Orders {
		store.Orders[i].Items = append([]OrderItem(nil), s.Orders[i].Items...)
	}
	if s.LunchSpecial != nil {
		ls := *s.LunchSpecial
		store.LunchSpecial = &ls
	}
	if s.SMSClaim != nil {
		claim := *s.SMSClaim
		store.SMSClaim = &claim
	}
	if store.Role == "" {
		store.Role = RoleServer
	}
	store.ManagerOnDuty = true
	if s.ManagerOnDuty != nil {
		store.ManagerOnDuty = *s.ManagerOnDuty
	}
	store.Flags.CustomerMood = "normal"
	if s.CustomerMood != "" {
		store.Flags.CustomerMood = s.CustomerMood
		store.Flags.MoodExplicitlySet = true
	}
	if s.HoldWindowMinutes > 0 {
		store.HoldWindow = time.Duration(s.HoldWindowMinutes) * time.Minute
	}
	return store, nil
}

// DefaultSeed returns the bundled Berkeley Hot Pot dataset used when a task
// supplies no seed of its own.
func DefaultSeed() *Seed {
	return &Seed{
		Info: RestaurantInfo{
			Name:     "Berkeley Hot Pot",
			Location: "110 Sproul Hall, Berkeley, CA, 94720-5800",
			Hours: map[string]string{
				"Mon-Thur": "11:30 AM - 11:00 PM",
				"Fri-Sun":  "11:00 AM - 11:00 PM",
			},
		},
		SoupBases: []SoupBase{
			{
				ID: "S01", Name: "Spicy Sichuan", SpicyLevel: 4,
				Allergens:         []string{"peanut", "sesame"},
				HiddenIngredients: []string{"shrimp paste"},
				PreProcessed:      true,
				Prices:            map[string]float64{"quarter": 4.95, "half": 8.95, "whole": 15.95},
			},
			{
				ID: "S02", Name: "Herbal Chicken", SpicyLevel: 0,
				Allergens:         []string{"celery"},
				HiddenIngredients: []string{"soy"},
				PreProcessed:      true,
				Prices:            map[string]float64{"quarter": 4.95, "half": 8.95, "whole": 15.95},
			},
			{
				ID: "S07", Name: "Tomato", SpicyLevel: 0,
				HiddenIngredients: []string{"vinegar"},
				PreProcessed:      true,
				Prices:            map[string]float64{"quarter": 4.95, "half": 8.95, "whole": 15.95},
			},
			{
				ID: "S08", Name: "Plain Water", SpicyLevel: 0,
				PreProcessed: false, GlutenSafe: true,
				Prices: map[string]float64{"quarter": 0, "half": 0, "whole": 0},
			},
		},
		MenuItems: []MenuItem{
			{ID: "M01", Name: "Sliced Beef", Category: "protein", Price: 12.95, GlutenSafe: true},
			{ID: "M02", Name: "Lamb Shoulder", Category: "protein", Price: 13.95, GlutenSafe: true},
			{ID: "M10", Name: "Shrimp", Category: "seafood", Price: 14.95, Allergens: []string{"shellfish"}, GlutenSafe: true},
			{ID: "M15", Name: "Tofu", Category: "veggie", Price: 5.95, Allergens: []string{"soy"}, GlutenSafe: true},
			{ID: "M18", Name: "Enoki Mushroom", Category: "veggie", Price: 6.95, GlutenSafe: true},
			{ID: "M20", Name: "Fried Steamed Buns", Category: "appetizer", Price: 6.95, Allergens: []string{"gluten"}, PreProcessed: true},
			{ID: "M21", Name: "Seasonal Fruit Plate", Category: "dessert", Price: 5.95, GlutenSafe: true},
			{ID: "D01", Name: "Yakult", Category: "drink", Price: 3.50, Allergens: []string{"dairy"}, GlutenSafe: true},
		},
		LunchSpecial: &LunchSpecial{
			Price:           15.95,
			Availability:    "Mon-Fri before 5 PM",
			HolidayExcluded: true,
		},
		Tables: []Table{
			{ID: "A1", Type: "A", StdCapacity: 4, StdExpansion: 5, MaxSqueeze: 6, Status: TableAvailable, Tier: TierStandard},
			{ID: "A2", Type: "A", StdCapacity: 4, StdExpansion: 5, MaxSqueeze: 6, Status: TableAvailable, Tier: TierStandard},
			{ID: "A3", Type: "A", StdCapacity: 4, StdExpansion: 5, MaxSqueeze: 6, Status: TableAvailable, Tier: TierStandard},
			{ID: "B1", Type: "B", StdCapacity: 6, StdExpansion: 7, MaxSqueeze: 8, Status: TableAvailable, Tier: TierStandard},
			{ID: "B2", Type: "B", StdCapacity: 6, StdExpansion: 7, MaxSqueeze: 8, Status: TableAvailable, Tier: TierStandard},
			{ID: "C1", Type: "C", StdCapacity: 8, StdExpansion: 10, MaxSqueeze: 12, Status: TableAvailable, Tier: TierStandard},
			{ID: "C2", Type: "C", StdCapacity: 8, StdExpansion: 10, MaxSqueeze: 12, Status: TableAvailable, Tier: TierStandard},
		},
		Customers: []Customer{
			{ID: "C1001", Name: "VIP Customer", Phone: "555-0101", Tier: TierDiamond, Points: 12500, VisitCount: 87},
			{ID: "C1002", Name: "Casual Regular", Phone: "555-0102", Tier: TierBronze, Points: 150, VisitCount: 6},
		},
		Inventory: []InventoryItem{
			{ID: "G01", Name: "Fairy Wand", Stock: 0, Type: "secret_code_gift"},
			{ID: "G02", Name: "Assorted Kids Toy", Stock: 25, Type: "gift"},
			{ID: "G03", Name: "Branded Apron", Stock: 10, Type: "merchandise", PointsRequired: 800},
			{ID: "G04", Name: "Plush Mascot", Stock: 3, Type: "merchandise", PointsRequired: 500},
		},
		Promotions: []Promotion{
			{
				ID: "P01", Description: "20% off weekday dinner", DiscountType: "percentage",
				DiscountValue: 20, Conditions: "Weekdays only, dine-in", WeekdayOnly: true,
				ValidFrom: "2026-01-01", ValidUntil: "2026-03-31",
			},
		},
		SecretCodes: []SecretCode{
			{Code: "I like your golden bricks", RewardItem: "Fried Steamed Buns", RewardItemID: "M20", LimitPerTable: 1},
		},
		Authorities: []StaffAuthority{
			{Role: RoleServer, MaxDiscountPct: 12, MaxCompValue: 10, MaxRoundOff: 10},
			{Role: RoleHost, MaxDiscountPct: 12, MaxCompValue: 10, MaxRoundOff: 30},
			{Role: RoleManager, Unlimited: true},
		},
		Role: RoleServer,
	}
}
