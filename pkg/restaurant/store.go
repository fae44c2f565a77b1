package restaurant

import (
	"strings"
	"time"
)

// DefaultHoldWindow is how long a held reservation survives past its target
// time before it auto-releases.
const DefaultHoldWindow = 15 * time.Minute

// Store is the canonical mutable state for one simulated session. It is the
// enforcement boundary: only the tool operation layer mutates it, and the
// scoring engine reads a Snapshot.
type Store struct {
	Info         RestaurantInfo
	SoupBases    []SoupBase
	MenuItems    []MenuItem
	LunchSpecial *LunchSpecial
	Tables       []Table
	Customers    []Customer
	Reservations []Reservation
	Orders       []Order
	Incidents    []Incident
	Inventory    []InventoryItem
	Promotions   []Promotion
	SecretCodes  []SecretCode
	Authorities  []StaffAuthority
	Waitlist     []WaitlistEntry

	// Offers maps table ID to the offers applied during the current visit.
	Offers map[string][]Offer

	// Session context
	Role          StaffRole
	ManagerOnDuty bool
	Kitchen       KitchenState
	SMSClaim      *SMSClaim

	// Flags tracks agent behavior for scoring.
	Flags Flags

	// HoldWindow is the grace period for held reservations.
	HoldWindow time.Duration

	clock Clock
}

// SetClock replaces the simulation clock. A nil clock resets to the default
// fixed instant.
func (s *Store) SetClock(c Clock) {
	s.clock = c
}

// Now returns the simulation's current time.
func (s *Store) Now() time.Time {
	if s.clock == nil {
		return DefaultSimTime
	}
	return s.clock.Now()
}

// Today returns the simulation's current date at midnight.
func (s *Store) Today() time.Time {
	n := s.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// holdWindow returns the configured hold window or the default.
func (s *Store) holdWindow() time.Duration {
	if s.HoldWindow <= 0 {
		return DefaultHoldWindow
	}
	return s.HoldWindow
}

// Table returns a pointer into the table slice, or nil if absent.
func (s *Store) Table(id string) *Table {
	for i := range s.Tables {
		if s.Tables[i].ID == id {
			return &s.Tables[i]
		}
	}
	return nil
}

// Customer returns the customer with the given ID, or nil.
func (s *Store) Customer(id string) *Customer {
	for i := range s.Customers {
		if s.Customers[i].ID == id {
			return &s.Customers[i]
		}
	}
	return nil
}

// CustomerByPhone returns the customer with the given phone number, or nil.
func (s *Store) CustomerByPhone(phone string) *Customer {
	for i := range s.Customers {
		if s.Customers[i].Phone == phone {
			return &s.Customers[i]
		}
	}
	return nil
}

// Reservation returns the reservation with the given ID, or nil.
func (s *Store) Reservation(id string) *Reservation {
	for i := range s.Reservations {
		if s.Reservations[i].ID == id {
			return &s.Reservations[i]
		}
	}
	return nil
}

// Order returns the order with the given ID, or nil.
func (s *Store) Order(id string) *Order {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return &s.Orders[i]
		}
	}
	return nil
}

// CurrentOrder returns the most recent order, which stands in for the
// current table's bill when a tool call omits the order ID.
func (s *Store) CurrentOrder() *Order {
	if len(s.Orders) == 0 {
		return nil
	}
	return &s.Orders[len(s.Orders)-1]
}

// MenuItem looks up a menu item by ID or case-insensitive name substring.
func (s *Store) MenuItem(ref string) *MenuItem {
	ref = strings.ToLower(strings.TrimSpace(ref))
	for i := range s.MenuItems {
		it := &s.MenuItems[i]
		if strings.ToLower(it.ID) == ref || strings.Contains(strings.ToLower(it.Name), ref) {
			return it
		}
	}
	return nil
}

// SoupBase looks up a soup base by ID or case-insensitive name substring.
func (s *Store) SoupBase(ref string) *SoupBase {
	ref = strings.ToLower(strings.TrimSpace(ref))
	for i := range s.SoupBases {
		sb := &s.SoupBases[i]
		if strings.ToLower(sb.ID) == ref || strings.Contains(strings.ToLower(sb.Name), ref) {
			return sb
		}
	}
	return nil
}

// InventoryItem looks up inventory by ID, exact name, or name substring for
// queries longer than three characters.
func (s *Store) InventoryItem(ref string) *InventoryItem {
	ref = strings.ToLower(strings.TrimSpace(ref))
	for i := range s.Inventory {
		inv := &s.Inventory[i]
		name := strings.ToLower(inv.Name)
		if strings.ToLower(inv.ID) == ref || name == ref {
			return inv
		}
		if len(ref) > 3 && strings.Contains(name, ref) {
			return inv
		}
	}
	return nil
}

// Authority returns the ceiling profile for a role.
func (s *Store) Authority(role StaffRole) (StaffAuthority, bool) {
	for _, a := range s.Authorities {
		if a.Role == role {
			return a, true
		}
	}
	return StaffAuthority{}, false
}

// CurrentAuthority returns the ceiling profile for the session's role.
func (s *Store) CurrentAuthority() (StaffAuthority, bool) {
	return s.Authority(s.Role)
}

// TableOffers returns the offers applied to a table this visit.
func (s *Store) TableOffers(tableID string) []Offer {
	if s.Offers == nil {
		return nil
	}
	return s.Offers[tableID]
}

// AddOffer records an applied offer against a table.
func (s *Store) AddOffer(tableID string, o Offer) {
	if s.Offers == nil {
		s.Offers = make(map[string][]Offer)
	}
	s.Offers[tableID] = append(s.Offers[tableID], o)
}

// SecretCodeUsed reports whether a table already redeemed a secret code
// this visit.
func (s *Store) SecretCodeUsed(tableID string) bool {
	for _, o := range s.TableOffers(tableID) {
		if o.Kind == OfferSecretCode {
			return true
		}
	}
	for i := range s.Orders {
		if s.Orders[i].TableID == tableID && s.Orders[i].SecretCodeUsed != "" {
			return true
		}
	}
	return false
}

// ExpireHolds releases held reservations whose hold window has elapsed and
// places the released parties at the head of the waitlist. Tools call this
// before any reservation or seating operation, so the transition is lazy
// but observed before it can matter.
func (s *Store) ExpireHolds() {
	now := s.Now()
	for i := range s.Reservations {
		res := &s.Reservations[i]
		if res.Status != ReservationHeld {
			continue
		}
		target, err := ParseDateTime(res.Date, res.Time)
		if err != nil {
			continue
		}
		if now.After(target.Add(s.holdWindow())) {
			res.Status = ReservationReleased
			if res.TableID != "" {
				if t := s.Table(res.TableID); t != nil && t.ReservationID == res.ID {
					t.ReservationID = ""
					if t.Status == TableReserved {
						t.Status = TableAvailable
					}
				}
			}
			s.Waitlist = append([]WaitlistEntry{{
				Name:          res.CustomerName,
				Phone:         res.Phone,
				PartySize:     res.PartySize,
				ReservationID: res.ID,
			}}, s.Waitlist...)
		}
	}
}

// Snapshot returns a deep copy of the store for read-only inspection by the
// scoring engine. The copy shares no mutable memory with the live store.
func (s *Store) Snapshot() *Store {
	cp := *s
	cp.SoupBases = append([]SoupBase(nil), s.SoupBases...)
	for i := range cp.SoupBases {
		cp.SoupBases[i].Allergens = append([]string(nil), s.SoupBases[i].Allergens...)
		cp.SoupBases[i].HiddenIngredients = append([]string(nil), s.SoupBases[i].HiddenIngredients...)
		cp.SoupBases[i].Prices = copyMap(s.SoupBases[i].Prices)
	}
	cp.MenuItems = append([]MenuItem(nil), s.MenuItems...)
	for i := range cp.MenuItems {
		cp.MenuItems[i].Allergens = append([]string(nil), s.MenuItems[i].Allergens...)
	}
	if s.LunchSpecial != nil {
		ls := *s.LunchSpecial
		cp.LunchSpecial = &ls
	}
	cp.Tables = append([]Table(nil), s.Tables...)
	cp.Customers = append([]Customer(nil), s.Customers...)
	cp.Reservations = append([]Reservation(nil), s.Reservations...)
	cp.Orders = append([]Order(nil), s.Orders...)
	for i := range cp.Orders {
		cp.Orders[i].Items = append([]OrderItem(nil), s.Orders[i].Items...)
	}
	cp.Incidents = append([]Incident(nil), s.Incidents...)
	cp.Inventory = append([]InventoryItem(nil), s.Inventory...)
	cp.Promotions = append([]Promotion(nil), s.Promotions...)
	cp.SecretCodes = append([]SecretCode(nil), s.SecretCodes...)
	cp.Authorities = append([]StaffAuthority(nil), s.Authorities...)
	cp.Waitlist = append([]WaitlistEntry(nil), s.Waitlist...)
	if s.Offers != nil {
		cp.Offers = make(map[string][]Offer, len(s.Offers))
		for k, v := range s.Offers {
			cp.Offers[k] = append([]Offer(nil), v...)
		}
	}
	if s.SMSClaim != nil {
		claim := *s.SMSClaim
		cp.SMSClaim = &claim
	}
	if s.Kitchen.CanFulfill != nil {
		b := *s.Kitchen.CanFulfill
		cp.Kitchen.CanFulfill = &b
	}
	cp.Flags = copyFlags(s.Flags)
	return &cp
}

func copyFlags(f Flags) Flags {
	cp := f
	if f.RecommendedDiscount != nil {
		v := *f.RecommendedDiscount
		cp.RecommendedDiscount = &v
	}
	cp.RecommendedActions = append([]string(nil), f.RecommendedActions...)
	cp.CompItemsGiven = append([]string(nil), f.CompItemsGiven...)
	cp.DiscountsGiven = append([]float64(nil), f.DiscountsGiven...)
	cp.AllergyChecks = append([]AllergyCheck(nil), f.AllergyChecks...)
	cp.SafeItemsRecommended = append([]string(nil), f.SafeItemsRecommended...)
	cp.ComplimentaryItems = append([]GoodwillItem(nil), f.ComplimentaryItems...)
	cp.Alternatives = append([]Alternative(nil), f.Alternatives...)
	cp.Communications = append([]Communication(nil), f.Communications...)
	return cp
}

func copyMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	cp := make(map[string]float64, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
