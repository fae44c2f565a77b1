package tools

import (
	"strings"
	"testing"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

func newTestStore(t *testing.T) *restaurant.Store {
	t.Helper()
	store, err := restaurant.DefaultSeed().Build()
	if err != nil {
		t.Fatalf("building default seed: %v", err)
	}
	return store
}

func newTestRegistry() *Registry {
	return NewRegistry()
}

func invoke(t *testing.T, r *Registry, s *restaurant.Store, tool string, args Args) Response {
	t.Helper()
	return r.Invoke(s, Request{Tool: tool, Args: args})
}

func mustSucceed(t *testing.T, resp Response) map[string]any {
	t.Helper()
	if !resp.OK() {
		t.Fatalf("expected success, got %s (%s: %s)", resp.Status, resp.Code, resp.Reason)
	}
	return resp.Payload
}

func addTestOrder(s *restaurant.Store, tableID string, subtotal float64, partySize int) *restaurant.Order {
	order := restaurant.Order{
		ID:             "ORD_test0001",
		TableID:        tableID,
		PartySize:      partySize,
		Subtotal:       subtotal,
		SauceBarCharge: float64(partySize) * 2,
		Status:         restaurant.OrderPlaced,
		Items: []restaurant.OrderItem{
			{ItemID: "M01", Name: "Sliced Beef", Quantity: 2, Price: 12.95},
		},
	}
	recomputeTotals(&order)
	s.Orders = append(s.Orders, order)
	return s.CurrentOrder()
}

func TestUnknownToolIsInvalidArgument(t *testing.T) {
	r := newTestRegistry()
	resp := invoke(t, r, newTestStore(t), "teleport_customer", nil)
	if resp.Status != StatusInvalidArgument || resp.Code != CodeInvalidArgument {
		t.Fatalf("got %s/%s", resp.Status, resp.Code)
	}
}

func TestMissingArgumentIsInvalidArgument(t *testing.T) {
	r := newTestRegistry()
	resp := invoke(t, r, newTestStore(t), "get_reservation_details", Args{})
	if resp.Status != StatusInvalidArgument {
		t.Fatalf("got %s (%s)", resp.Status, resp.Reason)
	}
}

func TestApplyDiscountWithinAuthority(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	addTestOrder(s, "A1", 100, 4)

	payload := mustSucceed(t, invoke(t, r, s, "apply_discount", Args{
		"discount_type": "percentage",
		"value":         10,
	}))
	if payload["discount_amount"].(float64) != 10.8 {
		t.Errorf("discount_amount = %v, want 10.8", payload["discount_amount"])
	}
	if len(s.Flags.DiscountsGiven) != 1 || s.Flags.DiscountsGiven[0] != 10 {
		t.Errorf("DiscountsGiven = %v", s.Flags.DiscountsGiven)
	}
}

func TestApplyDiscountAboveCeilingIsAuthorityExceeded(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	order := addTestOrder(s, "A1", 100, 4)

	resp := invoke(t, r, s, "apply_discount", Args{
		"discount_type": "percentage",
		"value":         20,
	})
	if resp.Status != StatusAuthorityExceeded || resp.Code != CodeAuthorityExceeded {
		t.Fatalf("got %s/%s", resp.Status, resp.Code)
	}
	// Denied calls never mutate.
	if order.DiscountAmount != 0 {
		t.Errorf("order mutated on denial: discount %v", order.DiscountAmount)
	}
	if len(s.TableOffers("A1")) != 0 {
		t.Errorf("offer recorded on denial")
	}
}

func TestManagerDiscountUnbounded(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	s.Role = restaurant.RoleManager
	addTestOrder(s, "A1", 100, 4)

	mustSucceed(t, invoke(t, r, s, "apply_discount", Args{
		"discount_type": "percentage",
		"value":         50,
	}))
}

func TestOneAuthorityOptionPerTable(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	addTestOrder(s, "A1", 100, 4)

	mustSucceed(t, invoke(t, r, s, "apply_discount", Args{
		"discount_type": "percentage",
		"value":         10,
	}))
	resp := invoke(t, r, s, "add_complimentary_item", Args{"item": "M21", "reason": "goodwill"})
	if resp.Status != StatusDenied || resp.Code != CodePolicyDenied {
		t.Fatalf("got %s/%s: %s", resp.Status, resp.Code, resp.Reason)
	}
}

func TestSecretCodeOncePerTable(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	addTestOrder(s, "A1", 60, 4)

	mustSucceed(t, invoke(t, r, s, "redeem_secret_code", Args{
		"code":     "I like your golden bricks",
		"table_id": "A1",
	}))
	resp := invoke(t, r, s, "redeem_secret_code", Args{
		"code":     "I like your golden bricks",
		"table_id": "A1",
	})
	if resp.Status != StatusDenied || resp.Code != CodePreconditionFailed {
		t.Fatalf("got %s/%s", resp.Status, resp.Code)
	}
}

func TestSecretCodeUnknownPhrase(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	resp := invoke(t, r, s, "redeem_secret_code", Args{
		"code":     "open sesame",
		"table_id": "A1",
	})
	if resp.Status != StatusDenied || resp.Code != CodeNotFound {
		t.Fatalf("got %s/%s", resp.Status, resp.Code)
	}
}

func TestPointsRedemptionAtomic(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	payload := mustSucceed(t, invoke(t, r, s, "process_points_redemption", Args{
		"customer_id": "C1001",
		"reward":      "voucher_20",
	}))
	if payload["points_remaining"].(int) != 12100 {
		t.Errorf("points_remaining = %v, want 12100", payload["points_remaining"])
	}
	if s.Customer("C1001").Points != 12100 {
		t.Errorf("store balance = %d", s.Customer("C1001").Points)
	}
}

func TestPointsRedemptionInsufficientBalance(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	resp := invoke(t, r, s, "process_points_redemption", Args{
		"customer_id": "C1002",
		"reward":      "voucher_20",
	})
	if resp.Status != StatusDenied || resp.Code != CodePreconditionFailed {
		t.Fatalf("got %s/%s", resp.Status, resp.Code)
	}
	if s.Customer("C1002").Points != 150 {
		t.Errorf("balance mutated on denial: %d", s.Customer("C1002").Points)
	}
}

func TestPointsRedemptionOutOfStock(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	// Branded Apron has stock; drain it first.
	s.InventoryItem("G03").Stock = 0

	resp := invoke(t, r, s, "process_points_redemption", Args{
		"customer_id": "C1001",
		"reward":      "Branded Apron",
	})
	if resp.Status != StatusDenied || resp.Code != CodePreconditionFailed {
		t.Fatalf("got %s/%s: %s", resp.Status, resp.Code, resp.Reason)
	}
}

func TestLargeWeekendPartyDenied(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	resp := invoke(t, r, s, "create_reservation", Args{
		"customer_name": "Big Group",
		"phone":         "555-0199",
		"party_size":    25,
		"date":          "2026-01-17", // Saturday
		"time":          "18:00",
	})
	if resp.Status != StatusDenied || resp.Code != CodePolicyDenied {
		t.Fatalf("got %s/%s: %s", resp.Status, resp.Code, resp.Reason)
	}
}

func TestReservationDeterministicID(t *testing.T) {
	r := newTestRegistry()
	args := Args{
		"customer_name": "Alice",
		"phone":         "555-0110",
		"party_size":    4,
		"date":          "2026-01-20",
		"time":          "18:30",
	}

	p1 := mustSucceed(t, invoke(t, r, newTestStore(t), "create_reservation", args))
	p2 := mustSucceed(t, invoke(t, r, newTestStore(t), "create_reservation", args))
	id1 := p1["reservation_id"].(string)
	if id1 != p2["reservation_id"].(string) {
		t.Errorf("replayed reservation IDs differ: %s vs %s", id1, p2["reservation_id"])
	}
	if !strings.HasPrefix(id1, "RES_") || len(id1) != len("RES_")+8 {
		t.Errorf("unexpected ID shape %q", id1)
	}
}

func TestSqueezeSeatingRequiresExplicitRequest(t *testing.T) {
	r := newTestRegistry()

	s := newTestStore(t)
	resp := invoke(t, r, s, "seat_party", Args{"table_id": "A1", "party_size": 6})
	if resp.Status != StatusDenied || resp.Code != CodePolicyDenied {
		t.Fatalf("without request: got %s/%s", resp.Status, resp.Code)
	}

	s = newTestStore(t)
	payload := mustSucceed(t, invoke(t, r, s, "seat_party", Args{
		"table_id":          "A1",
		"party_size":        6,
		"squeeze_requested": true,
	}))
	if payload["tier"].(string) != "squeeze" {
		t.Errorf("tier = %v, want squeeze", payload["tier"])
	}
}

func TestDeniedSeatingLeavesReservedTableBound(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	s.Reservations = append(s.Reservations, restaurant.Reservation{
		ID:           "RES_pending1",
		CustomerName: "Booked Party",
		PartySize:    4,
		TableID:      "A1",
		Status:       restaurant.ReservationPending,
	})
	table := s.Table("A1")
	table.Status = restaurant.TableReserved
	table.ReservationID = "RES_pending1"

	// Party of 9 is over the A-table squeeze limit: the call is denied and
	// the table must stay reserved for its reservation.
	resp := invoke(t, r, s, "seat_party", Args{
		"table_id":       "A1",
		"party_size":     9,
		"reservation_id": "RES_pending1",
	})
	if resp.Status != StatusDenied || resp.Code != CodePreconditionFailed {
		t.Fatalf("got %s/%s, want %s/%s", resp.Status, resp.Code, StatusDenied, CodePreconditionFailed)
	}
	if table.Status != restaurant.TableReserved {
		t.Errorf("table status = %s, want %s", table.Status, restaurant.TableReserved)
	}
	if table.ReservationID != "RES_pending1" {
		t.Errorf("table reservation binding = %q, want RES_pending1", table.ReservationID)
	}
	if res := s.Reservation("RES_pending1"); res.Status != restaurant.ReservationPending {
		t.Errorf("reservation status = %s, want %s", res.Status, restaurant.ReservationPending)
	}

	// The same reservation still seats normally afterwards.
	payload := mustSucceed(t, invoke(t, r, s, "seat_party", Args{
		"table_id":       "A1",
		"party_size":     4,
		"reservation_id": "RES_pending1",
	}))
	if payload["tier"].(string) != "standard" {
		t.Errorf("tier = %v, want standard", payload["tier"])
	}
}

func TestWalkInCannotJumpWaitlist(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	mustSucceed(t, invoke(t, r, s, "suggest_waitlist", Args{
		"customer_name": "Waiting Party", "party_size": 4,
	}))

	resp := invoke(t, r, s, "seat_party", Args{
		"table_id": "A1", "party_size": 2, "customer_name": "Newcomer",
	})
	if resp.Status != StatusDenied {
		t.Fatalf("got %s", resp.Status)
	}

	mustSucceed(t, invoke(t, r, s, "seat_party", Args{
		"table_id": "A1", "party_size": 4, "customer_name": "Waiting Party",
	}))
	if len(s.Waitlist) != 0 {
		t.Errorf("waitlist not consumed: %v", s.Waitlist)
	}
}

func TestHeldReservationAutoReleasesToWaitlistHead(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	s.Waitlist = []restaurant.WaitlistEntry{{Name: "Existing", PartySize: 2}}
	s.Reservations = append(s.Reservations, restaurant.Reservation{
		ID: "RES_held0001", CustomerName: "Late Party", PartySize: 4,
		Date: "2026-01-14", Time: "17:30", TableID: "A2",
		Status: restaurant.ReservationHeld,
	})
	s.Table("A2").Status = restaurant.TableReserved
	s.Table("A2").ReservationID = "RES_held0001"

	// Any invocation observes the expiry first; 17:30 + 15m < 18:00.
	mustSucceed(t, invoke(t, r, s, "get_restaurant_info", nil))

	res := s.Reservation("RES_held0001")
	if res.Status != restaurant.ReservationReleased {
		t.Fatalf("status = %s, want released", res.Status)
	}
	if s.Table("A2").Status != restaurant.TableAvailable {
		t.Errorf("table not freed: %s", s.Table("A2").Status)
	}
	if len(s.Waitlist) != 2 || s.Waitlist[0].Name != "Late Party" {
		t.Errorf("released party not at waitlist head: %v", s.Waitlist)
	}
}

func TestAllergyCheckPlainWaterGuaranteed(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	payload := mustSucceed(t, invoke(t, r, s, "check_allergy_safety", Args{
		"item": "Plain Water", "allergy": "peanut",
	}))
	if payload["safe"] != true || payload["guaranteed"] != true {
		t.Errorf("payload = %v", payload)
	}
}

func TestConfirmUnsafeSoupBaseDenied(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	resp := invoke(t, r, s, "confirm_allergy_safe_item", Args{
		"item": "Tomato", "allergy": "shellfish",
	})
	if resp.Status != StatusDenied || resp.Code != CodePolicyDenied {
		t.Fatalf("got %s/%s", resp.Status, resp.Code)
	}
	if !s.Flags.UnsafeRecommendationMade {
		t.Error("denied confirmation attempt not recorded")
	}
}

func TestConfirmGlutenSafeItemDeniedWhenPreProcessed(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	resp := invoke(t, r, s, "confirm_allergy_safe_item", Args{
		"item": "Fried Steamed Buns", "allergy": "celiac",
	})
	if resp.Status != StatusDenied {
		t.Fatalf("got %s", resp.Status)
	}
}

func TestLunchSpecialGatingAtDinnerTime(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	// Default sim clock is Wednesday 6 PM: weekday but past the cutoff.
	payload := mustSucceed(t, invoke(t, r, s, "check_lunch_special_availability", nil))
	if payload["available"] != false {
		t.Errorf("available = %v at 6 PM", payload["available"])
	}
	if payload["is_weekday"] != true {
		t.Errorf("is_weekday = %v", payload["is_weekday"])
	}
}

func TestEscalationRequiresCompleteSolution(t *testing.T) {
	r := newTestRegistry()

	cases := []struct {
		name string
		args Args
	}{
		{"missing target", Args{"reason": "upset guest", "recommended_discount_percent": 20, "recommended_actions": []any{"comp_dessert"}}},
		{"missing reason", Args{"escalate_to": "manager", "recommended_discount_percent": 20, "recommended_actions": []any{"comp_dessert"}}},
		{"missing discount", Args{"escalate_to": "manager", "reason": "upset guest", "recommended_actions": []any{"comp_dessert"}}},
		{"missing actions", Args{"escalate_to": "manager", "reason": "upset guest", "recommended_discount_percent": 20}},
		{"bad target", Args{"escalate_to": "ceo", "reason": "upset guest", "recommended_discount_percent": 20, "recommended_actions": []any{"comp_dessert"}}},
		{"unknown action", Args{"escalate_to": "manager", "reason": "upset guest", "recommended_discount_percent": 20, "recommended_actions": []any{"summon_lawyers"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := invoke(t, r, newTestStore(t), "escalate_with_solution", tc.args)
			if resp.Status != StatusInvalidArgument {
				t.Fatalf("got %s (%s)", resp.Status, resp.Reason)
			}
		})
	}
}

func TestEscalationRecordsFlags(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	mustSucceed(t, invoke(t, r, s, "escalate_with_solution", Args{
		"escalate_to":                  "manager",
		"reason":                       "cake storage failure on an anniversary",
		"recommended_discount_percent": 50,
		"recommended_actions":          []any{"offer_replacement_cake", "comp_dessert"},
		"category":                     "celebration_failure",
	}))

	f := s.Flags
	if !f.EscalationMade || f.EscalationTo != "manager" {
		t.Fatalf("flags = %+v", f)
	}
	if f.RecommendedDiscount == nil || *f.RecommendedDiscount != 50 {
		t.Errorf("RecommendedDiscount = %v", f.RecommendedDiscount)
	}
	if len(s.Incidents) != 1 || !s.Incidents[0].Escalated {
		t.Errorf("incidents = %+v", s.Incidents)
	}
}

func TestEscalationWithoutManagerOnDuty(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	s.ManagerOnDuty = false

	resp := invoke(t, r, s, "escalate_with_solution", Args{
		"escalate_to":                  "manager",
		"reason":                       "guest requests a manager",
		"recommended_discount_percent": 0,
		"recommended_actions":          []any{"comp_dessert"},
	})
	if resp.Status != StatusDenied || resp.Code != CodePreconditionFailed {
		t.Fatalf("got %s/%s", resp.Status, resp.Code)
	}
}

func TestResolveWithCompensation(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	payload := mustSucceed(t, invoke(t, r, s, "resolve_with_compensation", Args{
		"compensation_type":    "voucher",
		"compensation_details": "$20 credit toward the next visit",
	}))
	if payload["compensation_type"].(string) != "voucher" {
		t.Errorf("compensation_type = %v", payload["compensation_type"])
	}
	if !s.Flags.CompensationOffered {
		t.Error("CompensationOffered not set")
	}
	want := "voucher: $20 credit toward the next visit"
	if len(s.Flags.CompItemsGiven) != 1 || s.Flags.CompItemsGiven[0] != want {
		t.Errorf("CompItemsGiven = %v, want [%q]", s.Flags.CompItemsGiven, want)
	}
}

func TestResolveWithCompensationRejectsCurrentBillRemedies(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	resp := invoke(t, r, s, "resolve_with_compensation", Args{
		"compensation_type":    "discount",
		"compensation_details": "10% off now",
	})
	if resp.Status != StatusInvalidArgument || resp.Code != CodeInvalidArgument {
		t.Fatalf("got %s/%s, want %s/%s", resp.Status, resp.Code, StatusInvalidArgument, CodeInvalidArgument)
	}
	if s.Flags.CompensationOffered || len(s.Flags.CompItemsGiven) != 0 {
		t.Errorf("rejected call mutated flags: %+v", s.Flags)
	}
}

func TestClothingDamageMajorNeedsManager(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	addTestOrder(s, "A1", 60, 2)

	resp := invoke(t, r, s, "handle_clothing_damage", Args{"severity": "major"})
	if resp.Status != StatusAuthorityExceeded {
		t.Fatalf("server handling major damage: got %s", resp.Status)
	}

	s.Role = restaurant.RoleManager
	payload := mustSucceed(t, invoke(t, r, s, "handle_clothing_damage", Args{"severity": "major"}))
	// Bill of $69.60 with tax is under the $80 limit: full comp.
	if s.CurrentOrder().Status != restaurant.OrderComped {
		t.Errorf("order status = %s, want comped", s.CurrentOrder().Status)
	}
	if payload["new_total"].(float64) != 0 {
		t.Errorf("new_total = %v, want 0", payload["new_total"])
	}
}

func TestClothingDamageMinorDryCleaningOnly(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	addTestOrder(s, "A1", 60, 2)

	payload := mustSucceed(t, invoke(t, r, s, "handle_clothing_damage", Args{"severity": "minor"}))
	if !strings.Contains(payload["compensation"].(string), "$30.00") {
		t.Errorf("compensation = %v", payload["compensation"])
	}
	if s.CurrentOrder().DiscountAmount != 0 {
		t.Errorf("minor damage discounted the bill")
	}
}

func TestRecordIncidentDerivesRemedy(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	payload := mustSucceed(t, invoke(t, r, s, "record_service_incident", Args{
		"category":    "service_delay",
		"severity":    "major",
		"description": "35 minute wait on an anniversary dinner",
	}))
	if payload["recommended_discount_percent"].(int) != 20 {
		t.Errorf("recommended discount = %v, want 20", payload["recommended_discount_percent"])
	}
	// 20% exceeds the server's 12% ceiling.
	if payload["must_escalate"] != true {
		t.Errorf("must_escalate = %v", payload["must_escalate"])
	}
}

func TestSpecialPreparationRequiresKitchenCheck(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	resp := invoke(t, r, s, "request_special_preparation", Args{"request": "less oil"})
	if resp.Status != StatusDenied || resp.Code != CodePreconditionFailed {
		t.Fatalf("got %s/%s", resp.Status, resp.Code)
	}

	mustSucceed(t, invoke(t, r, s, "check_kitchen_status", nil))
	mustSucceed(t, invoke(t, r, s, "request_special_preparation", Args{"request": "less oil"}))
	if !s.Flags.SpecialRequestAttempted {
		t.Error("SpecialRequestAttempted not set")
	}
}

func TestDelayMessageFlagsInternalExposure(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)

	mustSucceed(t, invoke(t, r, s, "communicate_delay_to_customer", Args{
		"message": "Your food will be out shortly, thank you for your patience.",
	}))
	if s.Flags.InternalIssueExposed {
		t.Fatal("clean message flagged as exposure")
	}

	mustSucceed(t, invoke(t, r, s, "communicate_delay_to_customer", Args{
		"message": "Sorry, we're short-staffed tonight and the kitchen is backed up.",
	}))
	if !s.Flags.InternalIssueExposed {
		t.Fatal("internal issue exposure not flagged")
	}
	if len(s.Flags.Communications) != 2 {
		t.Errorf("communications = %d, want 2", len(s.Flags.Communications))
	}
}

func TestGoodwillDrinkStacksWithDiscount(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	addTestOrder(s, "A1", 100, 4)

	mustSucceed(t, invoke(t, r, s, "apply_discount", Args{
		"discount_type": "percentage", "value": 10,
	}))
	mustSucceed(t, invoke(t, r, s, "offer_complimentary_drink", Args{"reason": "long wait"}))
	if !s.Flags.ComplimentaryOffered {
		t.Error("ComplimentaryOffered not set")
	}
}

func TestSnapshotIsolatedFromLiveStore(t *testing.T) {
	r := newTestRegistry()
	s := newTestStore(t)
	snap := s.Snapshot()

	mustSucceed(t, invoke(t, r, s, "suggest_waitlist", Args{
		"customer_name": "Later Party", "party_size": 3,
	}))
	if len(snap.Waitlist) != 0 {
		t.Errorf("snapshot observed live mutation: %v", snap.Waitlist)
	}
	if snap.Flags.WaitlistSuggested {
		t.Error("snapshot flags mutated")
	}
}
