package policy

import (
	"testing"
	"time"

	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

var (
	serverAuth  = restaurant.StaffAuthority{Role: restaurant.RoleServer, MaxDiscountPct: 12, MaxCompValue: 10, MaxRoundOff: 10}
	hostAuth    = restaurant.StaffAuthority{Role: restaurant.RoleHost, MaxDiscountPct: 12, MaxCompValue: 10, MaxRoundOff: 30}
	managerAuth = restaurant.StaffAuthority{Role: restaurant.RoleManager, Unlimited: true}
)

func TestCheckAuthority(t *testing.T) {
	cases := []struct {
		name   string
		auth   restaurant.StaffAuthority
		kind   BenefitKind
		amount float64
		effect Effect
	}{
		{"server discount at ceiling", serverAuth, BenefitDiscountPct, 12, EffectAllow},
		{"server discount above ceiling", serverAuth, BenefitDiscountPct, 12.5, EffectEscalate},
		{"server comp at ceiling", serverAuth, BenefitCompValue, 10, EffectAllow},
		{"server comp above ceiling", serverAuth, BenefitCompValue, 14.95, EffectEscalate},
		{"server round-off above ceiling", serverAuth, BenefitRoundOff, 12, EffectEscalate},
		{"host round-off within larger ceiling", hostAuth, BenefitRoundOff, 25, EffectAllow},
		{"manager unbounded", managerAuth, BenefitDiscountPct, 100, EffectAllow},
		{"negative amount", serverAuth, BenefitDiscountPct, -5, EffectDeny},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := CheckAuthority(tc.auth, tc.kind, tc.amount)
			if d.Effect != tc.effect {
				t.Fatalf("effect = %s, want %s (%s)", d.Effect, tc.effect, d.Reason)
			}
			if tc.effect == EffectEscalate && d.Code != CodeAuthorityExceeded {
				t.Errorf("code = %s", d.Code)
			}
		})
	}
}

func TestCheckStacking(t *testing.T) {
	discount := restaurant.NewOffer(restaurant.OfferDiscount, 10, "")
	roundOff := restaurant.NewOffer(restaurant.OfferRoundOff, 5, "")
	voucher := restaurant.NewOffer(restaurant.OfferVoucher, 10, "")
	sms := restaurant.NewOffer(restaurant.OfferSMSPromo, 20, "")
	secret := restaurant.NewOffer(restaurant.OfferSecretCode, 0, "")
	points := restaurant.NewOffer(restaurant.OfferPointsRedemption, 200, "")
	goodwill := restaurant.NewOffer(restaurant.OfferGoodwillItem, 0, "")

	cases := []struct {
		name     string
		applied  []restaurant.Offer
		proposed restaurant.Offer
		allow    bool
		code     Code
	}{
		{"empty table", nil, discount, true, ""},
		{"second authority option", []restaurant.Offer{discount}, roundOff, false, CodePolicyDenied},
		{"promotion on promotion", []restaurant.Offer{voucher}, sms, false, CodePolicyDenied},
		{"promotion with secret code", []restaurant.Offer{secret}, voucher, true, ""},
		{"promotion with points", []restaurant.Offer{points}, voucher, true, ""},
		{"second secret code", []restaurant.Offer{secret}, secret, false, CodePreconditionFailed},
		{"goodwill stacks with anything", []restaurant.Offer{discount, voucher, secret}, goodwill, true, ""},
		{"discount after goodwill", []restaurant.Offer{goodwill}, discount, true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := CheckStacking(tc.applied, tc.proposed)
			if d.Allowed() != tc.allow {
				t.Fatalf("allowed = %v, want %v (%s)", d.Allowed(), tc.allow, d.Reason)
			}
			if !tc.allow && d.Code != tc.code {
				t.Errorf("code = %s, want %s", d.Code, tc.code)
			}
		})
	}
}

func TestSoupBaseSafety(t *testing.T) {
	plain := &restaurant.SoupBase{ID: "S08", Name: "Plain Water", GlutenSafe: true}
	tomato := &restaurant.SoupBase{ID: "S07", Name: "Tomato", HiddenIngredients: []string{"vinegar"}, PreProcessed: true}
	sichuan := &restaurant.SoupBase{
		ID: "S01", Name: "Spicy Sichuan",
		Allergens: []string{"peanut", "sesame"}, HiddenIngredients: []string{"shrimp paste"},
		PreProcessed: true,
	}

	if v := ResolveSoupBaseSafety(plain, "peanut"); !v.Safe || !v.Guaranteed {
		t.Errorf("plain water: %+v", v)
	}
	if v := ResolveSoupBaseSafety(tomato, "gluten"); v.Safe {
		t.Errorf("gluten on pre-processed base resolved safe: %+v", v)
	}
	if v := ResolveSoupBaseSafety(sichuan, "shellfish"); v.Safe {
		// Hidden shrimp paste: never affirmatively safe.
		t.Errorf("sichuan shellfish resolved safe: %+v", v)
	}
	if v := ResolveSoupBaseSafety(tomato, "peanut"); v.Safe {
		t.Errorf("pre-processed base resolved safe: %+v", v)
	}
}

func TestMenuItemSafety(t *testing.T) {
	beef := &restaurant.MenuItem{ID: "M01", Name: "Sliced Beef", GlutenSafe: true}
	buns := &restaurant.MenuItem{ID: "M20", Name: "Fried Steamed Buns", Allergens: []string{"gluten"}, PreProcessed: true}
	shrimp := &restaurant.MenuItem{ID: "M10", Name: "Shrimp", Allergens: []string{"shellfish"}, GlutenSafe: true}

	if v := ResolveMenuItemSafety(beef, "celiac"); !v.Safe {
		t.Errorf("gluten-safe unprocessed item not confirmed: %+v", v)
	}
	if v := ResolveMenuItemSafety(buns, "gluten"); v.Safe {
		t.Errorf("gluten item resolved safe: %+v", v)
	}
	if v := ResolveMenuItemSafety(shrimp, "shellfish"); v.Safe {
		t.Errorf("listed allergen resolved safe: %+v", v)
	}
	if v := ResolveMenuItemSafety(shrimp, "peanut"); !v.Safe || v.Guaranteed {
		t.Errorf("appears-safe item: %+v", v)
	}
}

func TestUnsafeConfirmation(t *testing.T) {
	if UnsafeConfirmation(&restaurant.SoupBase{ID: "S08"}) {
		t.Error("plain water flagged")
	}
	if !UnsafeConfirmation(&restaurant.SoupBase{ID: "S01", PreProcessed: true}) {
		t.Error("pre-processed base not flagged")
	}
}

func TestRemedyLookups(t *testing.T) {
	r, ok := LookupRemedy(restaurant.IncidentServiceDelay, SeverityMajor)
	if !ok || r.DiscountPct != 20 {
		t.Errorf("major delay remedy = %+v", r)
	}
	r, ok = LookupRemedy(restaurant.IncidentCelebrationFailure, SeverityMajor)
	if !ok || r.DiscountPct != 50 || !r.Escalate || r.MaxCompPct != 100 {
		t.Errorf("cake failure remedy = %+v", r)
	}
	if _, ok := LookupRemedy(restaurant.IncidentManagerRequest, SeverityMinor); ok {
		t.Error("manager_request has a table remedy")
	}
}

func TestDelaySeverity(t *testing.T) {
	cases := []struct {
		minutes  int
		occasion bool
		want     SeverityBucket
	}{
		{10, false, SeverityMinor},
		{20, false, SeverityModerate},
		{35, false, SeverityModerate},
		{30, true, SeverityMajor},
		{45, true, SeverityMajor},
	}
	for _, tc := range cases {
		if got := DelaySeverity(tc.minutes, tc.occasion); got != tc.want {
			t.Errorf("DelaySeverity(%d, %v) = %s, want %s", tc.minutes, tc.occasion, got, tc.want)
		}
	}
}

func TestDamageRemedy(t *testing.T) {
	minor := DamageRemedy(SeverityMinor, 120)
	if minor.DryCleaningUSD != 30 || minor.DiscountPct != 0 {
		t.Errorf("minor = %+v", minor)
	}
	underLimit := DamageRemedy(SeverityMajor, 75)
	if underLimit.DiscountPct != 100 {
		t.Errorf("major under limit = %+v", underLimit)
	}
	overLimit := DamageRemedy(SeverityMajor, 80.01)
	if overLimit.DiscountPct != 50 || !overLimit.Escalate {
		t.Errorf("major over limit = %+v", overLimit)
	}
}

func TestMustEscalate(t *testing.T) {
	if !MustEscalate(restaurant.IncidentSafety, 0, managerAuth) {
		t.Error("safety should always escalate")
	}
	if !MustEscalate(restaurant.IncidentReviewThreat, 0, serverAuth) {
		t.Error("review threat should always escalate")
	}
	if !MustEscalate(restaurant.IncidentServiceDelay, 20, serverAuth) {
		t.Error("20% remedy exceeds server ceiling")
	}
	if MustEscalate(restaurant.IncidentServiceDelay, 10, serverAuth) {
		t.Error("10% remedy is within server ceiling")
	}
	if MustEscalate(restaurant.IncidentQualityIssue, 100, managerAuth) {
		t.Error("manager never forced to escalate cost")
	}
}

func TestEscalationVocabulary(t *testing.T) {
	for _, a := range EscalationActions {
		if !ValidEscalationAction(a) {
			t.Errorf("vocabulary action %q rejected", a)
		}
	}
	if ValidEscalationAction("summon_lawyers") {
		t.Error("unknown action accepted")
	}
	if !ValidEscalationTarget("manager") || !ValidEscalationTarget("host") {
		t.Error("valid target rejected")
	}
	if ValidEscalationTarget("ceo") {
		t.Error("invalid target accepted")
	}
}

func TestCheckReservationSize(t *testing.T) {
	saturday := time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)
	mlkDay := time.Date(2026, 1, 19, 0, 0, 0, 0, time.UTC)

	if d := CheckReservationSize(saturday, 21); d.Allowed() {
		t.Error("21 on Saturday allowed")
	}
	if d := CheckReservationSize(saturday, 20); !d.Allowed() {
		t.Errorf("20 on Saturday denied: %s", d.Reason)
	}
	if d := CheckReservationSize(mlkDay, 25); d.Allowed() {
		t.Error("25 on MLK Day allowed")
	}
	if d := CheckReservationSize(wednesday, 25); !d.Allowed() {
		t.Errorf("25 on Wednesday denied: %s", d.Reason)
	}
	if d := CheckReservationSize(wednesday, 0); d.Allowed() {
		t.Error("zero party size allowed")
	}
}

func TestCheckSeating(t *testing.T) {
	tbl := &restaurant.Table{ID: "A1", StdCapacity: 4, StdExpansion: 5, MaxSqueeze: 6, Status: restaurant.TableAvailable}

	if d := CheckSeating(tbl, 5, false); !d.Allowed() {
		t.Errorf("expansion seating denied: %s", d.Reason)
	}
	if d := CheckSeating(tbl, 6, false); d.Allowed() || d.Code != CodePolicyDenied {
		t.Errorf("squeeze without request: %+v", d)
	}
	if d := CheckSeating(tbl, 6, true); !d.Allowed() {
		t.Errorf("requested squeeze denied: %s", d.Reason)
	}
	if d := CheckSeating(tbl, 7, true); d.Allowed() || d.Code != CodePreconditionFailed {
		t.Errorf("over max squeeze: %+v", d)
	}

	tbl.Status = restaurant.TableOccupied
	if d := CheckSeating(tbl, 2, false); d.Allowed() || d.Code != CodePreconditionFailed {
		t.Errorf("occupied table: %+v", d)
	}
}

func TestCheckLunchSpecial(t *testing.T) {
	weekdayNoon := time.Date(2026, 1, 14, 12, 0, 0, 0, time.UTC)
	weekdayEvening := time.Date(2026, 1, 14, 18, 0, 0, 0, time.UTC)
	saturdayNoon := time.Date(2026, 1, 17, 12, 0, 0, 0, time.UTC)
	holidayNoon := time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC)

	if st := CheckLunchSpecial(weekdayNoon); !st.Available {
		t.Errorf("weekday noon: %+v", st)
	}
	if st := CheckLunchSpecial(weekdayEvening); st.Available {
		t.Error("available at 6 PM")
	}
	if st := CheckLunchSpecial(saturdayNoon); st.Available {
		t.Error("available on Saturday")
	}
	if st := CheckLunchSpecial(holidayNoon); st.Available {
		t.Error("available on MLK Day")
	}
}
