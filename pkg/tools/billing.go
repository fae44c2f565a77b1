package tools

import (
	"fmt"
	"math"

	"github.com/binleiwang/tau2-bench/pkg/policy"
	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

const (
	// taxRate is the Berkeley sales tax applied to every bill.
	taxRate = 0.0875

	// sauceBarPerPerson is the flat per-person sauce bar charge.
	sauceBarPerPerson = 2.0
)

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// resolveOrder returns the order named by order_id, or the current bill when
// the argument is omitted.
func resolveOrder(inv *Invocation) (*restaurant.Order, *Error) {
	id, terr := inv.Args.OptString("order_id")
	if terr != nil {
		return nil, terr
	}
	if id != "" {
		order := inv.Store.Order(id)
		if order == nil {
			return nil, notFoundf("order %s not found", id)
		}
		return order, nil
	}
	order := inv.Store.CurrentOrder()
	if order == nil {
		return nil, preconditionf("no open order for this visit")
	}
	return order, nil
}

// recomputeTotals recalculates tax and total after a discount change. The
// discount applies to the pre-tax amount.
func recomputeTotals(order *restaurant.Order) {
	pretax := order.Subtotal + order.SauceBarCharge - order.DiscountAmount
	if pretax < 0 {
		pretax = 0
	}
	order.Tax = roundCents(pretax * taxRate)
	order.Total = roundCents(pretax + order.Tax)
}

func applyDiscount(inv *Invocation) (map[string]any, *Error) {
	discountType, terr := inv.Args.String("discount_type")
	if terr != nil {
		return nil, terr
	}
	value, terr := inv.Args.Float("value")
	if terr != nil {
		return nil, terr
	}
	reason, terr := inv.Args.OptString("reason")
	if terr != nil {
		return nil, terr
	}
	order, terr := resolveOrder(inv)
	if terr != nil {
		return nil, terr
	}
	auth, ok := inv.Store.CurrentAuthority()
	if !ok {
		return nil, preconditionf("no authority profile configured for role %s", inv.Store.Role)
	}

	pretax := order.Subtotal + order.SauceBarCharge

	var (
		kind   restaurant.OfferKind
		amount float64 // dollars off the pre-tax bill
		pct    float64
	)
	switch discountType {
	case "percentage":
		if value <= 0 || value > 100 {
			return nil, invalidArgf("percentage discount value must be in (0, 100]")
		}
		if d := policy.CheckAuthority(auth, policy.BenefitDiscountPct, value); !d.Allowed() {
			return nil, fromDecision(d)
		}
		kind = restaurant.OfferDiscount
		pct = value
		amount = roundCents(pretax * value / 100)
	case "fixed":
		if value <= 0 {
			return nil, invalidArgf("fixed discount value must be positive")
		}
		if d := policy.CheckAuthority(auth, policy.BenefitCompValue, value); !d.Allowed() {
			return nil, fromDecision(d)
		}
		kind = restaurant.OfferDiscount
		amount = roundCents(value)
	case "round_off":
		// Value is the target pre-tax amount to round the bill down to.
		if value < 0 || value >= pretax {
			return nil, invalidArgf("round_off target must be below the current pre-tax amount of %.2f", pretax)
		}
		off := roundCents(pretax - value)
		if d := policy.CheckAuthority(auth, policy.BenefitRoundOff, off); !d.Allowed() {
			return nil, fromDecision(d)
		}
		kind = restaurant.OfferRoundOff
		amount = off
	default:
		return nil, invalidArgf("discount_type must be \"percentage\", \"fixed\", or \"round_off\"")
	}

	proposed := restaurant.NewOffer(kind, amount, reason)
	if d := policy.CheckStacking(inv.Store.TableOffers(order.TableID), proposed); !d.Allowed() {
		return nil, fromDecision(d)
	}

	order.DiscountAmount = amount
	if pct > 0 {
		order.DiscountApplied = fmt.Sprintf("%.0f%% %s", pct, discountType)
		inv.Store.Flags.DiscountsGiven = append(inv.Store.Flags.DiscountsGiven, pct)
	} else {
		order.DiscountApplied = fmt.Sprintf("$%.2f %s", amount, discountType)
		inv.Store.Flags.DiscountsGiven = append(inv.Store.Flags.DiscountsGiven, roundCents(amount/pretax*100))
	}
	recomputeTotals(order)
	inv.Store.AddOffer(order.TableID, proposed)
	inv.Store.Flags.CompensationOffered = true

	return map[string]any{
		"order_id":        order.ID,
		"discount_type":   discountType,
		"discount_amount": order.DiscountAmount,
		"new_total":       order.Total,
	}, nil
}

func addComplimentaryItem(inv *Invocation) (map[string]any, *Error) {
	ref, terr := inv.Args.String("item")
	if terr != nil {
		return nil, terr
	}
	reason, terr := inv.Args.OptString("reason")
	if terr != nil {
		return nil, terr
	}
	order, terr := resolveOrder(inv)
	if terr != nil {
		return nil, terr
	}
	item := inv.Store.MenuItem(ref)
	if item == nil {
		return nil, notFoundf("no menu item matching %q", ref)
	}
	auth, ok := inv.Store.CurrentAuthority()
	if !ok {
		return nil, preconditionf("no authority profile configured for role %s", inv.Store.Role)
	}

	if d := policy.CheckAuthority(auth, policy.BenefitCompValue, item.Price); !d.Allowed() {
		return nil, fromDecision(d)
	}
	proposed := restaurant.NewOffer(restaurant.OfferCompItem, item.Price, item.Name)
	if d := policy.CheckStacking(inv.Store.TableOffers(order.TableID), proposed); !d.Allowed() {
		return nil, fromDecision(d)
	}

	order.Items = append(order.Items, restaurant.OrderItem{
		ItemID:   item.ID,
		Name:     item.Name,
		Quantity: 1,
		Price:    0,
		Notes:    "complimentary: " + reason,
	})
	inv.Store.AddOffer(order.TableID, proposed)
	inv.Store.Flags.CompItemsGiven = append(inv.Store.Flags.CompItemsGiven, item.ID)
	inv.Store.Flags.CompensationOffered = true

	return map[string]any{
		"order_id":   order.ID,
		"item_id":    item.ID,
		"item_name":  item.Name,
		"comp_value": item.Price,
	}, nil
}

func handleClothingDamage(inv *Invocation) (map[string]any, *Error) {
	severity, terr := inv.Args.String("severity")
	if terr != nil {
		return nil, terr
	}
	description, terr := inv.Args.OptString("description")
	if terr != nil {
		return nil, terr
	}
	if severity != string(policy.SeverityMinor) && severity != string(policy.SeverityMajor) {
		return nil, invalidArgf("severity must be \"minor\" or \"major\"")
	}
	order, terr := resolveOrder(inv)
	if terr != nil {
		return nil, terr
	}

	bucket := policy.SeverityBucket(severity)
	remedy := policy.DamageRemedy(bucket, order.Total)

	if remedy.Escalate && inv.Store.Role != restaurant.RoleManager {
		return nil, authorityf(
			"major clothing damage must be handled by a manager; escalate with the recommended remedy ($%.2f dry cleaning plus %d%% off)",
			remedy.DryCleaningUSD, remedy.DiscountPct)
	}

	compensation := fmt.Sprintf("$%.2f dry cleaning reimbursement", remedy.DryCleaningUSD)
	if remedy.DiscountPct > 0 {
		order.DiscountAmount = roundCents((order.Subtotal + order.SauceBarCharge) * float64(remedy.DiscountPct) / 100)
		order.DiscountApplied = fmt.Sprintf("%d%% clothing damage remedy", remedy.DiscountPct)
		recomputeTotals(order)
		if remedy.DiscountPct >= 100 {
			order.Status = restaurant.OrderComped
			compensation += ", full meal comp"
		} else {
			compensation += fmt.Sprintf(", %d%% off the bill", remedy.DiscountPct)
		}
		inv.Store.Flags.DiscountsGiven = append(inv.Store.Flags.DiscountsGiven, float64(remedy.DiscountPct))
	}

	incident := restaurant.Incident{
		ID:           deterministicID("INC", string(restaurant.IncidentPropertyDamage), severity, order.ID),
		OrderID:      order.ID,
		TableID:      order.TableID,
		Category:     restaurant.IncidentPropertyDamage,
		Severity:     severity,
		Description:  description,
		Compensation: compensation,
		Escalated:    remedy.Escalate,
		CreatedAt:    inv.Now.Format("2006-01-02 15:04"),
	}
	inv.Store.Incidents = append(inv.Store.Incidents, incident)
	inv.Store.Flags.CompensationOffered = true

	return map[string]any{
		"incident_id":  incident.ID,
		"severity":     severity,
		"compensation": compensation,
		"new_total":    order.Total,
	}, nil
}

// Compensation types that settle on a future visit rather than the current
// bill. Bill discounts go through apply_discount; free items now go through
// add_complimentary_item.
var futureCompensationTypes = map[string]bool{
	"voucher":              true,
	"priority_reservation": true,
	"points":               true,
}

func resolveWithCompensation(inv *Invocation) (map[string]any, *Error) {
	compType, terr := inv.Args.String("compensation_type")
	if terr != nil {
		return nil, terr
	}
	details, terr := inv.Args.String("compensation_details")
	if terr != nil {
		return nil, terr
	}
	if !futureCompensationTypes[compType] {
		return nil, invalidArgf(
			"compensation_type must be \"voucher\", \"priority_reservation\", or \"points\"; current-bill remedies use apply_discount or add_complimentary_item")
	}

	inv.Store.Flags.CompensationOffered = true
	inv.Store.Flags.CompItemsGiven = append(inv.Store.Flags.CompItemsGiven, compType+": "+details)

	return map[string]any{
		"compensation_type": compType,
		"details":           details,
	}, nil
}
