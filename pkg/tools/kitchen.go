package tools

import (
	"strings"

	"github.com/binleiwang/tau2-bench/pkg/policy"
	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

// internalIssuePhrases are the operational details that must never reach a
// customer verbatim. Messages containing one are recorded as having exposed
// an internal issue.
var internalIssuePhrases = []string{
	"short-staffed",
	"short staffed",
	"understaffed",
	"staff shortage",
	"called in sick",
	"new cook",
	"chef quit",
	"chef walked out",
	"kitchen is backed up",
	"kitchen is a mess",
	"equipment broke",
	"equipment failure",
	"machine is broken",
	"we messed up",
	"lost your order",
}

func exposesInternalIssue(message string) bool {
	m := strings.ToLower(message)
	for _, phrase := range internalIssuePhrases {
		if strings.Contains(m, phrase) {
			return true
		}
	}
	return false
}

func checkKitchenStatus(inv *Invocation) (map[string]any, *Error) {
	k := &inv.Store.Kitchen
	k.ChecksMade++
	inv.Store.Flags.KitchenStatusChecked = true

	payload := map[string]any{
		"status":         k.Status,
		"estimated_wait": k.EstimatedWait,
	}
	if k.Response != "" {
		payload["kitchen_response"] = k.Response
	}
	if k.CanFulfill != nil {
		payload["can_fulfill_special_requests"] = *k.CanFulfill
	}
	return payload, nil
}

func requestSpecialPreparation(inv *Invocation) (map[string]any, *Error) {
	request, terr := inv.Args.String("request")
	if terr != nil {
		return nil, terr
	}
	if !inv.Store.Flags.KitchenStatusChecked {
		return nil, preconditionf("check the kitchen status before promising special preparation")
	}

	inv.Store.Flags.SpecialRequestAttempted = true

	fulfilled := true
	if inv.Store.Kitchen.CanFulfill != nil {
		fulfilled = *inv.Store.Kitchen.CanFulfill
	}
	payload := map[string]any{
		"request":   request,
		"fulfilled": fulfilled,
	}
	if !fulfilled {
		payload["kitchen_response"] = inv.Store.Kitchen.Response
		payload["guidance"] = "offer an alternative solution rather than promising the request"
	}
	return payload, nil
}

func expediteOrder(inv *Invocation) (map[string]any, *Error) {
	order, terr := resolveOrder(inv)
	if terr != nil {
		return nil, terr
	}
	switch order.Status {
	case restaurant.OrderServed, restaurant.OrderComped:
		return nil, preconditionf("order %s is %s and cannot be expedited", order.ID, order.Status)
	}

	order.Status = restaurant.OrderInKitchen
	inv.Store.Flags.OrderExpedited = true

	wait := inv.Store.Kitchen.EstimatedWait
	if wait > 10 {
		wait = 10
	}
	return map[string]any{
		"order_id":       order.ID,
		"status":         string(order.Status),
		"estimated_wait": wait,
	}, nil
}

func remakeDish(inv *Invocation) (map[string]any, *Error) {
	ref, terr := inv.Args.String("item")
	if terr != nil {
		return nil, terr
	}
	order, terr := resolveOrder(inv)
	if terr != nil {
		return nil, terr
	}

	found := false
	lower := strings.ToLower(ref)
	for _, it := range order.Items {
		if strings.ToLower(it.ItemID) == lower || strings.Contains(strings.ToLower(it.Name), lower) {
			found = true
			break
		}
	}
	if !found {
		return nil, notFoundf("order %s has no item matching %q", order.ID, ref)
	}

	inv.Store.Flags.DishRemade = true
	return map[string]any{
		"order_id": order.ID,
		"item":     ref,
		"remade":   true,
	}, nil
}

func communicateDelayToCustomer(inv *Invocation) (map[string]any, *Error) {
	message, terr := inv.Args.String("message")
	if terr != nil {
		return nil, terr
	}
	tone, terr := inv.Args.OptString("tone")
	if terr != nil {
		return nil, terr
	}

	exposed := exposesInternalIssue(message)
	flags := &inv.Store.Flags
	flags.Communications = append(flags.Communications, restaurant.Communication{
		Message:         message,
		Tone:            tone,
		ExposedInternal: exposed,
	})
	if exposed {
		flags.InternalIssueExposed = true
	}

	return map[string]any{
		"delivered":      true,
		"estimated_wait": inv.Store.Kitchen.EstimatedWait,
	}, nil
}

func offerAlternativeSolution(inv *Invocation) (map[string]any, *Error) {
	original, terr := inv.Args.String("original_request")
	if terr != nil {
		return nil, terr
	}
	alternative, terr := inv.Args.String("alternative")
	if terr != nil {
		return nil, terr
	}
	compensation, terr := inv.Args.OptString("compensation")
	if terr != nil {
		return nil, terr
	}

	flags := &inv.Store.Flags
	flags.AlternativeOffered = true
	flags.Alternatives = append(flags.Alternatives, restaurant.Alternative{
		Original:     original,
		Offered:      alternative,
		Compensation: compensation,
	})

	return map[string]any{
		"original_request": original,
		"alternative":      alternative,
	}, nil
}

// goodwillOffer implements the shared body of the complimentary drink and
// appetizer tools. Goodwill items stack with everything, but their value
// still counts against the comp ceiling.
func goodwillOffer(inv *Invocation, kind, defaultItem string) (map[string]any, *Error) {
	ref, terr := inv.Args.OptString("item")
	if terr != nil {
		return nil, terr
	}
	reason, terr := inv.Args.OptString("reason")
	if terr != nil {
		return nil, terr
	}
	if ref == "" {
		ref = defaultItem
	}

	var (
		name  string
		id    string
		price float64
	)
	if item := inv.Store.MenuItem(ref); item != nil {
		name, id, price = item.Name, item.ID, item.Price
	} else {
		// House items like tea are not on the paid menu.
		name, id = ref, ""
	}

	if price > 0 {
		auth, ok := inv.Store.CurrentAuthority()
		if !ok {
			return nil, preconditionf("no authority profile configured for role %s", inv.Store.Role)
		}
		if d := policy.CheckAuthority(auth, policy.BenefitCompValue, price); !d.Allowed() {
			return nil, fromDecision(d)
		}
	}

	flags := &inv.Store.Flags
	flags.ComplimentaryOffered = true
	flags.ComplimentaryItems = append(flags.ComplimentaryItems, restaurant.GoodwillItem{
		Kind:   kind,
		Item:   name,
		Reason: reason,
	})
	if order := inv.Store.CurrentOrder(); order != nil {
		order.Items = append(order.Items, restaurant.OrderItem{
			ItemID:   id,
			Name:     name,
			Quantity: 1,
			Price:    0,
			Notes:    "complimentary " + kind,
		})
		inv.Store.AddOffer(order.TableID, restaurant.NewOffer(restaurant.OfferGoodwillItem, price, name))
	}

	return map[string]any{
		"kind": kind,
		"item": name,
	}, nil
}

func offerComplimentaryDrink(inv *Invocation) (map[string]any, *Error) {
	return goodwillOffer(inv, "drink", "Yakult")
}

func offerComplimentaryAppetizer(inv *Invocation) (map[string]any, *Error) {
	return goodwillOffer(inv, "appetizer", "Fried Steamed Buns")
}
