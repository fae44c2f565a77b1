package tools

import (
	"github.com/binleiwang/tau2-bench/pkg/policy"
	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

func getRestaurantInfo(inv *Invocation) (map[string]any, *Error) {
	info := inv.Store.Info
	return map[string]any{
		"name":                 info.Name,
		"location":             info.Location,
		"hours":                info.Hours,
		"sauce_bar_per_person": sauceBarPerPerson,
		"tax_rate":             taxRate,
		"peak_hours":           "Fri 6-9 PM, Sat 5-9 PM, Sun 5-8 PM",
		"currently_peak":       restaurant.IsPeakHours(inv.Now),
	}, nil
}

func getMenuDetails(inv *Invocation) (map[string]any, *Error) {
	ref, terr := inv.Args.OptString("item")
	if terr != nil {
		return nil, terr
	}
	if ref == "" {
		soups := make([]map[string]any, 0, len(inv.Store.SoupBases))
		for i := range inv.Store.SoupBases {
			soups = append(soups, soupBasePayload(&inv.Store.SoupBases[i]))
		}
		items := make([]map[string]any, 0, len(inv.Store.MenuItems))
		for i := range inv.Store.MenuItems {
			items = append(items, menuItemPayload(&inv.Store.MenuItems[i]))
		}
		return map[string]any{"soup_bases": soups, "items": items}, nil
	}
	if sb := inv.Store.SoupBase(ref); sb != nil {
		return map[string]any{"soup_base": soupBasePayload(sb)}, nil
	}
	if it := inv.Store.MenuItem(ref); it != nil {
		return map[string]any{"item": menuItemPayload(it)}, nil
	}
	return nil, notFoundf("no menu item or soup base matching %q", ref)
}

func soupBasePayload(sb *restaurant.SoupBase) map[string]any {
	return map[string]any{
		"id":          sb.ID,
		"name":        sb.Name,
		"spicy_level": sb.SpicyLevel,
		"allergens":   sb.Allergens,
		"prices":      sb.Prices,
	}
}

func menuItemPayload(it *restaurant.MenuItem) map[string]any {
	return map[string]any{
		"id":        it.ID,
		"name":      it.Name,
		"category":  it.Category,
		"price":     it.Price,
		"allergens": it.Allergens,
	}
}

func checkTableAvailability(inv *Invocation) (map[string]any, *Error) {
	partySize, terr := inv.Args.Int("party_size")
	if terr != nil {
		return nil, terr
	}
	if partySize <= 0 {
		return nil, invalidArgf("party_size must be positive")
	}

	date := inv.Store.Today()
	if ds, terr := inv.Args.OptString("date"); terr != nil {
		return nil, terr
	} else if ds != "" {
		parsed, err := restaurant.ParseDate(ds)
		if err != nil {
			return nil, invalidArgf("%v", err)
		}
		date = parsed
	}

	inv.Store.Flags.AvailabilityChecked = true

	var fits, squeezeOnly []string
	for i := range inv.Store.Tables {
		t := &inv.Store.Tables[i]
		if t.Status != restaurant.TableAvailable {
			continue
		}
		switch {
		case partySize <= t.StdExpansion:
			fits = append(fits, t.ID)
		case partySize <= t.MaxSqueeze:
			squeezeOnly = append(squeezeOnly, t.ID)
		}
	}

	payload := map[string]any{
		"party_size":          partySize,
		"date":                date.Format("2006-01-02"),
		"available_tables":    fits,
		"squeeze_only_tables": squeezeOnly,
		"is_weekend":          restaurant.IsWeekend(date),
		"is_federal_holiday":  restaurant.IsFederalHoliday(date),
	}
	if d := policy.CheckReservationSize(date, partySize); !d.Allowed() {
		payload["large_party_restricted"] = true
		payload["restriction"] = d.Reason
	}
	return payload, nil
}

func getCustomerProfile(inv *Invocation) (map[string]any, *Error) {
	id, terr := inv.Args.OptString("customer_id")
	if terr != nil {
		return nil, terr
	}
	phone, terr := inv.Args.OptString("phone")
	if terr != nil {
		return nil, terr
	}
	if id == "" && phone == "" {
		return nil, invalidArgf("either customer_id or phone is required")
	}

	var c *restaurant.Customer
	if id != "" {
		c = inv.Store.Customer(id)
	} else {
		c = inv.Store.CustomerByPhone(phone)
	}
	if c == nil {
		return nil, notFoundf("no customer profile matching the given identifier")
	}

	inv.Store.Flags.MembershipChecked = true
	return map[string]any{
		"customer_id": c.ID,
		"name":        c.Name,
		"phone":       c.Phone,
		"tier":        string(c.Tier),
		"points":      c.Points,
		"visit_count": c.VisitCount,
		"birth_month": c.BirthMonth,
	}, nil
}

func checkLunchSpecialAvailability(inv *Invocation) (map[string]any, *Error) {
	st := policy.CheckLunchSpecial(inv.Now)
	payload := map[string]any{
		"available":  st.Available,
		"is_weekday": st.IsWeekday,
		"is_holiday": st.IsHoliday,
		"before_5pm": st.BeforeFive,
	}
	if !st.Available {
		payload["reason"] = st.Reason
	}
	if ls := inv.Store.LunchSpecial; ls != nil {
		payload["price"] = ls.Price
		payload["terms"] = ls.Availability
	}
	return payload, nil
}

func checkItemInventory(inv *Invocation) (map[string]any, *Error) {
	ref, terr := inv.Args.String("item")
	if terr != nil {
		return nil, terr
	}
	it := inv.Store.InventoryItem(ref)
	if it == nil {
		return nil, notFoundf("no inventory item matching %q", ref)
	}
	return map[string]any{
		"item_id":         it.ID,
		"name":            it.Name,
		"type":            it.Type,
		"stock":           it.Stock,
		"in_stock":        it.Stock > 0,
		"points_required": it.PointsRequired,
	}, nil
}

func getReservationDetails(inv *Invocation) (map[string]any, *Error) {
	id, terr := inv.Args.String("reservation_id")
	if terr != nil {
		return nil, terr
	}
	res := inv.Store.Reservation(id)
	if res == nil {
		return nil, notFoundf("reservation %s not found", id)
	}
	return reservationPayload(res), nil
}

func reservationPayload(res *restaurant.Reservation) map[string]any {
	return map[string]any{
		"reservation_id":   res.ID,
		"customer_name":    res.CustomerName,
		"phone":            res.Phone,
		"party_size":       res.PartySize,
		"date":             res.Date,
		"time":             res.Time,
		"table_id":         res.TableID,
		"status":           string(res.Status),
		"special_occasion": res.SpecialOccasion,
		"has_cake":         res.HasCake,
	}
}

func getOrderDetails(inv *Invocation) (map[string]any, *Error) {
	order, terr := resolveOrder(inv)
	if terr != nil {
		return nil, terr
	}
	items := make([]map[string]any, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, map[string]any{
			"item_id":  it.ItemID,
			"name":     it.Name,
			"quantity": it.Quantity,
			"price":    it.Price,
			"notes":    it.Notes,
		})
	}
	return map[string]any{
		"order_id":         order.ID,
		"table_id":         order.TableID,
		"status":           string(order.Status),
		"items":            items,
		"subtotal":         order.Subtotal,
		"sauce_bar_charge": order.SauceBarCharge,
		"discount_applied": order.DiscountApplied,
		"discount_amount":  order.DiscountAmount,
		"tax":              order.Tax,
		"total":            order.Total,
	}, nil
}

func getCurrentStaffAuthority(inv *Invocation) (map[string]any, *Error) {
	auth, ok := inv.Store.CurrentAuthority()
	if !ok {
		return nil, preconditionf("no authority profile configured for role %s", inv.Store.Role)
	}
	payload := map[string]any{
		"role":      string(auth.Role),
		"unlimited": auth.Unlimited,
	}
	if !auth.Unlimited {
		payload["max_discount_pct"] = auth.MaxDiscountPct
		payload["max_comp_value"] = auth.MaxCompValue
		payload["max_round_off"] = auth.MaxRoundOff
	}
	return payload, nil
}
