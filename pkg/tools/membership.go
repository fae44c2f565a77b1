package tools

func checkTableMembership(inv *Invocation) (map[string]any, *Error) {
	tableID, terr := inv.Args.OptString("table_id")
	if terr != nil {
		return nil, terr
	}
	phone, terr := inv.Args.OptString("phone")
	if terr != nil {
		return nil, terr
	}
	if tableID == "" && phone == "" {
		return nil, invalidArgf("either table_id or phone is required")
	}

	inv.Store.Flags.MembershipChecked = true

	if phone != "" {
		if c := inv.Store.CustomerByPhone(phone); c != nil {
			return map[string]any{
				"has_member":  true,
				"customer_id": c.ID,
				"tier":        string(c.Tier),
				"points":      c.Points,
			}, nil
		}
		return map[string]any{"has_member": false}, nil
	}

	if inv.Store.Table(tableID) == nil {
		return nil, notFoundf("table %s not found", tableID)
	}
	for i := range inv.Store.Customers {
		c := &inv.Store.Customers[i]
		if c.TableID == tableID {
			return map[string]any{
				"has_member":  true,
				"customer_id": c.ID,
				"tier":        string(c.Tier),
				"points":      c.Points,
			}, nil
		}
	}
	for i := range inv.Store.Orders {
		o := &inv.Store.Orders[i]
		if o.TableID == tableID && o.HasMember && o.CustomerID != "" {
			if c := inv.Store.Customer(o.CustomerID); c != nil {
				return map[string]any{
					"has_member":  true,
					"customer_id": c.ID,
					"tier":        string(c.Tier),
					"points":      c.Points,
				}, nil
			}
		}
	}
	return map[string]any{"has_member": false}, nil
}

func offerMembershipSignup(inv *Invocation) (map[string]any, *Error) {
	flags := &inv.Store.Flags
	flags.MembershipOffered = true

	payload := map[string]any{
		"offered":       true,
		"signup_bonus":  "100 welcome points",
		"customer_mood": flags.CustomerMood,
	}
	if flags.CustomerMood == "upset" || flags.CustomerMood == "angry" {
		payload["caution"] = "resolve the customer's issue before promoting membership"
	}
	return payload, nil
}
