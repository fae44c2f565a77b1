package tools

import (
	"strings"

	"github.com/binleiwang/tau2-bench/pkg/policy"
	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

// findTableFor returns the smallest available table that fits the party
// within its expansion tier.
func findTableFor(s *restaurant.Store, partySize int) *restaurant.Table {
	var best *restaurant.Table
	for i := range s.Tables {
		t := &s.Tables[i]
		if t.Status != restaurant.TableAvailable || partySize > t.StdExpansion {
			continue
		}
		if best == nil || t.StdExpansion < best.StdExpansion {
			best = t
		}
	}
	return best
}

func createReservation(inv *Invocation) (map[string]any, *Error) {
	name, terr := inv.Args.String("customer_name")
	if terr != nil {
		return nil, terr
	}
	phone, terr := inv.Args.String("phone")
	if terr != nil {
		return nil, terr
	}
	partySize, terr := inv.Args.Int("party_size")
	if terr != nil {
		return nil, terr
	}
	dateStr, terr := inv.Args.String("date")
	if terr != nil {
		return nil, terr
	}
	timeStr, terr := inv.Args.String("time")
	if terr != nil {
		return nil, terr
	}
	occasion, terr := inv.Args.OptString("special_occasion")
	if terr != nil {
		return nil, terr
	}
	numKids, terr := inv.Args.OptInt("num_kids", 0)
	if terr != nil {
		return nil, terr
	}
	hasCake, terr := inv.Args.OptBool("has_cake", false)
	if terr != nil {
		return nil, terr
	}
	cakeType, terr := inv.Args.OptString("cake_type")
	if terr != nil {
		return nil, terr
	}
	notes, terr := inv.Args.OptString("notes")
	if terr != nil {
		return nil, terr
	}
	hold, terr := inv.Args.OptBool("hold", false)
	if terr != nil {
		return nil, terr
	}

	date, err := restaurant.ParseDate(dateStr)
	if err != nil {
		return nil, invalidArgf("%v", err)
	}
	if _, err := restaurant.ParseDateTime(dateStr, timeStr); err != nil {
		return nil, invalidArgf("%v", err)
	}
	if hasCake && cakeType != "" && cakeType != "regular" && cakeType != "ice_cream" {
		return nil, invalidArgf("cake_type must be \"regular\" or \"ice_cream\"")
	}

	if d := policy.CheckReservationSize(date, partySize); !d.Allowed() {
		return nil, fromDecision(d)
	}

	table := findTableFor(inv.Store, partySize)
	if table == nil {
		return nil, preconditionf(
			"no table can seat a party of %d at the requested time; offer the waitlist or an alternative time",
			partySize)
	}

	status := restaurant.ReservationPending
	if hold {
		status = restaurant.ReservationHeld
	}
	res := restaurant.Reservation{
		ID:              deterministicID("RES", name, phone, dateStr, timeStr),
		CustomerName:    name,
		Phone:           phone,
		PartySize:       partySize,
		Date:            dateStr,
		Time:            timeStr,
		TableID:         table.ID,
		Status:          status,
		SpecialOccasion: occasion,
		NumKids:         numKids,
		Notes:           notes,
		HasCake:         hasCake,
		CakeType:        cakeType,
	}
	inv.Store.Reservations = append(inv.Store.Reservations, res)
	table.Status = restaurant.TableReserved
	table.ReservationID = res.ID
	inv.Store.Flags.ReservationConfirmed = true

	return reservationPayload(&res), nil
}

func modifyReservation(inv *Invocation) (map[string]any, *Error) {
	id, terr := inv.Args.String("reservation_id")
	if terr != nil {
		return nil, terr
	}
	res := inv.Store.Reservation(id)
	if res == nil {
		return nil, notFoundf("reservation %s not found", id)
	}
	switch res.Status {
	case restaurant.ReservationReleased, restaurant.ReservationNoShow:
		return nil, preconditionf("reservation %s is %s and can no longer be modified", id, res.Status)
	case restaurant.ReservationSeated:
		return nil, preconditionf("reservation %s is already seated", id)
	}

	// Stage the changes, validate, then commit.
	staged := *res
	if v, terr := inv.Args.OptString("date"); terr != nil {
		return nil, terr
	} else if v != "" {
		staged.Date = v
	}
	if v, terr := inv.Args.OptString("time"); terr != nil {
		return nil, terr
	} else if v != "" {
		staged.Time = v
	}
	if _, ok := inv.Args["party_size"]; ok {
		v, terr := inv.Args.Int("party_size")
		if terr != nil {
			return nil, terr
		}
		staged.PartySize = v
	}
	if v, terr := inv.Args.OptString("special_occasion"); terr != nil {
		return nil, terr
	} else if v != "" {
		staged.SpecialOccasion = v
	}
	if v, terr := inv.Args.OptString("notes"); terr != nil {
		return nil, terr
	} else if v != "" {
		staged.Notes = v
	}

	date, err := restaurant.ParseDate(staged.Date)
	if err != nil {
		return nil, invalidArgf("%v", err)
	}
	if _, err := restaurant.ParseDateTime(staged.Date, staged.Time); err != nil {
		return nil, invalidArgf("%v", err)
	}
	if d := policy.CheckReservationSize(date, staged.PartySize); !d.Allowed() {
		return nil, fromDecision(d)
	}

	// A larger party may need a different table.
	table := inv.Store.Table(staged.TableID)
	if table == nil || staged.PartySize > table.StdExpansion {
		replacement := findTableFor(inv.Store, staged.PartySize)
		if replacement == nil {
			return nil, preconditionf(
				"no table can seat the modified party of %d; the reservation is unchanged",
				staged.PartySize)
		}
		if table != nil && table.ReservationID == res.ID {
			table.Status = restaurant.TableAvailable
			table.ReservationID = ""
		}
		replacement.Status = restaurant.TableReserved
		replacement.ReservationID = res.ID
		staged.TableID = replacement.ID
		inv.Store.Flags.TableChanged = true
	}

	*res = staged
	return reservationPayload(res), nil
}

func seatParty(inv *Invocation) (map[string]any, *Error) {
	tableID, terr := inv.Args.String("table_id")
	if terr != nil {
		return nil, terr
	}
	partySize, terr := inv.Args.Int("party_size")
	if terr != nil {
		return nil, terr
	}
	squeeze, terr := inv.Args.OptBool("squeeze_requested", false)
	if terr != nil {
		return nil, terr
	}
	resID, terr := inv.Args.OptString("reservation_id")
	if terr != nil {
		return nil, terr
	}
	name, terr := inv.Args.OptString("customer_name")
	if terr != nil {
		return nil, terr
	}

	table := inv.Store.Table(tableID)
	if table == nil {
		return nil, notFoundf("table %s not found", tableID)
	}

	var res *restaurant.Reservation
	if resID != "" {
		res = inv.Store.Reservation(resID)
		if res == nil {
			return nil, notFoundf("reservation %s not found", resID)
		}
		switch res.Status {
		case restaurant.ReservationReleased, restaurant.ReservationNoShow:
			return nil, preconditionf("reservation %s is %s; the party must rejoin via the waitlist", resID, res.Status)
		case restaurant.ReservationSeated:
			return nil, preconditionf("reservation %s is already seated", resID)
		}
	} else if len(inv.Store.Waitlist) > 0 {
		// Walk-ins do not jump the waitlist: only the party at its head may
		// be seated without a reservation.
		head := inv.Store.Waitlist[0]
		if name == "" || !strings.EqualFold(name, head.Name) {
			return nil, deniedf(
				"the waitlist is not empty; seat %s (party of %d) first or take this party's name onto the waitlist",
				head.Name, head.PartySize)
		}
	}

	// Seating a party at its own reserved table is not blocked by the table
	// showing reserved. The check runs on a staged copy so a denial leaves
	// the table, and its reservation binding, untouched.
	staged := *table
	if res != nil && staged.Status == restaurant.TableReserved && staged.ReservationID == res.ID {
		staged.Status = restaurant.TableAvailable
	}
	if d := policy.CheckSeating(&staged, partySize, squeeze); !d.Allowed() {
		return nil, fromDecision(d)
	}

	table.Status = restaurant.TableOccupied
	table.PartySize = partySize
	switch {
	case partySize <= table.StdCapacity:
		table.Tier = restaurant.TierStandard
	case partySize <= table.StdExpansion:
		table.Tier = restaurant.TierExpansion
	default:
		table.Tier = restaurant.TierSqueeze
	}
	if res != nil {
		res.Status = restaurant.ReservationSeated
		res.TableID = table.ID
		table.ReservationID = res.ID
	} else if len(inv.Store.Waitlist) > 0 {
		inv.Store.Waitlist = inv.Store.Waitlist[1:]
	}

	return map[string]any{
		"table_id":   table.ID,
		"party_size": partySize,
		"tier":       string(table.Tier),
		"capacity":   table.Capacity(),
	}, nil
}

func suggestWaitlist(inv *Invocation) (map[string]any, *Error) {
	name, terr := inv.Args.String("customer_name")
	if terr != nil {
		return nil, terr
	}
	phone, terr := inv.Args.OptString("phone")
	if terr != nil {
		return nil, terr
	}
	partySize, terr := inv.Args.Int("party_size")
	if terr != nil {
		return nil, terr
	}
	if partySize <= 0 {
		return nil, invalidArgf("party_size must be positive")
	}

	inv.Store.Waitlist = append(inv.Store.Waitlist, restaurant.WaitlistEntry{
		Name:      name,
		Phone:     phone,
		PartySize: partySize,
	})
	inv.Store.Flags.WaitlistSuggested = true

	return map[string]any{
		"position":   len(inv.Store.Waitlist),
		"name":       name,
		"party_size": partySize,
	}, nil
}

func offerAlternativeTime(inv *Invocation) (map[string]any, *Error) {
	requested, terr := inv.Args.String("requested_time")
	if terr != nil {
		return nil, terr
	}
	alternatives, terr := inv.Args.StringList("alternative_times")
	if terr != nil {
		return nil, terr
	}
	if len(alternatives) == 0 {
		return nil, invalidArgf("alternative_times must not be empty")
	}

	inv.Store.Flags.AlternativeTimeOffered = true
	return map[string]any{
		"requested_time":    requested,
		"alternative_times": alternatives,
	}, nil
}
