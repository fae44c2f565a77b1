package tools

import (
	"strings"

	"github.com/binleiwang/tau2-bench/pkg/policy"
	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

// Voucher point costs for the loyalty program.
const (
	voucher10Points = 200
	voucher20Points = 400
)

func redeemSecretCode(inv *Invocation) (map[string]any, *Error) {
	code, terr := inv.Args.String("code")
	if terr != nil {
		return nil, terr
	}
	tableID, terr := inv.Args.String("table_id")
	if terr != nil {
		return nil, terr
	}
	if inv.Store.Table(tableID) == nil {
		return nil, notFoundf("table %s not found", tableID)
	}

	var match *restaurant.SecretCode
	for i := range inv.Store.SecretCodes {
		if strings.EqualFold(inv.Store.SecretCodes[i].Code, code) {
			match = &inv.Store.SecretCodes[i]
			break
		}
	}
	if match == nil {
		return nil, notFoundf("that phrase is not a recognized secret code")
	}

	if inv.Store.SecretCodeUsed(tableID) {
		return nil, preconditionf("this table has already redeemed a secret code this visit")
	}
	proposed := restaurant.NewOffer(restaurant.OfferSecretCode, 0, match.RewardItem)
	if d := policy.CheckStacking(inv.Store.TableOffers(tableID), proposed); !d.Allowed() {
		return nil, fromDecision(d)
	}

	inv.Store.AddOffer(tableID, proposed)
	// Attach the free item to the table's open bill when there is one.
	for i := range inv.Store.Orders {
		order := &inv.Store.Orders[i]
		if order.TableID != tableID || order.Status == restaurant.OrderComped {
			continue
		}
		order.Items = append(order.Items, restaurant.OrderItem{
			ItemID:   match.RewardItemID,
			Name:     match.RewardItem,
			Quantity: 1,
			Price:    0,
			Notes:    "secret code reward",
		})
		order.SecretCodeUsed = match.Code
	}
	inv.Store.Flags.CompItemsGiven = append(inv.Store.Flags.CompItemsGiven, match.RewardItemID)

	return map[string]any{
		"table_id":    tableID,
		"reward_item": match.RewardItem,
		"reward_id":   match.RewardItemID,
	}, nil
}

func processPointsRedemption(inv *Invocation) (map[string]any, *Error) {
	customerID, terr := inv.Args.String("customer_id")
	if terr != nil {
		return nil, terr
	}
	reward, terr := inv.Args.String("reward")
	if terr != nil {
		return nil, terr
	}
	tableID, terr := inv.Args.OptString("table_id")
	if terr != nil {
		return nil, terr
	}

	customer := inv.Store.Customer(customerID)
	if customer == nil {
		return nil, notFoundf("customer %s not found", customerID)
	}

	var (
		cost       int
		rewardName string
		item       *restaurant.InventoryItem
	)
	switch reward {
	case "voucher_10":
		cost, rewardName = voucher10Points, "$10 voucher"
	case "voucher_20":
		cost, rewardName = voucher20Points, "$20 voucher"
	default:
		item = inv.Store.InventoryItem(reward)
		if item == nil {
			return nil, notFoundf("no redeemable reward matching %q", reward)
		}
		if item.PointsRequired <= 0 {
			return nil, deniedf("%s is not redeemable with points", item.Name)
		}
		if item.Stock <= 0 {
			return nil, preconditionf("%s is out of stock", item.Name)
		}
		cost, rewardName = item.PointsRequired, item.Name
	}

	if customer.Points < cost {
		return nil, preconditionf(
			"customer %s has %d points; %s requires %d", customerID, customer.Points, rewardName, cost)
	}

	// Points deduction and reward grant commit together.
	customer.Points -= cost
	if item != nil {
		item.Stock--
	}
	if tableID != "" && inv.Store.Table(tableID) != nil {
		inv.Store.AddOffer(tableID, restaurant.NewOffer(restaurant.OfferPointsRedemption, float64(cost), rewardName))
	}

	return map[string]any{
		"customer_id":      customerID,
		"reward":           rewardName,
		"points_spent":     cost,
		"points_remaining": customer.Points,
	}, nil
}

func verifyPromotionClaim(inv *Invocation) (map[string]any, *Error) {
	claim := inv.Store.SMSClaim
	if claim == nil {
		return nil, notFoundf("no promotion claim on file for this table")
	}

	payload := map[string]any{
		"claim_date":     claim.Date,
		"claim_content":  claim.Content,
		"discount_value": claim.DiscountValue,
		"company_error":  claim.CompanyError(),
	}
	if claim.CompanyError() {
		payload["missing_terms"] = claim.MissingTerms
		payload["honor_required"] = true
		payload["guidance"] = "the restaurant's own message omitted the terms; honor the claimed discount"
	} else {
		payload["honor_required"] = false
		payload["guidance"] = "the message stated the full terms; apply the promotion only if its conditions are met"
	}

	// Surface the matching catalog promotion when one exists.
	for i := range inv.Store.Promotions {
		p := &inv.Store.Promotions[i]
		if p.DiscountValue == claim.DiscountValue {
			payload["promotion_id"] = p.ID
			payload["conditions"] = p.Conditions
			payload["weekday_only"] = p.WeekdayOnly
			break
		}
	}
	return payload, nil
}
