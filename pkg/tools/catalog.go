package tools

// catalog returns the full tool set. One entry per operation the driver may
// issue; descriptions double as the generated catalog listing.
func catalog() []Tool {
	return []Tool{
		// Lookups.
		{Name: "get_restaurant_info", Kind: KindRead, Description: "Restaurant name, location, hours, fixed charges", Handler: getRestaurantInfo},
		{Name: "get_menu_details", Kind: KindRead, Description: "Menu and soup base catalog, or one item by reference", Handler: getMenuDetails},
		{Name: "check_table_availability", Kind: KindRead, Description: "Tables that can seat a party on a date", Handler: checkTableAvailability},
		{Name: "get_customer_profile", Kind: KindRead, Description: "Member profile by customer ID or phone", Handler: getCustomerProfile},
		{Name: "check_allergy_safety", Kind: KindRead, Description: "Allergen lookup for a menu item or soup base", Handler: checkAllergySafety},
		{Name: "check_lunch_special_availability", Kind: KindRead, Description: "Lunch special calendar gating", Handler: checkLunchSpecialAvailability},
		{Name: "check_item_inventory", Kind: KindRead, Description: "Gift and merchandise stock levels", Handler: checkItemInventory},
		{Name: "get_reservation_details", Kind: KindRead, Description: "One reservation by ID", Handler: getReservationDetails},
		{Name: "get_order_details", Kind: KindRead, Description: "Order line items and totals", Handler: getOrderDetails},
		{Name: "get_current_staff_authority", Kind: KindRead, Description: "Acting role's benefit ceilings", Handler: getCurrentStaffAuthority},
		{Name: "check_kitchen_status", Kind: KindRead, Description: "Kitchen load, wait estimate, special-request capacity", Handler: checkKitchenStatus},
		{Name: "verify_promotion_claim", Kind: KindRead, Description: "Verify a claimed SMS promotion against the record", Handler: verifyPromotionClaim},
		{Name: "check_table_membership", Kind: KindRead, Description: "Whether a table has a member on it", Handler: checkTableMembership},

		// Reservations and seating.
		{Name: "create_reservation", Kind: KindWrite, Description: "Book a table for a future party", Handler: createReservation},
		{Name: "modify_reservation", Kind: KindWrite, Description: "Change a reservation's time, size, or details", Handler: modifyReservation},
		{Name: "seat_party", Kind: KindWrite, Description: "Seat a reservation or walk-in at a table", Handler: seatParty},
		{Name: "suggest_waitlist", Kind: KindWrite, Description: "Add a party to the waitlist", Handler: suggestWaitlist},
		{Name: "offer_alternative_time", Kind: KindWrite, Description: "Offer alternative reservation times", Handler: offerAlternativeTime},

		// Billing and benefits.
		{Name: "apply_discount", Kind: KindWrite, Description: "Percentage, fixed, or round-off discount on a bill", Handler: applyDiscount},
		{Name: "add_complimentary_item", Kind: KindWrite, Description: "Comp a menu item onto a bill", Handler: addComplimentaryItem},
		{Name: "redeem_secret_code", Kind: KindWrite, Description: "Redeem a secret phrase for its reward, once per table", Handler: redeemSecretCode},
		{Name: "process_points_redemption", Kind: KindWrite, Description: "Redeem loyalty points for vouchers or merchandise", Handler: processPointsRedemption},
		{Name: "offer_complimentary_drink", Kind: KindWrite, Description: "Goodwill drink for an inconvenienced table", Handler: offerComplimentaryDrink},
		{Name: "offer_complimentary_appetizer", Kind: KindWrite, Description: "Goodwill appetizer for an inconvenienced table", Handler: offerComplimentaryAppetizer},
		{Name: "offer_membership_signup", Kind: KindWrite, Description: "Promote the loyalty program to a table", Handler: offerMembershipSignup},

		// Incidents and remedies.
		{Name: "record_service_incident", Kind: KindWrite, Description: "Record an incident and derive its remedy", Handler: recordServiceIncident},
		{Name: "handle_clothing_damage", Kind: KindWrite, Description: "Apply the clothing damage remedy path", Handler: handleClothingDamage},
		{Name: "resolve_with_compensation", Kind: KindWrite, Description: "Offer future or intangible compensation", Handler: resolveWithCompensation},
		{Name: "escalate_with_solution", Kind: KindWrite, Description: "Escalate with a complete recommended remedy", Handler: escalateWithSolution},

		// Safety.
		{Name: "confirm_allergy_safe_item", Kind: KindWrite, Description: "Make an affirmative safety claim for an item", Handler: confirmAllergySafeItem},

		// Kitchen coordination.
		{Name: "request_special_preparation", Kind: KindWrite, Description: "Ask the kitchen for an off-menu preparation", Handler: requestSpecialPreparation},
		{Name: "expedite_order", Kind: KindWrite, Description: "Prioritize a delayed order in the kitchen", Handler: expediteOrder},
		{Name: "remake_dish", Kind: KindWrite, Description: "Send a dish back for remake", Handler: remakeDish},
		{Name: "communicate_delay_to_customer", Kind: KindWrite, Description: "Deliver a delay message to the table", Handler: communicateDelayToCustomer},
		{Name: "offer_alternative_solution", Kind: KindWrite, Description: "Offer an alternative when a request cannot be met", Handler: offerAlternativeSolution},
	}
}
