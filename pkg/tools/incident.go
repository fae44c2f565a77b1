package tools

import (
	"github.com/binleiwang/tau2-bench/pkg/policy"
	"github.com/binleiwang/tau2-bench/pkg/restaurant"
)

var incidentCategories = map[string]restaurant.IncidentCategory{
	"safety":              restaurant.IncidentSafety,
	"property_damage":     restaurant.IncidentPropertyDamage,
	"celebration_failure": restaurant.IncidentCelebrationFailure,
	"service_delay":       restaurant.IncidentServiceDelay,
	"quality_issue":       restaurant.IncidentQualityIssue,
	"manager_request":     restaurant.IncidentManagerRequest,
	"review_threat":       restaurant.IncidentReviewThreat,
}

var severityBuckets = map[string]policy.SeverityBucket{
	"minor":    policy.SeverityMinor,
	"moderate": policy.SeverityModerate,
	"major":    policy.SeverityMajor,
}

func recordServiceIncident(inv *Invocation) (map[string]any, *Error) {
	catName, terr := inv.Args.String("category")
	if terr != nil {
		return nil, terr
	}
	sevName, terr := inv.Args.String("severity")
	if terr != nil {
		return nil, terr
	}
	description, terr := inv.Args.String("description")
	if terr != nil {
		return nil, terr
	}
	orderID, terr := inv.Args.OptString("order_id")
	if terr != nil {
		return nil, terr
	}
	tableID, terr := inv.Args.OptString("table_id")
	if terr != nil {
		return nil, terr
	}

	cat, ok := incidentCategories[catName]
	if !ok {
		return nil, invalidArgf("unknown incident category %q", catName)
	}
	sev, ok := severityBuckets[sevName]
	if !ok {
		return nil, invalidArgf("severity must be \"minor\", \"moderate\", or \"major\"")
	}
	if orderID != "" && inv.Store.Order(orderID) == nil {
		return nil, notFoundf("order %s not found", orderID)
	}
	if tableID != "" && inv.Store.Table(tableID) == nil {
		return nil, notFoundf("table %s not found", tableID)
	}
	auth, ok := inv.Store.CurrentAuthority()
	if !ok {
		return nil, preconditionf("no authority profile configured for role %s", inv.Store.Role)
	}

	remedy, hasRemedy := policy.LookupRemedy(cat, sev)
	mustEscalate := policy.MustEscalate(cat, float64(remedy.DiscountPct), auth)

	incident := restaurant.Incident{
		ID:          deterministicID("INC", catName, sevName, description),
		OrderID:     orderID,
		TableID:     tableID,
		Category:    cat,
		Severity:    sevName,
		Description: description,
		CreatedAt:   inv.Now.Format("2006-01-02 15:04"),
	}
	inv.Store.Incidents = append(inv.Store.Incidents, incident)

	payload := map[string]any{
		"incident_id":   incident.ID,
		"category":      catName,
		"severity":      sevName,
		"must_escalate": mustEscalate,
	}
	if hasRemedy {
		payload["recommended_discount_percent"] = remedy.DiscountPct
		payload["recommended_actions"] = remedy.Actions
		if remedy.DryCleaningUSD > 0 {
			payload["dry_cleaning_usd"] = remedy.DryCleaningUSD
		}
		if remedy.EscalateTo != "" {
			payload["escalate_to"] = remedy.EscalateTo
		}
	}
	return payload, nil
}

func escalateWithSolution(inv *Invocation) (map[string]any, *Error) {
	escalateTo, terr := inv.Args.String("escalate_to")
	if terr != nil {
		return nil, terr
	}
	reason, terr := inv.Args.String("reason")
	if terr != nil {
		return nil, terr
	}
	discountPct, terr := inv.Args.Int("recommended_discount_percent")
	if terr != nil {
		return nil, terr
	}
	actions, terr := inv.Args.StringList("recommended_actions")
	if terr != nil {
		return nil, terr
	}

	if !policy.ValidEscalationTarget(escalateTo) {
		return nil, invalidArgf("escalate_to must be \"host\" or \"manager\"")
	}
	if discountPct < 0 || discountPct > 100 {
		return nil, invalidArgf("recommended_discount_percent must be between 0 and 100")
	}
	if len(actions) == 0 {
		return nil, invalidArgf("recommended_actions must not be empty")
	}
	for _, a := range actions {
		if !policy.ValidEscalationAction(a) {
			return nil, invalidArgf("unknown recommended action %q", a)
		}
	}
	if escalateTo == "manager" && !inv.Store.ManagerOnDuty {
		return nil, preconditionf("no manager is on duty; escalate to the host instead")
	}

	catName, terr := inv.Args.OptString("category")
	if terr != nil {
		return nil, terr
	}
	cat := restaurant.IncidentManagerRequest
	if catName != "" {
		mapped, ok := incidentCategories[catName]
		if !ok {
			return nil, invalidArgf("unknown incident category %q", catName)
		}
		cat = mapped
	}

	flags := &inv.Store.Flags
	flags.EscalationMade = true
	flags.EscalationTo = escalateTo
	flags.EscalationReason = reason
	flags.RecommendedDiscount = &discountPct
	flags.RecommendedActions = append([]string(nil), actions...)

	incident := restaurant.Incident{
		ID:          deterministicID("ESC", escalateTo, reason),
		Category:    cat,
		Severity:    "escalated",
		Description: reason,
		Escalated:   true,
		CreatedAt:   inv.Now.Format("2006-01-02 15:04"),
	}
	inv.Store.Incidents = append(inv.Store.Incidents, incident)

	return map[string]any{
		"escalation_id":                incident.ID,
		"escalate_to":                  escalateTo,
		"recommended_discount_percent": discountPct,
		"recommended_actions":          actions,
	}, nil
}
