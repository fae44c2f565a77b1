package restaurant

// OfferKind identifies a benefit mechanism applied to a table's bill.
type OfferKind string

const (
	OfferDiscount         OfferKind = "discount"
	OfferRoundOff         OfferKind = "round_off"
	OfferCompItem         OfferKind = "comp_item"
	OfferVoucher          OfferKind = "voucher"
	OfferSMSPromo         OfferKind = "sms_promo"
	OfferSecretCode       OfferKind = "secret_code"
	OfferPointsRedemption OfferKind = "points_redemption"
	OfferGoodwillItem     OfferKind = "goodwill_item"
)

// OfferClass is the mutual-exclusion class an offer belongs to. Stacking
// compatibility is decided class-pairwise, not per offer kind.
type OfferClass string

const (
	// ClassAuthorityOption covers round-off, complimentary item, and
	// discount. A table may hold at most one offer from this class.
	ClassAuthorityOption OfferClass = "authority_option"

	// ClassPromotion covers vouchers and SMS promotions. Promotions do not
	// stack with each other.
	ClassPromotion OfferClass = "promotion"

	// ClassSecretCode covers secret code rewards, limited to one per visit.
	ClassSecretCode OfferClass = "secret_code"

	// ClassRedemption covers points redemptions.
	ClassRedemption OfferClass = "redemption"

	// ClassGoodwill covers appeasement drinks and appetizers, which stack
	// freely with everything.
	ClassGoodwill OfferClass = "goodwill"
)

// Class returns the exclusivity class for an offer kind.
func (k OfferKind) Class() OfferClass {
	switch k {
	case OfferDiscount, OfferRoundOff, OfferCompItem:
		return ClassAuthorityOption
	case OfferVoucher, OfferSMSPromo:
		return ClassPromotion
	case OfferSecretCode:
		return ClassSecretCode
	case OfferPointsRedemption:
		return ClassRedemption
	default:
		return ClassGoodwill
	}
}

// Offer records one applied benefit on a table for the current visit.
type Offer struct {
	Kind   OfferKind  `yaml:"kind"`
	Class  OfferClass `yaml:"class"`
	Amount float64    `yaml:"amount"`
	Detail string     `yaml:"detail"`
}

// NewOffer builds an Offer with its class derived from the kind.
func NewOffer(kind OfferKind, amount float64, detail string) Offer {
	return Offer{Kind: kind, Class: kind.Class(), Amount: amount, Detail: detail}
}
