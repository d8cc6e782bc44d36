package entity

// Plan describes one purchasable subscription plan.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PriceMonthly float64  `json:"priceMonthly"`
	PriceYearly  float64  `json:"priceYearly"`
	Credits      int64    `json:"credits"`
	Features     []string `json:"features,omitempty"`
}

// Subscription is the user's current subscription as reported by the
// payments backend.
type Subscription struct {
	PlanID            string `json:"planId"`
	PlanName          string `json:"planName"`
	Status            string `json:"status"`
	BillingCycle      string `json:"billingCycle"`
	CurrentPeriodEnd  string `json:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd"`
	PendingPlanChange string `json:"pendingPlanChange,omitempty"`
	CreditsRemaining  int64  `json:"creditsRemaining"`
}

// CheckoutPrefs is the short-lived checkout selection carried between the
// pricing and subscription pages (the browser kept these in sessionStorage).
type CheckoutPrefs struct {
	SelectedPlanID string `json:"selectedPlanId,omitempty"`
	BillingCycle   string `json:"billingCycle,omitempty"`
	CreditPurchase string `json:"creditPurchase,omitempty"`
	IsChangingPlan bool   `json:"isChangingPlan,omitempty"`
}

// Empty reports whether no checkout selection is pending.
func (p CheckoutPrefs) Empty() bool {
	return p.SelectedPlanID == "" && p.CreditPurchase == "" && !p.IsChangingPlan
}
