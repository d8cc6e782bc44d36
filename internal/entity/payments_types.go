package entity

// Wire shapes for the payments backend.

// SubscriptionResponse is the GET /payments/subscription body.
type SubscriptionResponse struct {
	Success      bool `json:"success"`
	Subscription *struct {
		PlanID            string `json:"plan_id"`
		PlanName          string `json:"plan_name"`
		Status            string `json:"status"`
		BillingCycle      string `json:"billing_cycle"`
		CurrentPeriodEnd  string `json:"current_period_end"`
		CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
		PendingPlanChange string `json:"pending_plan_change"`
		CreditsRemaining  int64  `json:"credits_remaining"`
	} `json:"subscription"`
}

// PlanResponse is the GET /payments/plan/{id} body.
type PlanResponse struct {
	Success bool `json:"success"`
	Plan    *struct {
		ID           string   `json:"id"`
		Name         string   `json:"name"`
		PriceMonthly float64  `json:"price_monthly"`
		PriceYearly  float64  `json:"price_yearly"`
		Credits      int64    `json:"credits"`
		Features     []string `json:"features"`
	} `json:"plan"`
}

// ChangePlanRequest is the POST /payments/change-plan body.
type ChangePlanRequest struct {
	PlanID       string `json:"plan_id"`
	BillingCycle string `json:"billing_cycle"`
}

// PaymentsAck is the generic mutation acknowledgement body.
type PaymentsAck struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
