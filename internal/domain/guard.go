package domain

// GuardResult is the outcome of a guard check (rate limiter, idempotency,
// lockout).
type GuardResult struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Guard   string `json:"guard,omitempty"` // which guard blocked
}
