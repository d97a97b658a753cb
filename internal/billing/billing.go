// Package billing defines subscription plans and the generation
// quotas attached to them.
package billing

import "fmt"

// Plan is a subscription tier.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// Quota is the generation rate allowance for a plan.
type Quota struct {
	// RequestsPerMinute is the steady-state generation rate.
	RequestsPerMinute int
	// Burst is the maximum number of requests allowed at once.
	Burst int
}

var quotas = map[Plan]Quota{
	PlanFree: {RequestsPerMinute: 10, Burst: 5},
	PlanPro:  {RequestsPerMinute: 60, Burst: 20},
}

// ParsePlan validates a stored plan string.
func ParsePlan(s string) (Plan, error) {
	switch Plan(s) {
	case PlanFree, PlanPro:
		return Plan(s), nil
	}
	return "", fmt.Errorf("unknown plan: %q", s)
}

// QuotaFor returns the quota for a plan. Unknown plans get the free
// quota so a bad row never grants unlimited access.
func QuotaFor(plan Plan) Quota {
	if q, ok := quotas[plan]; ok {
		return q
	}
	return quotas[PlanFree]
}
