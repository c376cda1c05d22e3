// README: Monthly plan-generation credits per user.
package aiusage

import "errors"

// ErrQuotaExhausted is returned when a user has no plan credits left this month.
var ErrQuotaExhausted = errors.New("monthly plan quota exhausted")

// DefaultMonthlyCredits is the number of plans a user may generate per month.
const DefaultMonthlyCredits = 20

// Usage is a user's credit balance for the current month.
type Usage struct {
	UID       string `json:"uid"`
	Remaining int    `json:"remaining"`
	Allowance int    `json:"allowance"`
	Month     string `json:"month"`
}

func currentMonth() string {
	return nowFunc().UTC().Format("2006-01")
}
