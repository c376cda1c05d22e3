// README: Trip plan document produced by the generative model, plus required-key validation.
package tripplan

import "strings"

// Top-level keys every plan must carry.
const (
	KeyTripDetails   = "tripDetails"
	KeyAccommodation = "accommodation"
	KeyAttractions   = "attractions"
	KeyDailyPlan     = "dailyPlan"
)

// RequiredKeys lists the top-level keys in the order they are checked.
var RequiredKeys = []string{KeyTripDetails, KeyAccommodation, KeyAttractions, KeyDailyPlan}

// TripPlan is the decoded JSON object returned by the model.
// Nested objects are map[string]any, arrays are []any, numbers are float64.
type TripPlan map[string]any

// Validate reports the first required key that is absent or null.
func Validate(p TripPlan) error {
	for _, key := range RequiredKeys {
		if v, ok := p[key]; !ok || v == nil {
			return &MissingFieldError{Field: key}
		}
	}
	return nil
}

// Destination returns tripDetails.destination when the model filled it in.
func (p TripPlan) Destination() string {
	details, ok := p[KeyTripDetails].(map[string]any)
	if !ok {
		return ""
	}
	dest, _ := details["destination"].(string)
	return strings.TrimSpace(dest)
}

// Clone returns a deep copy of p.
func (p TripPlan) Clone() TripPlan {
	if p == nil {
		return nil
	}
	return TripPlan(cloneValue(map[string]any(p)).(map[string]any))
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
