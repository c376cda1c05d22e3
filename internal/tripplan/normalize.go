package tripplan

import (
	"encoding/json"
	"strings"
)

// Normalize turns raw model output into a validated TripPlan.
//
// The text is stripped of markdown code fences and parsed strictly. If that
// fails the repair pass runs once and the parse is retried. The result must be
// a JSON object carrying every key in RequiredKeys.
func Normalize(raw string) (TripPlan, error) {
	cleaned := StripCodeFence(raw)

	v, err := parse(cleaned)
	if err != nil {
		v, err = parse(Repair(cleaned))
		if err != nil {
			return nil, &MalformedResponseError{Raw: raw, Err: err}
		}
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrInvalidStructure
	}
	plan := TripPlan(obj)
	if err := Validate(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// StripCodeFence removes ```json ... ``` wrapping and surrounding whitespace.
func StripCodeFence(input string) string {
	input = strings.TrimSpace(input)
	if len(input) >= 7 && strings.EqualFold(input[:7], "```json") {
		input = input[7:]
	}
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(strings.TrimSpace(input), "```")
	return strings.TrimSpace(input)
}

func parse(s string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}
