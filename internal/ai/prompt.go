package ai

import (
	"fmt"
	"strings"

	"wanderplan/internal/types"
)

// BuildTripPrompt renders the generation prompt for p. Photo fields are
// requested as empty strings and filled in later by the enricher.
func BuildTripPrompt(p types.Preferences) string {
	interests := "general sightseeing"
	if len(p.Interests) > 0 {
		interests = strings.Join(p.Interests, ", ")
	}

	return fmt.Sprintf(`Role: You are an experienced travel planner.

Plan a %d-day trip to %s.
- Budget: %s
- Travelers: %s
- Interests: %s
- Write all descriptions in %s.

RULES:
1. Recommend 2-3 hotels that fit the budget.
2. Recommend 4-8 attractions that match the interests.
3. Produce exactly %d entries in "dailyPlan", numbered from 1.
4. Every day has breakfast, lunch and dinner in "meals" and 2-4 "activities".
5. Use real, searchable place names. Use "N/A" as the location of an activity that has no single place (e.g. free time).
6. Leave every "photoUrl", "imageUrl" and "locationImage" as an empty string.

Output: a single JSON object, no markdown, matching this schema:
{
  "tripDetails": {"destination": "string", "duration": integer, "budget": "string", "travelers": "string", "bestTimeToVisit": "string"},
  "accommodation": {
    "hotels": [{"name": "string", "address": "string", "pricePerNight": "string", "rating": number, "description": "string", "photoUrl": ""}]
  },
  "attractions": [{"name": "string", "description": "string", "ticketPrice": "string", "bestTimeToVisit": "string", "imageUrl": ""}],
  "dailyPlan": [
    {
      "day": integer,
      "theme": "string",
      "meals": [{"type": "breakfast|lunch|dinner", "restaurant": "string", "cuisine": "string", "estimatedCost": "string", "imageUrl": ""}],
      "activities": [{"time": "HH:MM", "activity": "string", "location": "string", "duration": "string", "locationImage": ""}]
    }
  ]
}
`, p.Days, p.Destination, p.Budget, p.Travelers, interests, p.Language, p.Days)
}
