package types

import (
	"errors"
	"strings"
)

// Budget tiers accepted by the planner.
const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

// MaxTripDays bounds the length of a generated itinerary.
const MaxTripDays = 14

// Preferences is what a traveler asks for when generating a trip.
type Preferences struct {
	Destination string   `json:"destination" firestore:"destination"`
	Days        int      `json:"days" firestore:"days"`
	Budget      string   `json:"budget" firestore:"budget"`
	Travelers   string   `json:"travelers,omitempty" firestore:"travelers"`
	Interests   []string `json:"interests,omitempty" firestore:"interests"`
	Language    string   `json:"language,omitempty" firestore:"language"`
}

// Normalize trims free-text fields and fills defaults.
func (p Preferences) Normalize() Preferences {
	p.Destination = strings.TrimSpace(p.Destination)
	p.Budget = strings.ToLower(strings.TrimSpace(p.Budget))
	if p.Budget == "" {
		p.Budget = BudgetMedium
	}
	p.Travelers = strings.TrimSpace(p.Travelers)
	if p.Travelers == "" {
		p.Travelers = "solo"
	}
	interests := p.Interests[:0:0]
	for _, in := range p.Interests {
		if in = strings.TrimSpace(in); in != "" {
			interests = append(interests, in)
		}
	}
	p.Interests = interests
	p.Language = strings.TrimSpace(p.Language)
	if p.Language == "" {
		p.Language = "English"
	}
	return p
}

// Validate checks a normalized Preferences value.
func (p Preferences) Validate() error {
	switch {
	case p.Destination == "":
		return errors.New("destination is required")
	case p.Days < 1 || p.Days > MaxTripDays:
		return errors.New("days must be between 1 and 14")
	case p.Budget != BudgetLow && p.Budget != BudgetMedium && p.Budget != BudgetHigh:
		return errors.New("budget must be low, medium or high")
	}
	return nil
}
