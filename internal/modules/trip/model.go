// README: Trip aggregate: a generated plan owned by one user.
package trip

import (
	"errors"
	"time"

	"wanderplan/internal/tripplan"
	"wanderplan/internal/types"
)

var (
	ErrNotFound    = errors.New("trip not found")
	ErrForbidden   = errors.New("trip belongs to another user")
	ErrInvalidPlan = errors.New("invalid trip plan")
	ErrBadRequest  = errors.New("bad request")
)

type Trip struct {
	ID          types.ID          `json:"id"`
	UserID      string            `json:"userId"`
	Preferences types.Preferences `json:"preferences"`
	Plan        tripplan.TripPlan `json:"plan"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Summary is the list view of a trip.
type Summary struct {
	ID          types.ID  `json:"id"`
	Destination string    `json:"destination"`
	Days        int       `json:"days"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t *Trip) Summary() Summary {
	dest := t.Plan.Destination()
	if dest == "" {
		dest = t.Preferences.Destination
	}
	return Summary{ID: t.ID, Destination: dest, Days: t.Preferences.Days, CreatedAt: t.CreatedAt}
}

type CreateCommand struct {
	UserID      string
	Preferences types.Preferences
	Plan        tripplan.TripPlan
}

// UpdateCommand replaces a stored plan. Preferences is optional.
type UpdateCommand struct {
	ID          types.ID
	UserID      string
	Plan        tripplan.TripPlan
	Preferences *types.Preferences
}
