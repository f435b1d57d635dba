package prop

import "time"

// Prop is a yes/no question being forecasted. A nil OwnerID means the prop
// is shared (it belongs to a competition rather than a single user). A nil
// deadline means the prop never closes for forecasting.
type Prop struct {
	ID            string
	Text          string
	CategoryID    *string
	OwnerID       *string
	CompetitionID *string
	ForecastsDue  *time.Time
	ResolutionDue *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPersonal reports whether the prop belongs to a single user instead of a
// competition.
func (p Prop) IsPersonal() bool {
	return p.OwnerID != nil
}
