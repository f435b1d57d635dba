package competition

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleForecaster Role = "forecaster"
)

// Competition is a named collection of props with shared scheduling. Private
// competitions carry a membership list; public ones are open to every active
// user. ForecastsClose is the competition-level deadline used for props in
// public competitions; nil means forecasting never closes at that level.
type Competition struct {
	ID             string
	Name           string
	Visibility     Visibility
	ForecastsClose *time.Time
	StartsAt       *time.Time
	EndsAt         *time.Time
	CreatedBy      string
	CreatedAt      time.Time
}

type Membership struct {
	CompetitionID string
	UserID        string
	Role          Role
	JoinedAt      time.Time
}

func (c Competition) IsPrivate() bool {
	return c.Visibility == VisibilityPrivate
}

func (m Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}
