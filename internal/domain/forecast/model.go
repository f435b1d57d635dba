package forecast

import "time"

// Forecast is one user's probability estimate for one prop. At most one
// forecast exists per (user, prop) pair; updates overwrite the probability.
type Forecast struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PropID      string    `json:"propId"`
	Probability float64   `json:"probability"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
