package resolution

import "time"

// Resolution records the realized outcome of a prop. At most one resolution
// exists per prop; replacing it requires an explicit overwrite.
type Resolution struct {
	ID         string    `json:"id"`
	PropID     string    `json:"propId"`
	Outcome    bool      `json:"outcome"`
	Notes      string    `json:"notes,omitempty"`
	ResolvedBy string    `json:"resolvedBy"`
	ResolvedAt time.Time `json:"resolvedAt"`
}
