package user

// User is an account that can forecast and, depending on flags and
// competition roles, administer propositions.
type User struct {
	ID          string
	DisplayName string
	Username    string
	IsAdmin     bool
	IsActive    bool
}
