package postgres

import "time"

type userTableModel struct {
	ID          string     `db:"id"`
	DisplayName string     `db:"display_name"`
	Username    string     `db:"username"`
	IsAdmin     bool       `db:"is_admin"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}
