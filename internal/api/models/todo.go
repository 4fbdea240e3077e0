package models

// Todo represents a to-do item in the database. Every todo belongs to
// exactly one user; the owner is set at creation time and never changes.
type Todo struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	UserID int64  `db:"user_id"`
}

// TodoRequest defines the structure for todo create and update requests.
// Name presence is checked in the service so the error message stays the
// same for both missing and empty values.
type TodoRequest struct {
	Name string `json:"name"`
}
