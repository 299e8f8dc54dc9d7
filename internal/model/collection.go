package model

// Collection is a named shelf of reads owned by exactly one user.
//
// UserID is the owner foreign key. It is set once at creation from the
// ownership-guard-verified owner and never changes — there is no "move a
// collection to another user" operation anywhere in the API.
type Collection struct {
	ID     int64  `json:"id"     db:"id"`
	Name   string `json:"name"   db:"name"`
	UserID int64  `json:"userId" db:"user_id"`
}
