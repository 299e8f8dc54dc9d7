// Package model defines the entities shared by the repository, service, and
// handler layers. Structs carry both json tags (API shape) and db tags
// (column names) so one type serves the whole stack.
package model

// User represents a registered account.
//
// The primary identifier is an integer assigned by the database at
// registration and immutable afterwards. Username is also unique — follower
// edges reference users by username rather than id, so both columns carry a
// UNIQUE constraint.
//
// WHY A SEPARATE PasswordHash FIELD WITH json:"-"?
// The bcrypt hash must never appear in an API response. Tagging it json:"-"
// means encoding/json skips it entirely, so even a careless handler cannot
// leak it. Repository methods that don't need the hash never select the
// column in the first place.
type User struct {
	ID           int64  `json:"id"         db:"id"`
	Username     string `json:"username"   db:"username"`
	FirstName    string `json:"fname"      db:"fname"`
	LastName     string `json:"lname"      db:"lname"`
	Email        string `json:"email"      db:"email"`
	Exp          int64  `json:"exp"        db:"exp"`         // experience points earned by finishing reads
	TotalBooks   int64  `json:"totalBooks" db:"total_books"` // lifetime count of finished books
	TotalPages   int64  `json:"totalPages" db:"total_pages"` // lifetime count of pages read
	PasswordHash string `json:"-"          db:"password"`
}
