package model

import "time"

// Read is a book in the shared catalogue. Rows are created the first time
// any user stashes the book and are not owned by anyone; per-user state
// (rating, review) lives on UserRead.
type Read struct {
	ID          int64   `json:"id"          db:"id"`
	Title       string  `json:"title"       db:"title"`
	ISBN        string  `json:"isbn"        db:"isbn"`
	Description string  `json:"description" db:"description"`
	AvgRating   float64 `json:"avgRating"   db:"avg_rating"`
	PrintType   string  `json:"printType"   db:"print_type"`
	Publisher   string  `json:"publisher"   db:"publisher"`
}

// UserRead links a user to a catalogue read, carrying the user's personal
// rating and review alongside the read's catalogue fields.
//
// WHY POINTERS FOR Rating AND REVIEW FIELDS?
// A user can stash a book without rating or reviewing it. nil means "not
// set", which is distinct from a zero rating or an empty review — the
// frontend renders the two differently. These map to NULL columns.
type UserRead struct {
	ID          int64      `json:"id"          db:"id"`
	UserID      int64      `json:"userId"      db:"user_id"`
	ReadID      int64      `json:"readId"      db:"read_id"`
	Rating      *int64     `json:"rating"      db:"rating"`
	ReviewText  *string    `json:"reviewText"  db:"review_text"`
	ReviewDate  *time.Time `json:"reviewDate"  db:"review_date"`
	Title       string     `json:"title"       db:"title"`
	ISBN        string     `json:"isbn"        db:"isbn"`
	Description string     `json:"description" db:"description"`
	AvgRating   float64    `json:"avgRating"   db:"avg_rating"`
	PrintType   string     `json:"printType"   db:"print_type"`
	Publisher   string     `json:"publisher"   db:"publisher"`
}

// ReadCollection is one filing of a read into a collection, joined with the
// collection's name. The (read, collection) pair is unique.
type ReadCollection struct {
	ID             int64  `json:"id"             db:"id"`
	ReadID         int64  `json:"readId"         db:"read_id"`
	CollectionID   int64  `json:"collectionId"   db:"collection_id"`
	CollectionName string `json:"collectionName" db:"collection_name"`
}
