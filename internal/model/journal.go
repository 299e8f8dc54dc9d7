package model

import "time"

// Journal is a dated diary entry owned by exactly one user.
type Journal struct {
	ID     int64     `json:"id"     db:"id"`
	Title  string    `json:"title"  db:"title"`
	Text   string    `json:"text"   db:"text"`
	Date   time.Time `json:"date"   db:"date"`
	UserID int64     `json:"userId" db:"user_id"`
}
