package model

// Follower is one directed follower edge joined with the follower's public
// profile fields. Username is the followed user, FollowerUsername the user
// doing the following; the remaining fields describe the follower.
//
// The edge itself has no surrogate id — a (followed, follower) pair appears
// at most once, and the pair is the key for lookups and deletes.
type Follower struct {
	Username         string `json:"username"         db:"user_username"`
	FollowerUsername string `json:"followerUsername" db:"follower_username"`
	FirstName        string `json:"fname"            db:"fname"`
	LastName         string `json:"lname"            db:"lname"`
	Email            string `json:"email"            db:"email"`
	Exp              int64  `json:"exp"              db:"exp"`
	TotalBooks       int64  `json:"totalBooks"       db:"total_books"`
	TotalPages       int64  `json:"totalPages"       db:"total_pages"`
}

// FollowedUser is the outbound direction of the same edge: a user that the
// caller follows, joined with the followed user's public profile.
type FollowedUser struct {
	ID         int64  `json:"id"         db:"id"`
	Username   string `json:"username"   db:"username"`
	FirstName  string `json:"fname"      db:"fname"`
	LastName   string `json:"lname"      db:"lname"`
	Email      string `json:"email"      db:"email"`
	Exp        int64  `json:"exp"        db:"exp"`
	TotalBooks int64  `json:"totalBooks" db:"total_books"`
	TotalPages int64  `json:"totalPages" db:"total_pages"`
}
