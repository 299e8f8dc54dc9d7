package model

// Badge is an entry in the global badge catalogue (e.g. "Read 10 Books").
type Badge struct {
	ID        int64  `json:"id"        db:"id"`
	Name      string `json:"name"      db:"name"`
	Thumbnail string `json:"thumbnail" db:"thumbnail"`
}

// UserBadge is a badge awarded to a user, joined with the badge's catalogue
// fields. The (user, badge) pair is unique — a badge is awarded at most once.
type UserBadge struct {
	ID        int64  `json:"id"        db:"id"`
	UserID    int64  `json:"userId"    db:"user_id"`
	BadgeID   int64  `json:"badgeId"   db:"badge_id"`
	Name      string `json:"name"      db:"name"`
	Thumbnail string `json:"thumbnail" db:"thumbnail"`
}
