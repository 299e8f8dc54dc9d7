package model

// Recommendation is a book tip sent from one user to another.
//
// Unlike Collection or Journal it has two participants instead of a single
// owner: it is visible to a caller iff the caller is the sender OR the
// receiver. Membership is immutable — sender and receiver never change after
// creation — and either participant may delete it.
type Recommendation struct {
	ID             int64  `json:"id"             db:"id"`
	Recommendation string `json:"recommendation" db:"recommendation"`
	SenderID       int64  `json:"senderId"       db:"sender_id"`
	ReceiverID     int64  `json:"receiverId"     db:"receiver_id"`
}
