package domain

import "time"

// Review is a customer's rating tied to exactly one booking.
//
// Verified is a snapshot: it records whether the booking had already reached
// completed status at the moment the review was created, and is never
// re-derived afterwards. Only verified reviews count toward a property's
// public aggregate.
type Review struct {
	ID         string
	BookingID  string
	CustomerID string
	PropertyID string
	Rating     int
	Comment    string
	Verified   bool
	Helpful    int64
	Reported   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ValidRating(r int) bool { return r >= 1 && r <= 5 }
