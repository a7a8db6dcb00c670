package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), nil
	}
	return "", Ef(ErrInvalidInput, "unknown booking status %q", s)
}

// transitions is the allowed edge set of the booking state machine.
// cancelled and completed are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCancelled, BookingCompleted},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Booking is a customer's reservation of a property for a date range.
// Price fields are snapshots taken at creation; the property's base rate
// may change later without affecting existing bookings.
type Booking struct {
	ID            string
	CustomerID    string
	PropertyID    string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	Nights        int
	PricePerNight int64
	TaxesAndFees  int64
	TotalAmount   int64
	Status        BookingStatus
	CreatedAt     time.Time
}

// BookingSummary decorates a booking with review state for customer listings.
type BookingSummary struct {
	Booking
	ReviewSubmitted bool
	CanReview       bool
}
