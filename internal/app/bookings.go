package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/domain"
)

type BookingService struct {
	bookings   domain.BookingRepository
	properties domain.PropertyRepository
	reviews    domain.ReviewRepository
	flatTax    int64
}

func NewBookingService(b domain.BookingRepository, p domain.PropertyRepository, r domain.ReviewRepository, flatTax int64) *BookingService {
	return &BookingService{bookings: b, properties: p, reviews: r, flatTax: flatTax}
}

type CreateBookingInput struct {
	PropertyID string `json:"propertyId" validate:"required"`
	CheckIn    string `json:"checkIn" validate:"required"`
	CheckOut   string `json:"checkOut" validate:"required"`
	Guests     int    `json:"guests" validate:"required,min=1"`
}

func (s *BookingService) Create(ctx context.Context, customerID string, in CreateBookingInput) (domain.Booking, error) {
	prop, err := s.properties.GetProperty(ctx, in.PropertyID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !prop.Active {
		return domain.Booking{}, domain.E(domain.ErrNotFound, "property not available")
	}

	quote, err := domain.PriceStay(in.CheckIn, in.CheckOut, prop.BaseRate, s.flatTax)
	if err != nil {
		return domain.Booking{}, err
	}
	checkIn, _ := time.Parse("2006-01-02", in.CheckIn)
	checkOut, _ := time.Parse("2006-01-02", in.CheckOut)

	b := domain.Booking{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		PropertyID:    prop.ID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        in.Guests,
		Nights:        quote.Nights,
		PricePerNight: quote.PricePerNight,
		TaxesAndFees:  quote.TaxesAndFees,
		TotalAmount:   quote.TotalAmount,
		Status:        domain.BookingPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.bookings.CreateBooking(ctx, b); err != nil {
		return domain.Booking{}, err
	}
	log.Info().Str("booking", b.ID).Str("property", b.PropertyID).Int("nights", b.Nights).Msg("booking created")
	return b, nil
}

// UpdateStatus moves a booking along the lifecycle on behalf of the
// property's owner. Unknown statuses are invalid input; disallowed edges
// (e.g. completed -> confirmed) are conflicts.
func (s *BookingService) UpdateStatus(ctx context.Context, ownerID, bookingID, status string) (domain.Booking, error) {
	next, err := domain.ParseBookingStatus(status)
	if err != nil {
		return domain.Booking{}, err
	}
	b, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	prop, err := s.properties.GetProperty(ctx, b.PropertyID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !ownsProperty(ownerID, prop) {
		return domain.Booking{}, domain.E(domain.ErrForbidden, "not your property's booking")
	}
	if !b.Status.CanTransitionTo(next) {
		return domain.Booking{}, domain.Ef(domain.ErrConflict, "cannot move a %s booking to %s", b.Status, next)
	}
	if err := s.bookings.UpdateBookingStatus(ctx, b.ID, next); err != nil {
		return domain.Booking{}, err
	}
	observability.ObserveBookingTransition(string(b.Status), string(next))
	b.Status = next
	return b, nil
}

// CancelMine cancels the customer's own booking unless it already reached a
// terminal state.
func (s *BookingService) CancelMine(ctx context.Context, customerID, bookingID string) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Booking{}, err
	}
	if !ownsBooking(customerID, b) {
		return domain.Booking{}, domain.E(domain.ErrForbidden, "not your booking")
	}
	if b.Status.Terminal() {
		return domain.Booking{}, domain.Ef(domain.ErrConflict, "cannot cancel a %s booking", b.Status)
	}
	if err := s.bookings.UpdateBookingStatus(ctx, b.ID, domain.BookingCancelled); err != nil {
		return domain.Booking{}, err
	}
	observability.ObserveBookingTransition(string(b.Status), string(domain.BookingCancelled))
	b.Status = domain.BookingCancelled
	return b, nil
}

// ListMine returns the customer's bookings decorated with review state so
// clients can render "leave a review" affordances without extra calls.
func (s *BookingService) ListMine(ctx context.Context, customerID string) ([]domain.BookingSummary, error) {
	bs, err := s.bookings.ListBookingsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	reviewed, err := s.reviews.ReviewedBookings(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BookingSummary, 0, len(bs))
	for _, b := range bs {
		out = append(out, domain.BookingSummary{
			Booking:         b,
			ReviewSubmitted: reviewed[b.ID],
			CanReview:       !reviewed[b.ID] && b.Status != domain.BookingCancelled,
		})
	}
	return out, nil
}

func (s *BookingService) ListForOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return s.bookings.ListBookingsByOwner(ctx, ownerID)
}
