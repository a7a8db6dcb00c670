package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/domain"
)

type ReviewService struct {
	reviews    domain.ReviewRepository
	bookings   domain.BookingRepository
	properties domain.PropertyRepository
	cache      domain.Cache
}

func NewReviewService(r domain.ReviewRepository, b domain.BookingRepository, p domain.PropertyRepository, cache domain.Cache) *ReviewService {
	return &ReviewService{reviews: r, bookings: b, properties: p, cache: cache}
}

// Add creates the single review a booking may carry. Verified is decided
// here, from the booking's status at this instant, and never re-derived.
func (s *ReviewService) Add(ctx context.Context, customerID, bookingID string, rating int, text string) (domain.Review, error) {
	if !domain.ValidRating(rating) {
		return domain.Review{}, domain.E(domain.ErrInvalidInput, "rating must be an integer between 1 and 5")
	}
	b, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.Review{}, err
	}
	if !ownsBooking(customerID, b) {
		return domain.Review{}, domain.E(domain.ErrForbidden, "not your booking")
	}
	if b.Status == domain.BookingCancelled {
		return domain.Review{}, domain.E(domain.ErrConflict, "cannot review a cancelled booking")
	}
	if _, err := s.reviews.GetReviewByBooking(ctx, b.ID); err == nil {
		return domain.Review{}, domain.E(domain.ErrConflict, "Review already exists for this booking")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Review{}, err
	}

	now := time.Now().UTC()
	rv := domain.Review{
		ID:         uuid.NewString(),
		BookingID:  b.ID,
		CustomerID: customerID,
		PropertyID: b.PropertyID,
		Rating:     rating,
		Comment:    strings.TrimSpace(text),
		Verified:   b.Status == domain.BookingCompleted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// The unique key on booking_id closes the race two concurrent Adds
	// would otherwise win together; a duplicate insert surfaces as conflict.
	if err := s.reviews.CreateReview(ctx, rv); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Review{}, domain.E(domain.ErrConflict, "Review already exists for this booking")
		}
		return domain.Review{}, err
	}
	observability.ObserveReviewMutation("create")
	if err := s.refreshAggregate(ctx, rv.PropertyID); err != nil {
		return domain.Review{}, err
	}
	log.Info().Str("review", rv.ID).Str("booking", b.ID).Bool("verified", rv.Verified).Int("rating", rating).Msg("review added")
	return rv, nil
}

// Update overwrites rating and text. Verified keeps its creation-time value.
func (s *ReviewService) Update(ctx context.Context, customerID, reviewID string, rating int, text string) (domain.Review, error) {
	if !domain.ValidRating(rating) {
		return domain.Review{}, domain.E(domain.ErrInvalidInput, "rating must be an integer between 1 and 5")
	}
	rv, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if !canEditReview(domain.Principal{UserID: customerID, Role: domain.RoleCustomer}, rv) {
		return domain.Review{}, domain.E(domain.ErrForbidden, "not your review")
	}
	rv.Rating = rating
	rv.Comment = strings.TrimSpace(text)
	rv.UpdatedAt = time.Now().UTC()
	if err := s.reviews.UpdateReview(ctx, rv); err != nil {
		return domain.Review{}, err
	}
	observability.ObserveReviewMutation("update")
	if err := s.refreshAggregate(ctx, rv.PropertyID); err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

func (s *ReviewService) Delete(ctx context.Context, p domain.Principal, reviewID string) error {
	rv, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if !canDeleteReview(p, rv) {
		return domain.E(domain.ErrForbidden, "not your review")
	}
	if err := s.reviews.DeleteReview(ctx, rv.ID); err != nil {
		return err
	}
	observability.ObserveReviewMutation("delete")
	return s.refreshAggregate(ctx, rv.PropertyID)
}

// MarkHelpful increments the helpful counter. Deliberately requires no
// caller identity; the route is rate limited instead.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string) error {
	return s.reviews.IncrementHelpful(ctx, reviewID)
}

// Report flags a review for moderation. Same open-access contract as
// MarkHelpful.
func (s *ReviewService) Report(ctx context.Context, reviewID string) error {
	return s.reviews.MarkReported(ctx, reviewID)
}

// refreshAggregate recomputes the property's cached rating and drops the
// read caches that embed it.
func (s *ReviewService) refreshAggregate(ctx context.Context, propertyID string) error {
	if err := s.properties.RecomputeRating(ctx, propertyID); err != nil {
		return fmt.Errorf("recompute rating for %s: %w", propertyID, err)
	}
	if s.cache != nil {
		s.invalidateProperty(ctx, propertyID)
	}
	return nil
}

// invalidateProperty clears the property view plus the common first pages of
// its review feed.
func (s *ReviewService) invalidateProperty(ctx context.Context, propertyID string) {
	_ = s.cache.Del(ctx, propertyKey(propertyID))
	for _, lim := range []int{10, 20, 50} {
		_ = s.cache.Del(ctx, reviewsKey(propertyID, 1, lim))
	}
}
