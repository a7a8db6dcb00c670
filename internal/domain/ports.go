package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	CreateUser(ctx context.Context, u User) error
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
}

type PropertyRepository interface {
	CreateProperty(ctx context.Context, p Property) error
	GetProperty(ctx context.Context, id string) (Property, error)

	// RecomputeRating re-derives the cached aggregate from the property's
	// verified reviews in a single statement. Invoked after every review
	// mutation; concurrent mutations on the same property may observe a
	// transiently stale aggregate (eventual consistency, bounded by
	// request latency).
	RecomputeRating(ctx context.Context, propertyID string) error
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b Booking) error
	GetBooking(ctx context.Context, id string) (Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) error
	ListBookingsByCustomer(ctx context.Context, customerID string) ([]Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID string) ([]Booking, error)
}

type ReviewRepository interface {
	// CreateReview fails with ErrConflict when a review already exists for
	// the booking (unique key on booking_id closes the check-then-insert
	// race).
	CreateReview(ctx context.Context, r Review) error
	GetReview(ctx context.Context, id string) (Review, error)
	GetReviewByBooking(ctx context.Context, bookingID string) (Review, error)
	UpdateReview(ctx context.Context, r Review) error
	DeleteReview(ctx context.Context, id string) error

	// IncrementHelpful adds 1 atomically; no read-modify-write.
	IncrementHelpful(ctx context.Context, id string) error
	MarkReported(ctx context.Context, id string) error

	ListReviewsByProperty(ctx context.Context, propertyID string, pg PageQuery) (ReviewsPage, error)
	ReviewedBookings(ctx context.Context, customerID string) (map[string]bool, error)
}

type RollupRepository interface {
	RatingsSummary(ctx context.Context, ownerID string) (RatingsSummary, error)
	RecentReviews(ctx context.Context, ownerID string, limit int) ([]ReviewFeedItem, error)
	BookingTotals(ctx context.Context, ownerID string) (BookingTotals, error)
	TotalRooms(ctx context.Context, ownerID string) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models & queries

type PageQuery struct {
	Page  int
	Limit int
}

func (pg PageQuery) Offset() int {
	if pg.Page <= 1 {
		return 0
	}
	return (pg.Page - 1) * pg.Limit
}

type ReviewsPage struct {
	Items []Review
	Page  int
	Total int
}

// RatingsSummary is the verified-only rating rollup across an owner's
// properties. Histogram is keyed by star value 1..5.
type RatingsSummary struct {
	TotalReviews  int
	AverageRating float64
	Histogram     map[int]int
}

// ReviewFeedItem joins a review with its reviewer for the owner feed.
// ReviewerTotal is the reviewer's lifetime review count (first-time
// reviewer badges).
type ReviewFeedItem struct {
	ReviewID      string
	PropertyID    string
	PropertyName  string
	ReviewerName  string
	ReviewerTotal int
	Rating        int
	Comment       string
	CreatedAt     time.Time
}

type BookingTotals struct {
	TotalBookings  int
	TotalGuests    int
	TotalNights    int
	ActiveBookings int
	Revenue        int64
}

// DashboardStats is the owner dashboard rollup. OccupancyPct is a crude
// 30-day-window estimate, not a calendar-accurate occupancy figure.
type DashboardStats struct {
	TotalBookings  int
	TotalGuests    int
	ActiveBookings int
	Revenue        int64
	OccupancyPct   float64
}
