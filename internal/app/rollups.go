package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"stayhub/internal/domain"
)

const defaultReviewFeedLimit = 10

// RollupService serves the read-only owner aggregations. Everything here
// queries the persisted collections; nothing mutates.
type RollupService struct {
	rollups domain.RollupRepository
}

func NewRollupService(r domain.RollupRepository) *RollupService {
	return &RollupService{rollups: r}
}

// RatingsSummary rolls up verified reviews across the owner's properties.
// Owners with no properties get a zeroed summary, not an error.
func (s *RollupService) RatingsSummary(ctx context.Context, ownerID string) (domain.RatingsSummary, error) {
	sum, err := s.rollups.RatingsSummary(ctx, ownerID)
	if err != nil {
		return domain.RatingsSummary{}, err
	}
	if sum.Histogram == nil {
		sum.Histogram = map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	}
	return sum, nil
}

func (s *RollupService) RecentReviews(ctx context.Context, ownerID string, limit int) ([]domain.ReviewFeedItem, error) {
	if limit <= 0 {
		limit = defaultReviewFeedLimit
	}
	return s.rollups.RecentReviews(ctx, ownerID, limit)
}

// DashboardStats aggregates all bookings across the owner's properties. The
// occupancy figure is the 30-day-window heuristic
// min(100, nights/(rooms*30)*100), kept as-is rather than a calendar-based
// calculation.
func (s *RollupService) DashboardStats(ctx context.Context, ownerID string) (domain.DashboardStats, error) {
	var (
		totals domain.BookingTotals
		rooms  int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.rollups.BookingTotals(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		rooms, err = s.rollups.TotalRooms(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}

	occupancy := 0.0
	if rooms > 0 {
		occupancy = float64(totals.TotalNights) / (float64(rooms) * 30) * 100
		if occupancy > 100 {
			occupancy = 100
		}
	}
	return domain.DashboardStats{
		TotalBookings:  totals.TotalBookings,
		TotalGuests:    totals.TotalGuests,
		ActiveBookings: totals.ActiveBookings,
		Revenue:        totals.Revenue,
		OccupancyPct:   occupancy,
	}, nil
}
