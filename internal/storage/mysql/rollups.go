package mysql

import (
	"context"

	"stayhub/internal/domain"
)

func (r *Repo) RatingsSummary(ctx context.Context, ownerID string) (domain.RatingsSummary, error) {
	var (
		sum                domain.RatingsSummary
		h1, h2, h3, h4, h5 int
	)
	err := r.db.QueryRowContext(ctx, ratingsSummarySQL, ownerID).Scan(
		&sum.TotalReviews, &sum.AverageRating, &h1, &h2, &h3, &h4, &h5)
	if err != nil {
		return domain.RatingsSummary{}, err
	}
	sum.Histogram = map[int]int{1: h1, 2: h2, 3: h3, 4: h4, 5: h5}
	return sum, nil
}

func (r *Repo) RecentReviews(ctx context.Context, ownerID string, limit int) ([]domain.ReviewFeedItem, error) {
	rows, err := r.db.QueryContext(ctx, recentReviewsSQL, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ReviewFeedItem
	for rows.Next() {
		var it domain.ReviewFeedItem
		if err := rows.Scan(
			&it.ReviewID, &it.PropertyID, &it.PropertyName, &it.ReviewerName,
			&it.ReviewerTotal, &it.Rating, &it.Comment, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) BookingTotals(ctx context.Context, ownerID string) (domain.BookingTotals, error) {
	var t domain.BookingTotals
	err := r.db.QueryRowContext(ctx, bookingTotalsSQL, ownerID).Scan(
		&t.TotalBookings, &t.TotalGuests, &t.TotalNights, &t.ActiveBookings, &t.Revenue)
	if err != nil {
		return domain.BookingTotals{}, err
	}
	return t, nil
}

func (r *Repo) TotalRooms(ctx context.Context, ownerID string) (int, error) {
	var rooms int
	if err := r.db.QueryRowContext(ctx, totalRoomsSQL, ownerID).Scan(&rooms); err != nil {
		return 0, err
	}
	return rooms, nil
}
