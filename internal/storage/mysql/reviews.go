package mysql

import (
	"context"
	"database/sql"

	"stayhub/internal/domain"
)

func (r *Repo) CreateReview(ctx context.Context, rv domain.Review) error {
	_, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.ID, rv.BookingID, rv.CustomerID, rv.PropertyID, rv.Rating,
		rv.Comment, rv.Verified, rv.CreatedAt, rv.UpdatedAt)
	if isDuplicate(err) {
		return domain.E(domain.ErrConflict, "Review already exists for this booking")
	}
	return err
}

func (r *Repo) GetReview(ctx context.Context, id string) (domain.Review, error) {
	return r.scanReview(r.db.QueryRowContext(ctx, getReviewSQL, id))
}

func (r *Repo) GetReviewByBooking(ctx context.Context, bookingID string) (domain.Review, error) {
	return r.scanReview(r.db.QueryRowContext(ctx, getReviewByBookingSQL, bookingID))
}

func (r *Repo) scanReview(row *sql.Row) (domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(
		&rv.ID, &rv.BookingID, &rv.CustomerID, &rv.PropertyID, &rv.Rating,
		&rv.Comment, &rv.Verified, &rv.Helpful, &rv.Reported,
		&rv.CreatedAt, &rv.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Review{}, domain.E(domain.ErrNotFound, "review not found")
		}
		return domain.Review{}, err
	}
	return rv, nil
}

func (r *Repo) UpdateReview(ctx context.Context, rv domain.Review) error {
	res, err := r.db.ExecContext(ctx, updateReviewSQL, rv.Rating, rv.Comment, rv.UpdatedAt, rv.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.ErrNotFound, "review not found")
	}
	return nil
}

func (r *Repo) DeleteReview(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteReviewSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.ErrNotFound, "review not found")
	}
	return nil
}

func (r *Repo) IncrementHelpful(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, incrementHelpfulSQL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.ErrNotFound, "review not found")
	}
	return nil
}

func (r *Repo) MarkReported(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, markReportedSQL, id)
	if err != nil {
		return err
	}
	// MySQL reports zero affected rows when reported was already 1, so a
	// repeat report is not a miss; distinguish via a lookup.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, gerr := r.GetReview(ctx, id); gerr != nil {
			return gerr
		}
	}
	return nil
}

func (r *Repo) ListReviewsByProperty(ctx context.Context, propertyID string, pg domain.PageQuery) (domain.ReviewsPage, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsByPropertySQL, propertyID, pg.Limit, pg.Offset())
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	defer rows.Close()

	var items []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID, &rv.BookingID, &rv.CustomerID, &rv.PropertyID, &rv.Rating,
			&rv.Comment, &rv.Verified, &rv.Helpful, &rv.Reported,
			&rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return domain.ReviewsPage{}, err
		}
		items = append(items, rv)
	}
	if err := rows.Err(); err != nil {
		return domain.ReviewsPage{}, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countReviewsByPropertySQL, propertyID).Scan(&total); err != nil {
		return domain.ReviewsPage{}, err
	}
	page := pg.Page
	if page < 1 {
		page = 1
	}
	return domain.ReviewsPage{Items: items, Page: page, Total: total}, nil
}

func (r *Repo) ReviewedBookings(ctx context.Context, customerID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, reviewedBookingsSQL, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
