package mysql

import (
	"context"
	"database/sql"

	"stayhub/internal/domain"
)

func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking) error {
	_, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.ID, b.CustomerID, b.PropertyID, b.CheckIn, b.CheckOut, b.Guests,
		b.Nights, b.PricePerNight, b.TaxesAndFees, b.TotalAmount,
		string(b.Status), b.CreatedAt)
	return err
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	var b domain.Booking
	var status string
	err := r.db.QueryRowContext(ctx, getBookingSQL, id).Scan(
		&b.ID, &b.CustomerID, &b.PropertyID, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.Nights, &b.PricePerNight, &b.TaxesAndFees,
		&b.TotalAmount, &status, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.E(domain.ErrNotFound, "booking not found")
	}
	if err != nil {
		return domain.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	return b, nil
}

func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, updateBookingStatusSQL, string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.E(domain.ErrNotFound, "booking not found")
	}
	return nil
}

func (r *Repo) ListBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	return r.listBookings(ctx, listBookingsByCustomerSQL, customerID)
}

func (r *Repo) ListBookingsByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	return r.listBookings(ctx, listBookingsByOwnerSQL, ownerID)
}

func (r *Repo) listBookings(ctx context.Context, query string, arg any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var status string
		if err := rows.Scan(
			&b.ID, &b.CustomerID, &b.PropertyID, &b.CheckIn, &b.CheckOut,
			&b.Guests, &b.Nights, &b.PricePerNight, &b.TaxesAndFees,
			&b.TotalAmount, &status, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Status = domain.BookingStatus(status)
		out = append(out, b)
	}
	return out, rows.Err()
}
