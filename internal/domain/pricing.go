package domain

import "time"

const dateLayout = "2006-01-02"

// Quote is the price breakdown snapshot stored on a booking.
type Quote struct {
	Nights        int
	PricePerNight int64
	TaxesAndFees  int64
	TotalAmount   int64
}

// PriceStay derives the quote for a stay. Nights is the day-span rounded up
// and floored at 1: a same-day or inverted range still prices as one night
// rather than failing. Taxes are a flat per-booking amount.
func PriceStay(checkIn, checkOut string, nightly, flatTax int64) (Quote, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return Quote{}, Ef(ErrInvalidInput, "invalid check-in date %q", checkIn)
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return Quote{}, Ef(ErrInvalidInput, "invalid check-out date %q", checkOut)
	}
	nights := ceilNights(out.Sub(in))
	if nights < 1 {
		nights = 1
	}
	return Quote{
		Nights:        nights,
		PricePerNight: nightly,
		TaxesAndFees:  flatTax,
		TotalAmount:   int64(nights)*nightly + flatTax,
	}, nil
}

func ceilNights(span time.Duration) int {
	if span <= 0 {
		return 0
	}
	day := 24 * time.Hour
	return int((span + day - 1) / day)
}
