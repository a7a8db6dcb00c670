package app_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"stayhub/internal/domain"
)

// memStore is an in-memory implementation of every repository port. The
// rating aggregate is re-derived from the verified review set on
// RecomputeRating, mirroring the SQL implementation.
type memStore struct {
	mu       sync.Mutex
	users    map[string]domain.User
	props    map[string]domain.Property
	bookings map[string]domain.Booking
	reviews  map[string]domain.Review
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]domain.User{},
		props:    map[string]domain.Property{},
		bookings: map[string]domain.Booking{},
		reviews:  map[string]domain.Review{},
	}
}

// ---- users ----

func (m *memStore) CreateUser(ctx context.Context, u domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.E(domain.ErrConflict, "email already registered")
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.E(domain.ErrNotFound, "user not found")
}

func (m *memStore) GetUser(ctx context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.E(domain.ErrNotFound, "user not found")
	}
	return u, nil
}

// ---- properties ----

func (m *memStore) CreateProperty(ctx context.Context, p domain.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props[p.ID] = p
	return nil
}

func (m *memStore) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.props[id]
	if !ok {
		return domain.Property{}, domain.E(domain.ErrNotFound, "property not found")
	}
	return p, nil
}

func (m *memStore) RecomputeRating(ctx context.Context, propertyID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.props[propertyID]
	if !ok {
		return domain.E(domain.ErrNotFound, "property not found")
	}
	count, sum := 0, 0
	for _, rv := range m.reviews {
		if rv.PropertyID == propertyID && rv.Verified {
			count++
			sum += rv.Rating
		}
	}
	p.TotalReviews = count
	p.AverageRating = 0
	if count > 0 {
		p.AverageRating = float64(sum) / float64(count)
	}
	m.props[propertyID] = p
	return nil
}

// ---- bookings ----

func (m *memStore) CreateBooking(ctx context.Context, b domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
	return nil
}

func (m *memStore) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.Booking{}, domain.E(domain.ErrNotFound, "booking not found")
	}
	return b, nil
}

func (m *memStore) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return domain.E(domain.ErrNotFound, "booking not found")
	}
	b.Status = status
	m.bookings[id] = b
	return nil
}

func (m *memStore) ListBookingsByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func (m *memStore) ListBookingsByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.bookings {
		if p, ok := m.props[b.PropertyID]; ok && p.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	sortBookings(out)
	return out, nil
}

func sortBookings(bs []domain.Booking) {
	sort.Slice(bs, func(i, j int) bool { return bs[i].CreatedAt.After(bs[j].CreatedAt) })
}

// ---- reviews ----

func (m *memStore) CreateReview(ctx context.Context, rv domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.reviews {
		if existing.BookingID == rv.BookingID {
			return domain.E(domain.ErrConflict, "Review already exists for this booking")
		}
	}
	m.reviews[rv.ID] = rv
	return nil
}

func (m *memStore) GetReview(ctx context.Context, id string) (domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rv, ok := m.reviews[id]
	if !ok {
		return domain.Review{}, domain.E(domain.ErrNotFound, "review not found")
	}
	return rv, nil
}

func (m *memStore) GetReviewByBooking(ctx context.Context, bookingID string) (domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rv := range m.reviews {
		if rv.BookingID == bookingID {
			return rv, nil
		}
	}
	return domain.Review{}, domain.E(domain.ErrNotFound, "review not found")
}

func (m *memStore) UpdateReview(ctx context.Context, rv domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[rv.ID]; !ok {
		return domain.E(domain.ErrNotFound, "review not found")
	}
	m.reviews[rv.ID] = rv
	return nil
}

func (m *memStore) DeleteReview(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return domain.E(domain.ErrNotFound, "review not found")
	}
	delete(m.reviews, id)
	return nil
}

func (m *memStore) IncrementHelpful(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rv, ok := m.reviews[id]
	if !ok {
		return domain.E(domain.ErrNotFound, "review not found")
	}
	rv.Helpful++
	m.reviews[id] = rv
	return nil
}

func (m *memStore) MarkReported(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rv, ok := m.reviews[id]
	if !ok {
		return domain.E(domain.ErrNotFound, "review not found")
	}
	rv.Reported = true
	m.reviews[id] = rv
	return nil
}

func (m *memStore) ListReviewsByProperty(ctx context.Context, propertyID string, pg domain.PageQuery) (domain.ReviewsPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []domain.Review
	for _, rv := range m.reviews {
		if rv.PropertyID == propertyID {
			items = append(items, rv)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	total := len(items)
	off := pg.Offset()
	if off > len(items) {
		off = len(items)
	}
	end := off + pg.Limit
	if end > len(items) {
		end = len(items)
	}
	page := pg.Page
	if page < 1 {
		page = 1
	}
	return domain.ReviewsPage{Items: items[off:end], Page: page, Total: total}, nil
}

func (m *memStore) ReviewedBookings(ctx context.Context, customerID string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]bool{}
	for _, rv := range m.reviews {
		if rv.CustomerID == customerID {
			out[rv.BookingID] = true
		}
	}
	return out, nil
}

// ---- rollups ----

func (m *memStore) RatingsSummary(ctx context.Context, ownerID string) (domain.RatingsSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := domain.RatingsSummary{Histogram: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	total := 0
	for _, rv := range m.reviews {
		p, ok := m.props[rv.PropertyID]
		if !ok || p.OwnerID != ownerID || !rv.Verified {
			continue
		}
		sum.TotalReviews++
		sum.Histogram[rv.Rating]++
		total += rv.Rating
	}
	if sum.TotalReviews > 0 {
		sum.AverageRating = float64(total) / float64(sum.TotalReviews)
	}
	return sum, nil
}

func (m *memStore) RecentReviews(ctx context.Context, ownerID string, limit int) ([]domain.ReviewFeedItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ReviewFeedItem
	for _, rv := range m.reviews {
		p, ok := m.props[rv.PropertyID]
		if !ok || p.OwnerID != ownerID || !rv.Verified || rv.Comment == "" {
			continue
		}
		reviewer := m.users[rv.CustomerID]
		reviewerTotal := 0
		for _, other := range m.reviews {
			if other.CustomerID == rv.CustomerID {
				reviewerTotal++
			}
		}
		out = append(out, domain.ReviewFeedItem{
			ReviewID:      rv.ID,
			PropertyID:    rv.PropertyID,
			PropertyName:  p.Name,
			ReviewerName:  reviewer.Name,
			ReviewerTotal: reviewerTotal,
			Rating:        rv.Rating,
			Comment:       rv.Comment,
			CreatedAt:     rv.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) BookingTotals(ctx context.Context, ownerID string) (domain.BookingTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var t domain.BookingTotals
	for _, b := range m.bookings {
		p, ok := m.props[b.PropertyID]
		if !ok || p.OwnerID != ownerID {
			continue
		}
		t.TotalBookings++
		t.TotalGuests += b.Guests
		t.TotalNights += b.Nights
		if b.Status == domain.BookingConfirmed {
			t.ActiveBookings++
		}
		if b.Status == domain.BookingConfirmed || b.Status == domain.BookingCompleted {
			t.Revenue += b.TotalAmount
		}
	}
	return t, nil
}

func (m *memStore) TotalRooms(ctx context.Context, ownerID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rooms := 0
	for _, p := range m.props {
		if p.OwnerID == ownerID {
			rooms += p.TotalRooms
		}
	}
	return rooms, nil
}

// ---- cache ----

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}
