package domain

import "time"

// Property is a hotel listing. AverageRating and TotalReviews are the cached
// rating aggregate, recomputed from the verified review set after every
// review mutation.
type Property struct {
	ID            string
	OwnerID       string
	Name          string
	City          string
	BaseRate      int64
	TotalRooms    int
	Active        bool
	AverageRating float64
	TotalReviews  int
	CreatedAt     time.Time
}
