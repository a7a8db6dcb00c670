package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stayhub/internal/domain"
)

func propertyKey(id string) string { return fmt.Sprintf("property:%s", id) }
func reviewsKey(id string, page, limit int) string {
	return fmt.Sprintf("property_reviews:%s:%d:%d", id, page, limit)
}

// QueryService serves the public cached reads: property views (with the
// rating aggregate) and paginated property review feeds.
type QueryService struct {
	properties domain.PropertyRepository
	reviews    domain.ReviewRepository
	cache      domain.Cache
	cacheTTL   time.Duration
}

func NewQueryService(p domain.PropertyRepository, r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{properties: p, reviews: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetProperty(ctx context.Context, id string) (domain.Property, error) {
	key := propertyKey(id)
	var pv domain.Property
	if ok, _ := s.cache.Get(ctx, key, &pv); ok {
		return pv, nil
	}
	p, err := s.properties.GetProperty(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	return p, nil
}

func (s *QueryService) ListPropertyReviews(ctx context.Context, propertyID string, pg domain.PageQuery) (domain.ReviewsPage, error) {
	key := reviewsKey(propertyID, pg.Page, pg.Limit)
	var out domain.ReviewsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	rs, err := s.reviews.ListReviewsByProperty(ctx, propertyID, pg)
	if err != nil {
		return domain.ReviewsPage{}, err
	}

	// copy slice to avoid aliasing the repo's backing array (prevents tests
	// from mutating cached value)
	copyRS := deepCopyReviewsPage(rs)

	// optional size guard
	if b, _ := json.Marshal(copyRS); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, copyRS, int(s.cacheTTL.Seconds()))
	}
	return copyRS, nil
}

func deepCopyReviewsPage(in domain.ReviewsPage) domain.ReviewsPage {
	out := domain.ReviewsPage{Page: in.Page, Total: in.Total}
	if n := len(in.Items); n > 0 {
		out.Items = make([]domain.Review, n)
		copy(out.Items, in.Items)
	}
	return out
}
