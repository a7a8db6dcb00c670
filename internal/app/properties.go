package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/domain"
)

type PropertyService struct {
	properties domain.PropertyRepository
}

func NewPropertyService(p domain.PropertyRepository) *PropertyService {
	return &PropertyService{properties: p}
}

type CreatePropertyInput struct {
	Name       string `json:"name" validate:"required"`
	City       string `json:"city" validate:"required"`
	BaseRate   int64  `json:"baseRate" validate:"required,min=1"`
	TotalRooms int    `json:"totalRooms" validate:"required,min=1"`
}

func (s *PropertyService) Create(ctx context.Context, ownerID string, in CreatePropertyInput) (domain.Property, error) {
	p := domain.Property{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       strings.TrimSpace(in.Name),
		City:       strings.TrimSpace(in.City),
		BaseRate:   in.BaseRate,
		TotalRooms: in.TotalRooms,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.properties.CreateProperty(ctx, p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}
