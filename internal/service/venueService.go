package service

import (
	"context"
	"fmt"

	repository "github.com/actionhub-org/HappyFox-practice/internal/database/mongo"
	"github.com/actionhub-org/HappyFox-practice/internal/entity"
)

type venueService struct {
	venueRepo repository.VenueRepository
}

// NewVenueService creates a new instance of VenueService
func NewVenueService(venueRepo repository.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) List(ctx context.Context) ([]*entity.Venue, error) {
	venues, err := s.venueRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

// Simulate replaces all venues with the standard campus set, used for
// demos and integration environments.
func (s *venueService) Simulate(ctx context.Context) ([]*entity.Venue, error) {
	simulated := []*entity.Venue{
		{Name: "Main Auditorium", Capacity: 200},
		{Name: "Seminar Hall", Capacity: 100},
		{Name: "Open Ground", Capacity: 500},
		{Name: "Conference Room", Capacity: 50},
		{Name: "Mini Auditorium", Capacity: 80},
	}
	if err := s.venueRepo.ReplaceAll(ctx, simulated); err != nil {
		return nil, fmt.Errorf("failed to simulate venues: %w", err)
	}
	return simulated, nil
}
