package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

// DirectoryService answers provider discovery queries.
type DirectoryService struct {
	providers ports.ProviderRepository
}

func NewDirectoryService(providers ports.ProviderRepository) *DirectoryService {
	return &DirectoryService{providers: providers}
}

// Search returns discoverable providers in store order.
func (s *DirectoryService) Search(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error) {
	filter.ServiceType = strings.TrimSpace(filter.ServiceType)
	filter.City = strings.TrimSpace(filter.City)
	filter.Pincode = strings.TrimSpace(filter.Pincode)

	out, err := s.providers.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}
	return out, nil
}

func (s *DirectoryService) Get(ctx context.Context, providerID string) (*domain.Provider, error) {
	p, err := s.providers.FindByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}
