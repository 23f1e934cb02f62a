package ports

import (
	"context"

	"github.com/servicehub/marketplace/internal/core/domain"
)

type DirectoryService interface {
	Search(ctx context.Context, filter domain.ProviderFilter) ([]*domain.Provider, error)
	Get(ctx context.Context, providerID string) (*domain.Provider, error)
}
