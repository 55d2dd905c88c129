package integrity

import (
	"context"
	"fmt"

	"catalog-manager/core/storage"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"
	"catalog-manager/feature/integrity/checks"

	"go.uber.org/zap"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	store   *store.Store
	logger  *zap.Logger
}

// NewService creates a new integrity service. client may be nil when object storage is
// not configured; the structure checks then report an error.
func NewService(client storage.Client, bucket string, folders []string, s *store.Store, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		folders: folders,
		store:   s,
		logger:  logger,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckCatalogs reports unseeded and empty signature catalogs.
func (s *Service) CheckCatalogs(ctx context.Context) (*checks.CatalogReport, error) {
	return checks.CheckCatalogs(ctx, s.store)
}

// CheckServer compares the live schema with the catalog models.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("database is not configured")
	}
	return checks.CheckServerIntegrity(s.store.DB(), models.All()...)
}

// MatchingReport is the mapping coverage per owner kind.
type MatchingReport struct {
	Provider models.Provider   `json:"provider"`
	Counts   store.MatchCounts `json:"counts"`
}

// CheckMatching returns how many publishers, platforms and games are matched, failed or
// pending for the IGDB provider.
func (s *Service) CheckMatching(ctx context.Context) (*MatchingReport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("database is not configured")
	}
	counts, err := s.store.CountMappings(ctx, models.ProviderIGDB)
	if err != nil {
		return nil, err
	}
	return &MatchingReport{Provider: models.ProviderIGDB, Counts: counts}, nil
}
