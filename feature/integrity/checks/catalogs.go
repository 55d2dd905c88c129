package checks

import (
	"context"
	"fmt"

	"catalog-manager/feature/catalog/store"
)

// CatalogReport describes the state of the signature catalogs.
type CatalogReport struct {
	Missing []string         `json:"missing"`
	Empty   []string         `json:"empty"`
	Files   map[string]int64 `json:"files"`
}

// CheckCatalogs reports the default catalogs that were never seeded and the catalogs
// that have no imported catalog file yet.
func CheckCatalogs(ctx context.Context, s *store.Store) (*CatalogReport, error) {
	if s == nil {
		return nil, fmt.Errorf("database is not configured")
	}
	catalogs, err := s.ListCatalogs(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.CountCatalogFiles(ctx)
	if err != nil {
		return nil, err
	}

	report := &CatalogReport{Missing: []string{}, Empty: []string{}, Files: map[string]int64{}}
	known := make(map[string]bool, len(catalogs))
	for _, c := range catalogs {
		known[c.Name] = true
		n := counts[c.ID]
		report.Files[c.Name] = n
		if n == 0 {
			report.Empty = append(report.Empty, c.Name)
		}
	}
	for _, c := range store.DefaultCatalogs() {
		if !known[c.Name] {
			report.Missing = append(report.Missing, c.Name)
		}
	}
	return report, nil
}
