package server

import (
	"context"

	"github.com/nandini/ppi-explorer/internal/dataset"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// DatasetHealthService verifies the dataset handle as part of health checks.
type DatasetHealthService struct {
	Store *dataset.Store
}

// Probe implements the HealthService interface.
func (s DatasetHealthService) Probe(ctx context.Context) error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Ping(ctx)
}
