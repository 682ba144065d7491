// internal/domain/catalog/service.go
package catalog

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/infrastructure/datastore"
)

// Service loads catalog snapshots from the datastore
type Service struct {
	logger *logrus.Logger
}

// NewService creates a new catalog service
func NewService(logger *logrus.Logger) *Service {
	return &Service{logger: logger}
}

// Load reads categories, products and sides and builds a snapshot.
// Failures of a single table degrade to defaults; only context
// cancellation is returned as an error.
func (s *Service) Load(ctx context.Context, reader datastore.Reader) (*Snapshot, error) {
	snap := EmptySnapshot()

	rows, err := reader.ReadRows(ctx, datastore.TableCategories)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WithError(err).Warn("Failed to load categories, using defaults")
	}
	snap.Categories = ParseCategories(rows)
	if len(snap.Categories) == 0 {
		snap.Categories = DefaultCategories()
	}

	var products []Product
	rows, err = reader.ReadRows(ctx, datastore.TableProducts)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WithError(err).Warn("Failed to load products")
	} else {
		products = ParseProducts(rows)
	}
	snap.Products = GroupProducts(snap.Categories, products)

	rows, err = reader.ReadRows(ctx, datastore.TableSides)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WithError(err).Warn("Failed to load side options, using defaults")
	}
	snap.Sides = ParseSides(rows)
	if len(snap.Sides) == 0 {
		snap.Sides = DefaultSides()
	}

	s.logger.WithFields(logrus.Fields{
		"categories": len(snap.Categories),
		"products":   len(products),
		"sides":      len(snap.Sides),
	}).Info("Catalog loaded")

	return snap, nil
}
