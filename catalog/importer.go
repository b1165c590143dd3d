package catalog

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"storefront/models"
	"storefront/repository"
)

// Summary counts the outcome of a batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

// Importer writes catalog batches through a ProductRepository, one product at
// a time. A failed product is logged and counted, never fatal to the batch.
type Importer struct {
	Products repository.ProductRepository
	Log      *zap.Logger
}

// NewImporter creates an Importer that logs through log.
func NewImporter(products repository.ProductRepository, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{Products: products, Log: log}
}

// Import normalises and creates every product.
func (im *Importer) Import(ctx context.Context, products []models.Product) Summary {
	sum := Summary{Total: len(products)}
	for i := range products {
		p := products[i]
		Normalize(&p)
		if err := im.Products.Create(ctx, &p); err != nil {
			im.Log.Error("create product failed", zap.String("name", p.Name), zap.Error(err))
			sum.Failed++
			continue
		}
		im.Log.Info("created product", zap.String("name", p.Name), zap.String("documentId", p.DocumentID))
		sum.Succeeded++
	}
	return sum
}

// Seed imports products only into an empty catalog.
func (im *Importer) Seed(ctx context.Context, products []models.Product) (Summary, error) {
	n, err := im.Products.Count(ctx)
	if err != nil {
		return Summary{}, errors.Wrap(err, "seed")
	}
	if n > 0 {
		im.Log.Info("catalog already populated", zap.Int64("products", n))
		return Summary{Total: len(products), Skipped: len(products)}, nil
	}
	return im.Import(ctx, products), nil
}

// Migrate rewrites legacy values on every stored product.
func (im *Importer) Migrate(ctx context.Context) (Summary, error) {
	products, err := im.Products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return Summary{}, errors.Wrap(err, "migrate")
	}
	sum := Summary{Total: len(products)}
	for _, p := range products {
		changes := Normalize(&p)
		if len(changes) == 0 {
			sum.Skipped++
			continue
		}
		for _, c := range changes {
			im.Log.Info("normalise", zap.String("name", p.Name), zap.Stringer("change", c))
		}
		if err := im.Products.Update(ctx, p.DocumentID, p); err != nil {
			im.Log.Error("update product failed", zap.String("documentId", p.DocumentID), zap.Error(err))
			sum.Failed++
			continue
		}
		sum.Succeeded++
	}
	return sum, nil
}

// Purge deletes the whole catalog.
func (im *Importer) Purge(ctx context.Context) (int64, error) {
	n, err := im.Products.DeleteAll(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "purge")
	}
	im.Log.Info("deleted products", zap.Int64("count", n))
	return n, nil
}
