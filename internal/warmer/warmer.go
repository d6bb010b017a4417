// Package warmer periodically repopulates the fixed-key caches (full
// product list, best sellers) shortly before their hour-long TTL lapses, so
// storefront landing pages rarely pay the cold-read penalty. Per-product
// and search keys are left alone: their staleness windows are part of the
// caching contract.
package warmer

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tearoma/tearoma-api/internal/usecase"
)

type Warmer struct {
	catalog     *usecase.CatalogUsecase
	bestSellers *usecase.BestSellerUsecase
	logger      *slog.Logger
	cron        *cron.Cron
}

func New(catalog *usecase.CatalogUsecase, bestSellers *usecase.BestSellerUsecase, logger *slog.Logger) *Warmer {
	return &Warmer{
		catalog:     catalog,
		bestSellers: bestSellers,
		logger:      logger.With("component", "warmer"),
		cron:        cron.New(),
	}
}

// Start warms immediately and then every 55 minutes, just inside the
// one-hour TTL of the keys it refreshes.
func (w *Warmer) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc("@every 55m", func() { w.warm(ctx) }); err != nil {
		return err
	}
	go w.warm(ctx)
	w.cron.Start()
	return nil
}

func (w *Warmer) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Warmer) warm(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := w.catalog.RefreshProductList(warmCtx); err != nil {
		w.logger.Warn("warm product list", "error", err)
	}
	if err := w.bestSellers.Refresh(warmCtx); err != nil {
		w.logger.Warn("warm best sellers", "error", err)
	}
	w.logger.Debug("cache warm cycle complete")
}
