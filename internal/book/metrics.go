package book

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterMetrics exposes the catalog size as a gauge.
func RegisterMetrics(reg prometheus.Registerer, svc *Service) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "catalog_books",
		Help: "Number of books currently in the catalog.",
	}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		n, err := svc.Count(ctx)
		if err != nil {
			slog.Warn("catalog size metric", "err", err)
			return 0
		}
		return float64(n)
	}))
}
