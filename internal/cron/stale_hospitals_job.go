package cron

import (
	"context"
	"fmt"

	"github.com/districthealth/medavail-backend/pkg/logger"
	"github.com/districthealth/medavail-backend/pkg/metrics"
)

// StaleHospitalsJobName identifies the sweep in logs and metrics.
const StaleHospitalsJobName = "stale-hospitals"

type StaleHospitalsJobParams struct {
	Logger  *logger.Logger
	Stats   staleFinder
	Metrics *metrics.InventoryMetrics
}

type staleFinder interface {
	StaleHospitals(ctx context.Context) ([]string, error)
}

// NewStaleHospitalsJob builds the job that reports hospitals past the stale
// threshold.
func NewStaleHospitalsJob(params StaleHospitalsJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Stats == nil {
		return nil, fmt.Errorf("stats service required")
	}
	return &staleHospitalsJob{
		logg:    params.Logger,
		stats:   params.Stats,
		metrics: params.Metrics,
	}, nil
}

type staleHospitalsJob struct {
	logg    *logger.Logger
	stats   staleFinder
	metrics *metrics.InventoryMetrics
}

func (j *staleHospitalsJob) Name() string { return StaleHospitalsJobName }

func (j *staleHospitalsJob) Run(ctx context.Context) error {
	names, err := j.stats.StaleHospitals(ctx)
	if err != nil {
		return fmt.Errorf("find stale hospitals: %w", err)
	}
	j.metrics.SetStaleHospitals(len(names))

	ctx = j.logg.WithField(ctx, "stale_count", len(names))
	if len(names) == 0 {
		j.logg.Info(ctx, "no stale hospitals")
		return nil
	}
	ctx = j.logg.WithField(ctx, "hospitals", names)
	j.logg.Warn(ctx, "hospitals overdue for inventory update")
	return nil
}
