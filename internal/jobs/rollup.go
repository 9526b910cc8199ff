package jobs

import (
	"context"
	"fmt"

	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
)

// RollupReconcileJob rebuilds one profile's daily rollup row from the review
// history, correcting any drift the incremental upsert path accumulated
// (for example after a crash between partial writes).
type RollupReconcileJob struct {
	StatsRepo repository.StatsRepository
	ProfileID int64
	Day       string
}

func (j *RollupReconcileJob) Name() string {
	return fmt.Sprintf("rollup-reconcile profile=%d day=%s", j.ProfileID, j.Day)
}

func (j *RollupReconcileJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug("reconciling rollup")
	return j.StatsRepo.ReconcileDay(ctx, j.ProfileID, j.Day)
}
