package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/SiphoYawe/Laurel-sub000/internal/jobs"
	"github.com/SiphoYawe/Laurel-sub000/internal/logger"
	"github.com/SiphoYawe/Laurel-sub000/internal/repository"
	"github.com/SiphoYawe/Laurel-sub000/internal/worker"
)

// Scheduler runs the recurring maintenance tasks: once a day it enqueues a
// rollup reconciliation job for every profile, covering the previous UTC
// day so late writes are folded in.
type Scheduler struct {
	cron        *gocron.Scheduler
	pool        *worker.Pool
	profileRepo repository.ProfileRepository
	statsRepo   repository.StatsRepository
	log         *logger.Logger
}

// New creates a scheduler that reconciles rollups at the given UTC hour.
func New(pool *worker.Pool, profileRepo repository.ProfileRepository, statsRepo repository.StatsRepository) *Scheduler {
	return &Scheduler{
		cron:        gocron.NewScheduler(time.UTC),
		pool:        pool,
		profileRepo: profileRepo,
		statsRepo:   statsRepo,
		log:         logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the daily reconcile task and begins running it.
func (s *Scheduler) Start(hourUTC int) error {
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = 3
	}
	at := time.Date(0, 1, 1, hourUTC, 0, 0, 0, time.UTC).Format("15:04")
	if _, err := s.cron.Every(1).Day().At(at).Do(s.enqueueReconciles); err != nil {
		return err
	}
	s.cron.StartAsync()
	s.log.Info("daily rollup reconcile scheduled at %s UTC", at)
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) enqueueReconciles() {
	ctx := context.Background()
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		s.log.Error("failed to list profiles for reconcile: %v", err)
		return
	}

	for _, p := range profiles {
		job := &jobs.RollupReconcileJob{
			StatsRepo: s.statsRepo,
			ProfileID: p.ID,
			Day:       yesterday,
		}
		if !s.pool.TrySubmit(job) {
			s.log.Warn("reconcile job dropped for profile %d", p.ID)
		}
	}
	s.log.Debug("enqueued reconcile jobs for %d profiles, day=%s", len(profiles), yesterday)
}
