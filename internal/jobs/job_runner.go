package jobs

import (
	"database/sql"

	"fleetride-backend/internal/config"
	"fleetride-backend/internal/logger"
	"fleetride-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs. Jobs only remind and notify;
// booking transitions stay actor-initiated.
type JobRunner struct {
	db       *sql.DB
	users    service.UserDirectory
	emailSvc service.EmailService
	config   *config.Config
}

func NewJobRunner(db *sql.DB, users service.UserDirectory, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:       db,
		users:    users,
		emailSvc: emailSvc,
		config:   cfg,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllDailyJobs runs all daily jobs (for manual execution)
func (jr *JobRunner) RunAllDailyJobs() {
	jr.SendPickupReminders()
	jr.SendReturnReminders()
}
