// Package job contains the background jobs run by the web server's cron
// scheduler.
package job

import (
	"github.com/simtrack/simtrack/database"
	"github.com/simtrack/simtrack/logger"
)

type DBCheckpointJob struct{}

func NewDBCheckpointJob() *DBCheckpointJob {
	return new(DBCheckpointJob)
}

// Run flushes the sqlite WAL so the main database file stays current.
func (j *DBCheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("db checkpoint job err:", err)
	}
}
