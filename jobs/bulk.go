package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"employee-records/database"
	"employee-records/models"
)

type Kind string

const (
	KindSeed  Kind = "seed"
	KindPurge Kind = "purge"
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job is one bulk operation and its progress
type Job struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	Count      int        `json:"count"`
	Processed  int        `json:"processed"`
	Status     Status     `json:"status"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// SeedEmployee builds the n-th generated employee
func SeedEmployee(n int, now time.Time) models.Employee {
	return models.Employee{
		Name:           fmt.Sprintf("Employee %d", n),
		Email:          fmt.Sprintf("employee%d@example.com", n),
		Birthday:       now,
		Gender:         models.GenderMale,
		Department:     models.DepartmentEngineering,
		JoinDate:       now,
		EmployeeNumber: fmt.Sprintf("E%d", n),
		Notes:          fmt.Sprintf("Note %d", n),
	}
}

// seed inserts job.Count generated employees numbered from 1
func (w *Worker) seed(ctx context.Context, job *Job) error {
	for n := 1; n <= job.Count; n++ {
		if _, err := w.repo.Create(ctx, SeedEmployee(n, w.now())); err != nil {
			return fmt.Errorf("seed employee %d: %w", n, err)
		}
		w.update(job, func(j *Job) { j.Processed = n })
	}
	return nil
}

// purge deletes every employee, one at a time
func (w *Worker) purge(ctx context.Context, job *Job) error {
	all, err := w.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}

	w.update(job, func(j *Job) { j.Count = len(all) })

	for i, e := range all {
		// already gone is fine
		if err := w.repo.Delete(ctx, e.ID); err != nil && !errors.Is(err, database.ErrEmployeeNotFound) {
			return fmt.Errorf("delete employee %s: %w", e.ID, err)
		}
		w.update(job, func(j *Job) { j.Processed = i + 1 })
	}
	return nil
}
