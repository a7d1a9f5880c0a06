package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"employee-records/models"

	"github.com/google/uuid"
)

var (
	ErrQueueFull     = errors.New("job queue is full")
	ErrWorkerStopped = errors.New("job worker is not running")
	ErrUnknownKind   = errors.New("unknown job kind")
)

const (
	DefaultQueueSize = 8

	// DefaultJobRetention is how many finished jobs stay visible to Get
	DefaultJobRetention = 100
)

// Repository is the part of the employee repository the bulk jobs need
type Repository interface {
	Create(ctx context.Context, e models.Employee) (models.Employee, error)
	ListAll(ctx context.Context) ([]models.Employee, error)
	Delete(ctx context.Context, id string) error
}

// Coordinator runs a job while page loads are held back
type Coordinator interface {
	RunExclusive(ctx context.Context, fn func(context.Context) error) error
}

// Worker executes bulk jobs one at a time in the background.
// See bulk.go for the seed and purge operations.
type Worker struct {
	repo   Repository
	pages  Coordinator
	logger *slog.Logger
	now    func() time.Time

	queue    chan *Job
	jobs     map[string]*Job
	finished []string // IDs of finished jobs, oldest first
	retain   int
	running  bool
	mu       sync.Mutex
	stopChan chan struct{}
	done     chan struct{}
}

// NewWorker creates a new job worker instance
func NewWorker(repo Repository, pages Coordinator, queueSize int, logger *slog.Logger) *Worker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Worker{
		repo:   repo,
		pages:  pages,
		logger: logger,
		now:    time.Now,
		queue:  make(chan *Job, queueSize),
		jobs:   make(map[string]*Job),
		retain: DefaultJobRetention,
	}
}

// Start begins processing queued jobs
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.running = true
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	w.logger.Info("starting job worker", "queue_size", cap(w.queue))

	go w.run(w.stopChan, w.done)
}

// Stop waits for the running job to finish and stops the worker. Jobs still
// queued stay queued until the next Start.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.logger.Info("stopping job worker")
	close(w.stopChan)
	w.running = false
	done := w.done
	w.mu.Unlock()

	<-done
}

// Submit queues a job. Count is ignored for purge jobs.
func (w *Worker) Submit(kind Kind, count int) (*Job, error) {
	if kind != KindSeed && kind != KindPurge {
		return nil, ErrUnknownKind
	}
	if kind == KindPurge {
		count = 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil, ErrWorkerStopped
	}

	job := &Job{
		ID:        uuid.New().String(),
		Kind:      kind,
		Count:     count,
		Status:    StatusQueued,
		CreatedAt: w.now(),
	}

	select {
	case w.queue <- job:
	default:
		return nil, ErrQueueFull
	}

	w.jobs[job.ID] = job
	w.logger.Info("job queued", "job_id", job.ID, "kind", kind, "count", count)

	snapshot := *job
	return &snapshot, nil
}

// Get returns a copy of the job, or nil if the ID is unknown. Only the most
// recent finished jobs are kept.
func (w *Worker) Get(id string) *Job {
	w.mu.Lock()
	defer w.mu.Unlock()

	job, ok := w.jobs[id]
	if !ok {
		return nil
	}
	snapshot := *job
	return &snapshot
}

// run is the main worker loop
func (w *Worker) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		// a stop request wins over queued work
		select {
		case <-stop:
			return
		default:
		}

		select {
		case job := <-w.queue:
			w.execute(job)
		case <-stop:
			return
		}
	}
}

func (w *Worker) execute(job *Job) {
	started := w.now()
	w.update(job, func(j *Job) {
		j.Status = StatusRunning
		j.StartedAt = &started
	})
	w.logger.Info("job started", "job_id", job.ID, "kind", job.Kind)

	err := w.pages.RunExclusive(context.Background(), func(ctx context.Context) error {
		switch job.Kind {
		case KindSeed:
			return w.seed(ctx, job)
		case KindPurge:
			return w.purge(ctx, job)
		}
		return ErrUnknownKind
	})

	finished := w.now()
	var processed int
	w.update(job, func(j *Job) {
		j.FinishedAt = &finished
		processed = j.Processed
		if err != nil {
			j.Status = StatusFailed
			j.Error = err.Error()
		} else {
			j.Status = StatusDone
		}
		w.retire(j.ID)
	})

	if err != nil {
		w.logger.Error("job failed", "job_id", job.ID, "kind", job.Kind, "processed", processed, "error", err)
		return
	}
	w.logger.Info("job finished", "job_id", job.ID, "kind", job.Kind,
		"processed", processed, "duration", finished.Sub(started))
}

// retire records a finished job and forgets the oldest ones past the
// retention limit. Callers hold w.mu.
func (w *Worker) retire(id string) {
	w.finished = append(w.finished, id)
	for len(w.finished) > w.retain {
		delete(w.jobs, w.finished[0])
		w.finished = w.finished[1:]
	}
}

func (w *Worker) update(job *Job, fn func(*Job)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(job)
}
