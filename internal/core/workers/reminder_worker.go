package workers

import (
	"context"
	"log"

	"github.com/stridehq/stride-engine/internal/core/domain"
)

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
}

type ReminderJob struct {
	HabitID string
}

// ReminderWorker serializes reminder schedule regeneration through a single
// background goroutine. Mutating paths enqueue the habit id and move on; the
// worker cancels the habit's previous fire points and issues the fresh set,
// so two overlapping regenerations can never interleave their identifiers.
type ReminderWorker struct {
	habitRepo HabitRepository
	scheduler domain.ReminderScheduler
	jobs      chan ReminderJob
}

func NewReminderWorker(repo HabitRepository, scheduler domain.ReminderScheduler) *ReminderWorker {
	return &ReminderWorker{
		habitRepo: repo,
		scheduler: scheduler,
		jobs:      make(chan ReminderJob, 100),
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Reminder worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Reminder worker shutting down...")
				return
			}
		}
	}()
}

func (w *ReminderWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- ReminderJob{HabitID: habitID}:
	default:
		log.Printf("Reminder worker queue full! Dropping job for habit %s", habitID)
	}
}

func (w *ReminderWorker) processJob(ctx context.Context, job ReminderJob) {
	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		// Habit may have been deleted since the job was queued; make sure
		// its fire points are gone either way.
		if err := w.scheduler.Cancel(ctx, domain.CancelIdentifiers(job.HabitID)); err != nil {
			log.Printf("Worker failed to cancel reminders for %s: %v", job.HabitID, err)
		}
		return
	}

	if err := w.scheduler.Cancel(ctx, domain.CancelIdentifiers(habit.ID)); err != nil {
		log.Printf("Worker failed to cancel reminders for %s: %v", habit.ID, err)
		return
	}

	points := domain.BuildSchedule(habit)
	if len(points) == 0 {
		return
	}

	if err := w.scheduler.Schedule(ctx, points); err != nil {
		log.Printf("Worker failed to schedule reminders for %s: %v", habit.ID, err)
		return
	}

	log.Printf("Reminders refreshed for %s: %d fire points", habit.Name, len(points))
}
