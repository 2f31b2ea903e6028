package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"autohaus-crm/internal/domain/task"
	"autohaus-crm/internal/event"
)

// TaskReminderJob runs every morning and announces open tasks whose
// contact date has arrived. The announcement goes to the event exchange
// so that mail or chat notifiers can pick it up; with no publisher
// configured the job only logs.
type TaskReminderJob struct {
	tasks     task.TaskService
	publisher event.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewTaskReminderJob(tasks task.TaskService, publisher event.EventPublisher, logger *slog.Logger) *TaskReminderJob {
	if tasks == nil || logger == nil {
		panic("TaskReminderJob dependencies cannot be nil")
	}
	return &TaskReminderJob{
		tasks:     tasks,
		publisher: publisher,
		logger:    logger.With("job", "TaskReminder"),
		now:       time.Now,
	}
}

func (j *TaskReminderJob) Run(ctx context.Context) error {
	startTime := j.now()
	today := startTime.Format("2006-01-02")
	j.logger.InfoContext(ctx, "Starting daily task reminder job.", slog.String("date", today))

	dueTasks, err := j.tasks.ListOpenTasksDueOn(ctx, today)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list due tasks, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list open tasks due on %s: %w", today, err)
	}

	if len(dueTasks) == 0 {
		j.logger.InfoContext(ctx, "No open tasks due today.",
			slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var published, failed int
	for _, t := range dueTasks {
		logCtx := j.logger.With(slog.Int64("taskID", t.ID), slog.Int64("assignedTo", t.AssignedTo))
		logCtx.InfoContext(ctx, "Task contact date reached.",
			slog.String("customerName", t.CustomerName), slog.String("datumKontakt", t.DatumKontakt))

		if j.publisher == nil {
			continue
		}
		evt := event.TaskDueEvent{
			Timestamp: j.now(),
			Payload: event.TaskDuePayload{
				TaskID:       t.ID,
				CustomerID:   t.CustomerID,
				CustomerName: t.CustomerName,
				AssignedTo:   t.AssignedTo,
				DatumKontakt: t.DatumKontakt,
			},
		}
		if err := j.publisher.PublishTaskDue(ctx, evt); err != nil {
			logCtx.ErrorContext(ctx, "Failed to publish task due event", slog.Any("error", err))
			failed++
			continue
		}
		published++
	}

	j.logger.InfoContext(ctx, "Task reminder job finished.",
		slog.Int("due", len(dueTasks)),
		slog.Int("published", published),
		slog.Int("failed", failed),
		slog.Duration("duration", time.Since(startTime)))
	return nil
}
