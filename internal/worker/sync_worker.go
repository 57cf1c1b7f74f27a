package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SheetsMirror is the external sheet the worker keeps in step with the
// reservations table.
type SheetsMirror interface {
	AppendReservation(ctx context.Context, detail *models.ReservationDetail) error
	ReplaceAllReservations(ctx context.Context, details []models.ReservationDetail) error
}

// SyncWorker drains the sync_queue table and mirrors reservations to the
// sheet. Tasks ride a Redis list when available, with the local channel and
// DB polling as fallbacks, so a restart never loses a committed task.
type SyncWorker struct {
	db            *database.DB
	mirror        SheetsMirror
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan models.SyncTask
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	batchSize     int
	logger        *zerolog.Logger
}

func NewSyncWorker(db *database.DB, mirror SheetsMirror, redisClient *redis.Client, retry RetryPolicy, pollInterval time.Duration, logger *zerolog.Logger) *SyncWorker {
	if retry.MaxRetries == 0 {
		retry = DefaultRetryPolicy(retry.MaxRetries)
	}
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	return &SyncWorker{
		db:            db,
		mirror:        mirror,
		redis:         redisClient,
		retryPolicy:   retry,
		queue:         make(chan models.SyncTask, models.WorkerQueueSize),
		redisQueueKey: "sheets:queue",
		deadLetterKey: "sheets:deadletter",
		pollInterval:  pollInterval,
		batchSize:     20,
		logger:        logger,
	}
}

// EnqueueAppend schedules one reservation row append.
func (w *SyncWorker) EnqueueAppend(ctx context.Context, detail *models.ReservationDetail) error {
	if detail == nil || detail.ReservationID == 0 {
		return errors.New("reservation detail is required")
	}

	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	task := models.SyncTask{
		TaskType:      models.SyncTaskAppend,
		ReservationID: detail.ReservationID,
		Payload:       string(payload),
		Status:        "pending",
	}
	return w.enqueue(ctx, task)
}

// EnqueueReplaceAll schedules a full sheet rewrite from the database.
func (w *SyncWorker) EnqueueReplaceAll(ctx context.Context) error {
	task := models.SyncTask{
		TaskType: models.SyncTaskReplace,
		Payload:  "{}",
		Status:   "pending",
	}
	return w.enqueue(ctx, task)
}

func (w *SyncWorker) enqueue(ctx context.Context, task models.SyncTask) error {
	if err := w.db.CreateSyncTask(ctx, &task); err != nil {
		return fmt.Errorf("persist sync task: %w", err)
	}

	// Redis первым, очередь в памяти как запасной вариант
	if w.redis != nil {
		if err := w.pushRedis(ctx, task); err != nil {
			w.logger.Warn().Err(err).Msg("Redis push failed, falling back to memory queue")
		} else {
			return nil
		}
	}

	select {
	case w.queue <- task:
	default:
		w.logger.Warn().Int64("task_id", task.ID).Msg("In-memory queue full, task left to DB polling")
	}

	return nil
}

// Start runs the main loop until ctx is cancelled.
func (w *SyncWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("Sync worker started")
	defer w.logger.Info().Msg("Sync worker stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if t, ok := w.tryLocalQueue(); ok {
			w.processTask(ctx, &t)
			continue
		}

		if t, ok := w.tryRedis(ctx); ok {
			w.processTask(ctx, &t)
			continue
		}

		tasks, err := w.db.GetPendingSyncTasks(ctx, w.batchSize)
		if err != nil {
			w.logger.Error().Err(err).Msg("Failed to fetch pending sync tasks")
			w.sleep(ctx)
			continue
		}
		if len(tasks) == 0 {
			w.sleep(ctx)
			continue
		}

		for i := range tasks {
			w.processTask(ctx, &tasks[i])
		}
	}
}

func (w *SyncWorker) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(w.pollInterval):
	}
}

func (w *SyncWorker) tryLocalQueue() (models.SyncTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return models.SyncTask{}, false
	}
}

func (w *SyncWorker) tryRedis(ctx context.Context) (models.SyncTask, bool) {
	if w.redis == nil {
		return models.SyncTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			w.logger.Error().Err(err).Msg("Redis BRPOP error")
		}
		return models.SyncTask{}, false
	}
	if len(res) != 2 {
		return models.SyncTask{}, false
	}
	var task models.SyncTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.logger.Error().Err(err).Msg("Failed to decode redis task")
		return models.SyncTask{}, false
	}
	return task, true
}

func (w *SyncWorker) processTask(ctx context.Context, task *models.SyncTask) {
	if err := w.handleTask(ctx, task); err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}

	if err := w.db.MarkSyncTaskCompleted(ctx, task.ID); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("Failed to mark sync task completed")
	}
}

func (w *SyncWorker) handleTask(ctx context.Context, task *models.SyncTask) error {
	switch task.TaskType {
	case models.SyncTaskAppend:
		var detail models.ReservationDetail
		if err := json.Unmarshal([]byte(task.Payload), &detail); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		if detail.ReservationID == 0 {
			return errors.New("reservation payload missing")
		}
		return w.mirror.AppendReservation(ctx, &detail)

	case models.SyncTaskReplace:
		details, err := w.db.ListReservations(ctx)
		if err != nil {
			return fmt.Errorf("load reservations: %w", err)
		}
		return w.mirror.ReplaceAllReservations(ctx, details)

	default:
		return fmt.Errorf("unknown task type: %s", task.TaskType)
	}
}

func (w *SyncWorker) retryOrFail(ctx context.Context, task *models.SyncTask, cause error) {
	attempt := task.RetryCount + 1
	nextRetry := time.Now().Add(w.retryPolicy.NextDelay(attempt))

	if err := w.db.MarkSyncTaskFailed(ctx, task.ID, attempt, w.retryPolicy.MaxRetries, cause.Error(), nextRetry); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("Failed to reschedule sync task")
		return
	}

	if attempt >= w.retryPolicy.MaxRetries {
		w.logger.Error().Err(cause).Int64("task_id", task.ID).Msg("Sync task dead-lettered")
		w.pushDeadLetter(ctx, task)
	}
}

func (w *SyncWorker) pushRedis(ctx context.Context, task models.SyncTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, w.redisQueueKey, data).Err()
}

func (w *SyncWorker) pushDeadLetter(ctx context.Context, task *models.SyncTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("Failed to encode dead-letter task")
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("Failed to push dead-letter task")
	}
}
