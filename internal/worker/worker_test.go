package worker

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMirror struct {
	err          error
	appendCalls  int
	replaceCalls int
	lastDetail   *models.ReservationDetail
	lastDetails  []models.ReservationDetail
}

func (f *fakeMirror) AppendReservation(ctx context.Context, detail *models.ReservationDetail) error {
	f.appendCalls++
	f.lastDetail = detail
	return f.err
}

func (f *fakeMirror) ReplaceAllReservations(ctx context.Context, details []models.ReservationDetail) error {
	f.replaceCalls++
	f.lastDetails = details
	return f.err
}

func newWorkerDB(t *testing.T) *database.DB {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Seed(context.Background()))
	return db
}

func newTestWorker(db *database.DB, mirror SheetsMirror, retry RetryPolicy) *SyncWorker {
	logger := zerolog.Nop()
	return NewSyncWorker(db, mirror, nil, retry, time.Second, &logger)
}

func loadTaskStatus(t *testing.T, db *database.DB, id int64) (string, int, sql.NullTime) {
	t.Helper()
	var (
		status     string
		retryCount int
		nextRetry  sql.NullTime
	)
	err := db.QueryRow(`SELECT status, retry_count, next_retry_at FROM sync_queue WHERE id = ?`, id).
		Scan(&status, &retryCount, &nextRetry)
	require.NoError(t, err)
	return status, retryCount, nextRetry
}

func testDetail() *models.ReservationDetail {
	return &models.ReservationDetail{
		ReservationID: 1,
		ClientName:    "Jean Dupont",
		City:          "Paris",
		Arrival:       time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Departure:     time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		RoomNumber:    201,
		RoomType:      "Simple",
	}
}

func TestProcessAppendSuccess(t *testing.T) {
	db := newWorkerDB(t)
	mirror := &fakeMirror{}
	w := newTestWorker(db, mirror, RetryPolicy{})
	ctx := context.Background()

	require.NoError(t, w.EnqueueAppend(ctx, testDetail()))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	status, retryCount, nextRetry := loadTaskStatus(t, db, task.ID)
	assert.Equal(t, "completed", status)
	assert.Equal(t, 0, retryCount)
	assert.False(t, nextRetry.Valid)

	require.Equal(t, 1, mirror.appendCalls)
	assert.Equal(t, "Jean Dupont", mirror.lastDetail.ClientName)
}

func TestProcessReplaceAll(t *testing.T) {
	db := newWorkerDB(t)
	mirror := &fakeMirror{}
	w := newTestWorker(db, mirror, RetryPolicy{})
	ctx := context.Background()

	require.NoError(t, w.EnqueueReplaceAll(ctx))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	status, _, _ := loadTaskStatus(t, db, task.ID)
	assert.Equal(t, "completed", status)
	require.Equal(t, 1, mirror.replaceCalls)
	assert.Len(t, mirror.lastDetails, 8)
}

func TestProcessTaskRetry(t *testing.T) {
	db := newWorkerDB(t)
	mirror := &fakeMirror{err: errors.New("sheet unavailable")}
	w := newTestWorker(db, mirror, RetryPolicy{MaxRetries: 3, InitialDelay: time.Second})
	ctx := context.Background()

	require.NoError(t, w.EnqueueAppend(ctx, testDetail()))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)
	w.processTask(ctx, &task)

	status, retryCount, nextRetry := loadTaskStatus(t, db, task.ID)
	assert.Equal(t, "retry", status)
	assert.Equal(t, 1, retryCount)
	require.True(t, nextRetry.Valid)
	assert.True(t, nextRetry.Time.After(time.Now()))
}

func TestProcessTaskDeadLetter(t *testing.T) {
	db := newWorkerDB(t)
	mirror := &fakeMirror{err: errors.New("sheet unavailable")}
	w := newTestWorker(db, mirror, RetryPolicy{MaxRetries: 2, InitialDelay: time.Millisecond})
	ctx := context.Background()

	require.NoError(t, w.EnqueueAppend(ctx, testDetail()))

	task, ok := w.tryLocalQueue()
	require.True(t, ok)

	// Attempt 1 schedules a retry, attempt 2 exhausts the budget.
	w.processTask(ctx, &task)
	task.RetryCount = 1
	w.processTask(ctx, &task)

	status, retryCount, _ := loadTaskStatus(t, db, task.ID)
	assert.Equal(t, "failed", status)
	assert.Equal(t, 2, retryCount)
}

func TestEnqueueAppendValidation(t *testing.T) {
	db := newWorkerDB(t)
	w := newTestWorker(db, &fakeMirror{}, RetryPolicy{})

	assert.Error(t, w.EnqueueAppend(context.Background(), nil))
	assert.Error(t, w.EnqueueAppend(context.Background(), &models.ReservationDetail{}))
}

func TestUnknownTaskType(t *testing.T) {
	db := newWorkerDB(t)
	mirror := &fakeMirror{}
	w := newTestWorker(db, mirror, RetryPolicy{MaxRetries: 1})
	ctx := context.Background()

	task := models.SyncTask{TaskType: "bogus", Payload: "{}", Status: "pending"}
	require.NoError(t, db.CreateSyncTask(ctx, &task))

	w.processTask(ctx, &task)

	status, _, _ := loadTaskStatus(t, db, task.ID)
	assert.Equal(t, "failed", status)
	assert.Zero(t, mirror.appendCalls)
}

func TestRetryPolicyNextDelay(t *testing.T) {
	p := RetryPolicy{MaxRetries: 5, InitialDelay: time.Second, MaxDelay: 10 * time.Second, BackoffFactor: 2}

	assert.Equal(t, time.Second, p.NextDelay(1))
	assert.Equal(t, 2*time.Second, p.NextDelay(2))
	assert.Equal(t, 8*time.Second, p.NextDelay(4))
	assert.Equal(t, 10*time.Second, p.NextDelay(10))

	// Zero-value policy still yields sane delays.
	var zero RetryPolicy
	assert.Equal(t, time.Second, zero.NextDelay(0))
}
