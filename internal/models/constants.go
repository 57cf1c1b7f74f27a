package models

const (
	// DateLayout is the calendar-date format used in storage and over the API.
	DateLayout = "2006-01-02"

	// RatingMin and RatingMax bound evaluation scores.
	RatingMin = 1
	RatingMax = 5

	// DefaultCacheTTL время жизни кэша доступности в секундах
	DefaultCacheTTL = 5 * 60

	// WorkerQueueSize размер очереди воркера
	WorkerQueueSize = 128

	// DefaultBackupInterval интервал резервного копирования по умолчанию
	DefaultBackupInterval = "24h"
)

const (
	SyncTaskAppend  = "append"
	SyncTaskReplace = "replace"
)
