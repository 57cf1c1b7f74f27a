package database

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrInvalidDateRange is returned when arrival is not strictly before departure.
	ErrInvalidDateRange = errors.New("arrival date must be before departure date")

	// ErrRoomNotAvailable is returned when the room has an overlapping reservation.
	ErrRoomNotAvailable = errors.New("room is not available for the requested dates")

	ErrClientNotFound      = errors.New("client not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrServiceNotFound     = errors.New("service not found")

	// ErrDuplicateLink is returned on a duplicate association-table pair.
	ErrDuplicateLink = errors.New("association already exists")

	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
