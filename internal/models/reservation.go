package models

import "time"

type Reservation struct {
	ID        int64     `json:"id"`
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`
	ClientID  int64     `json:"client_id"`
}

// ReservationDetail is the joined listing row: reservation dates plus the
// client, room and hotel attributes the dashboard shows.
type ReservationDetail struct {
	ReservationID int64     `json:"reservation_id"`
	ClientName    string    `json:"client_name"`
	City          string    `json:"city"`
	Arrival       time.Time `json:"arrival"`
	Departure     time.Time `json:"departure"`
	RoomNumber    int64     `json:"room_number"`
	RoomType      string    `json:"room_type"`
}

// ReservationStats aggregates the listing for the dashboard metrics.
type ReservationStats struct {
	Count        int64   `json:"count"`
	MeanStayDays float64 `json:"mean_stay_days"`
}

type Evaluation struct {
	ID       int64     `json:"id"`
	Date     time.Time `json:"date"`
	Rating   int64     `json:"rating"`
	Comment  string    `json:"comment"`
	ClientID int64     `json:"client_id"`
}
