package models

type Hotel struct {
	ID         int64  `json:"id"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode int64  `json:"postal_code"`
}

type RoomType struct {
	ID          int64   `json:"id"`
	Label       string  `json:"label"`
	NightlyRate float64 `json:"nightly_rate"`
}

type Room struct {
	ID         int64 `json:"id"`
	Number     int64 `json:"number"`
	Floor      int64 `json:"floor"`
	Smoking    bool  `json:"smoking"`
	HotelID    int64 `json:"hotel_id"`
	RoomTypeID int64 `json:"room_type_id"`
}

type Service struct {
	ID          int64   `json:"id"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// AvailableRoom is the availability search result row: a free room joined
// with its room type and hotel attributes for display.
type AvailableRoom struct {
	RoomID      int64   `json:"room_id"`
	Number      int64   `json:"number"`
	Floor       int64   `json:"floor"`
	Smoking     bool    `json:"smoking"`
	RoomType    string  `json:"room_type"`
	NightlyRate float64 `json:"nightly_rate"`
	City        string  `json:"city"`
}
