package models

type Client struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode int64  `json:"postal_code"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// CityCount is a per-city client tally for the dashboard chart.
type CityCount struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}
