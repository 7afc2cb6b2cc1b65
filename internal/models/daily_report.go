package models

import "time"

// Shift session constants (sáng / chiều / tối)
const (
	SessionMorning   = "SANG"
	SessionAfternoon = "CHIEU"
	SessionEvening   = "TOI"
)

// Sessions lists the valid shift sessions.
var Sessions = []string{SessionMorning, SessionAfternoon, SessionEvening}

// ProductItem is one (product, quantity) entry in a daily report.
type ProductItem struct {
	ID          int64  `json:"id,omitempty"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// DailyReport is one shift report submitted by the content team.
type DailyReport struct {
	ID             int64         `json:"id"`
	Date           string        `json:"date"` // YYYY-MM-DD
	StoreID        string        `json:"store_id"`
	Shift          string        `json:"shift"`
	Session        string        `json:"session"` // SANG, CHIEU or TOI
	Time           float64       `json:"time"`    // hours worked
	Salary         float64       `json:"salary"`
	Account        string        `json:"account"`
	PIC            string        `json:"pic"` // person in charge
	Admin          string        `json:"admin"`
	Products       []ProductItem `json:"products"`
	DataScreenshot string        `json:"data_screenshot"` // data URL or remote URL, opaque to this service
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
