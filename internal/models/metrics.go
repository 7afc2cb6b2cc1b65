package models

// VideoMetric is one published video's performance snapshot. These records are
// synced in from the platform side and are read-only inputs to reporting.
type VideoMetric struct {
	ID             int64   `json:"id"`
	UploadDate     string  `json:"upload_date"` // RFC3339 timestamp; only the date part matters for grouping
	ProductID      string  `json:"product_id"`
	StoreID        string  `json:"store_id"`
	PersonInCharge string  `json:"person_in_charge"` // KOC identifier
	Sales          float64 `json:"sales"`
	Orders         int     `json:"orders"`
}

// LiveReport is one livestream session's performance snapshot. The channel id
// doubles as the store reference; live reports carry no product dimension.
type LiveReport struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"` // YYYY-MM-DD
	ChannelID string  `json:"channel_id"`
	HostName  string  `json:"host_name"` // KOC identifier
	GMV       float64 `json:"gmv"`
	Orders    int     `json:"orders"`
}
