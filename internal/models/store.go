package models

// StoreAllID is the sentinel store id meaning "every store". It must never
// appear in store-selection lists or in store-keyed aggregation.
const StoreAllID = "all"

// Store is a sales channel (TikTok shop / livestream channel).
type Store struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Personnel is a team member shown in the personnel lookup.
type Personnel struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	StoreID string `json:"store_id"`
}
