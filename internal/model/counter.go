package model

import "time"

// AccessCounter is the singleton access-count record.
type AccessCounter struct {
	Count       int64     `json:"count"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// CounterValue is the mutation/read result returned to clients.
type CounterValue struct {
	Count       int64     `json:"count"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// CounterStats extends the counter value with lifetime information.
// AverageAccessesPerDay is only present once a creation timestamp exists.
type CounterStats struct {
	Count                 int64      `json:"count"`
	LastUpdated           time.Time  `json:"lastUpdated"`
	CreatedAt             *time.Time `json:"createdAt,omitempty"`
	AverageAccessesPerDay *float64   `json:"averageAccessesPerDay,omitempty"`
}
