package model

import "time"

// Course is a named offering applications refer to.
type Course struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Duration         string    `json:"duration"`
	Price            int64     `json:"price"`
	ApplicationCount int64     `json:"application_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
