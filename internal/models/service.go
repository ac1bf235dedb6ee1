package models

type Service struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"isActive"`
}

type ServiceRequest struct {
	Name            string  `json:"name" binding:"notblank"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes" binding:"gt=0"`
	Price           float64 `json:"price" binding:"gte=0"`
}
