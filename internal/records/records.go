// Package records holds the gorm tables behind the sandbox API.
package records

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Phone        string `gorm:"size:20"`
	Role         string `gorm:"size:20;not null"`
	CreatedAt    time.Time
}

type BarberProfile struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"uniqueIndex;not null"`
	User         User   `gorm:"foreignKey:UserID"`
	ShopName     string `gorm:"size:100;not null"`
	Description  string `gorm:"size:1000"`
	Address      string `gorm:"size:255;not null"`
	City         string `gorm:"size:50;index;not null"`
	District     string `gorm:"size:50;index;not null"`
	Latitude     *float64
	Longitude    *float64
	ProfileImage string `gorm:"size:255"`
	Status       string `gorm:"size:20;index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Service struct {
	ID              uint    `gorm:"primaryKey"`
	BarberProfileID uint    `gorm:"index;not null"`
	Name            string  `gorm:"size:100;not null"`
	Description     string  `gorm:"size:500"`
	DurationMinutes int     `gorm:"not null"`
	Price           float64 `gorm:"not null"`
	IsActive        bool    `gorm:"not null"`
}

type WorkingDay struct {
	ID              uint   `gorm:"primaryKey"`
	BarberProfileID uint   `gorm:"uniqueIndex:idx_profile_day;not null"`
	DayOfWeek       string `gorm:"size:10;uniqueIndex:idx_profile_day;not null"`
	StartTime       string `gorm:"size:5"`
	EndTime         string `gorm:"size:5"`
	IsClosed        bool   `gorm:"not null"`
}

type Appointment struct {
	ID              uint          `gorm:"primaryKey"`
	CustomerID      uint          `gorm:"index;not null"`
	Customer        User          `gorm:"foreignKey:CustomerID"`
	BarberProfileID uint          `gorm:"index;not null"`
	BarberProfile   BarberProfile `gorm:"foreignKey:BarberProfileID"`
	ServiceID       uint          `gorm:"not null"`
	Service         Service       `gorm:"foreignKey:ServiceID"`
	Date            string        `gorm:"size:10;index;not null"`
	StartTime       string        `gorm:"size:5;not null"`
	EndTime         string        `gorm:"size:5;not null"`
	Status          string        `gorm:"size:20;not null"`
	TotalPrice      float64       `gorm:"not null"`
	Notes           string        `gorm:"size:500"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Review struct {
	ID              uint   `gorm:"primaryKey"`
	CustomerID      uint   `gorm:"index;not null"`
	Customer        User   `gorm:"foreignKey:CustomerID"`
	BarberProfileID uint   `gorm:"index;not null"`
	AppointmentID   uint   `gorm:"uniqueIndex;not null"`
	Rating          int    `gorm:"not null"`
	Comment         string `gorm:"size:1000"`
	IsVisible       bool   `gorm:"not null"`
	CreatedAt       time.Time
}

// All lists the tables in migration order.
func All() []any {
	return []any{
		&User{},
		&BarberProfile{},
		&Service{},
		&WorkingDay{},
		&Appointment{},
		&Review{},
	}
}
