package models

type Appointment struct {
	ID              uint    `json:"id"`
	CustomerID      uint    `json:"customerId"`
	CustomerName    string  `json:"customerName"`
	BarberProfileID uint    `json:"barberProfileId"`
	BarberShopName  string  `json:"barberShopName"`
	ServiceID       uint    `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	Notes           string  `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	CanReview       bool    `json:"canReview"`
}

type CreateAppointmentRequest struct {
	BarberProfileID uint   `json:"barberProfileId" binding:"required"`
	ServiceID       uint   `json:"serviceId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"notblank,date"`
	StartTime       string `json:"startTime" binding:"notblank,clock"`
	Notes           string `json:"notes,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"notblank"`
}

// TimeSlot is a candidate window computed by the server for one date and
// service duration. It is never persisted.
type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// Short renders the start time as HH:MM.
func (s TimeSlot) Short() string {
	return ShortTime(s.StartTime)
}

type AvailableSlotsResponse struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

// ShortTime trims an HH:MM[:SS] value to HH:MM.
func ShortTime(v string) string {
	if len(v) > 5 {
		return v[:5]
	}
	return v
}
