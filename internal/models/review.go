package models

type Review struct {
	ID              uint   `json:"id"`
	CustomerID      uint   `json:"customerId"`
	CustomerName    string `json:"customerName"`
	BarberProfileID uint   `json:"barberProfileId"`
	AppointmentID   uint   `json:"appointmentId"`
	Rating          int    `json:"rating"`
	Comment         string `json:"comment,omitempty"`
	IsVisible       bool   `json:"isVisible"`
	CreatedAt       string `json:"createdAt"`
}

type CreateReviewRequest struct {
	AppointmentID uint   `json:"appointmentId" binding:"required"`
	Rating        int    `json:"rating" binding:"min=1,max=5"`
	Comment       string `json:"comment,omitempty"`
}
