package models

// Weekdays in the order the API and the barber panel use them.
var Weekdays = []string{
	"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
}

type WorkingHours struct {
	ID        uint   `json:"id"`
	DayOfWeek string `json:"dayOfWeek"`
	DayName   string `json:"dayName"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	IsClosed  bool   `json:"isClosed"`
}

type WorkingDay struct {
	DayOfWeek string  `json:"dayOfWeek" binding:"oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime *string `json:"startTime" binding:"omitempty,clock"`
	EndTime   *string `json:"endTime" binding:"omitempty,clock"`
	IsClosed  bool    `json:"isClosed"`
}

type WorkingHoursRequest struct {
	WorkingHours []WorkingDay `json:"workingHours" binding:"dive"`
}
