// Package dto maps sandbox records to the JSON shapes the API returns.
package dto

import (
	"fmt"
	"math"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

const timestampLayout = "2006-01-02T15:04:05"

func User(u *records.User) models.User {
	return models.User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Phone: u.Phone,
		Role:  models.Role(u.Role),
	}
}

func Appointment(ap *records.Appointment, reviewed bool) models.Appointment {
	return models.Appointment{
		ID:              ap.ID,
		CustomerID:      ap.CustomerID,
		CustomerName:    ap.Customer.Name,
		BarberProfileID: ap.BarberProfileID,
		BarberShopName:  ap.BarberProfile.ShopName,
		ServiceID:       ap.ServiceID,
		ServiceName:     ap.Service.Name,
		AppointmentDate: ap.Date,
		StartTime:       ap.StartTime + ":00",
		EndTime:         ap.EndTime + ":00",
		Status:          ap.Status,
		TotalPrice:      ap.TotalPrice,
		Notes:           ap.Notes,
		CreatedAt:       ap.CreatedAt.Format(timestampLayout),
		CanReview:       domain.CanReview(domain.Status(ap.Status), reviewed),
	}
}

func Service(s *records.Service) models.Service {
	return models.Service{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
	}
}

var dayNames = map[string]string{
	"MONDAY":    "Monday",
	"TUESDAY":   "Tuesday",
	"WEDNESDAY": "Wednesday",
	"THURSDAY":  "Thursday",
	"FRIDAY":    "Friday",
	"SATURDAY":  "Saturday",
	"SUNDAY":    "Sunday",
}

func WorkingHours(wd *records.WorkingDay) models.WorkingHours {
	out := models.WorkingHours{
		ID:        wd.ID,
		DayOfWeek: wd.DayOfWeek,
		DayName:   dayNames[wd.DayOfWeek],
		IsClosed:  wd.IsClosed,
	}
	if !wd.IsClosed {
		out.StartTime = wd.StartTime + ":00"
		out.EndTime = wd.EndTime + ":00"
	}
	return out
}

func Review(r *records.Review) models.Review {
	return models.Review{
		ID:              r.ID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.Customer.Name,
		BarberProfileID: r.BarberProfileID,
		AppointmentID:   r.AppointmentID,
		Rating:          r.Rating,
		Comment:         r.Comment,
		IsVisible:       r.IsVisible,
		CreatedAt:       r.CreatedAt.Format(timestampLayout),
	}
}

// Rating aggregates the visible reviews of one profile.
type Rating struct {
	Average float64
	Count   int
}

func ListItem(p *records.BarberProfile, r Rating, startingPrice *float64) models.BarberListItem {
	item := models.BarberListItem{
		ID:            p.ID,
		ShopName:      p.ShopName,
		City:          p.City,
		District:      p.District,
		ProfileImage:  p.ProfileImage,
		AverageRating: round1(r.Average),
		TotalReviews:  r.Count,
	}
	if startingPrice != nil {
		item.StartingPrice = fmt.Sprintf("%.2f", *startingPrice)
	}
	return item
}

func Detail(
	p *records.BarberProfile,
	r Rating,
	services []records.Service,
	days []records.WorkingDay,
) models.BarberDetail {
	out := models.BarberDetail{
		ID:            p.ID,
		UserID:        p.UserID,
		OwnerName:     p.User.Name,
		ShopName:      p.ShopName,
		Description:   p.Description,
		Address:       p.Address,
		City:          p.City,
		District:      p.District,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		ProfileImage:  p.ProfileImage,
		AverageRating: round1(r.Average),
		TotalReviews:  r.Count,
		Status:        models.ProfileStatus(p.Status),
		Services:      make([]models.Service, 0, len(services)),
		WorkingHours:  make([]models.WorkingHours, 0, len(days)),
	}
	for i := range services {
		out.Services = append(out.Services, Service(&services[i]))
	}
	for i := range days {
		out.WorkingHours = append(out.WorkingHours, WorkingHours(&days[i]))
	}
	return out
}

// Page wraps one page of content in the list envelope.
func Page[T any](content []T, total int64, page, size int) models.Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return models.Page[T]{
		Content:       content,
		TotalElements: int(total),
		TotalPages:    pages,
		Size:          size,
		Number:        page,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
