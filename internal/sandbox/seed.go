package sandbox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

const (
	SeedAdminEmail    = "admin@barber.local"
	SeedCustomerEmail = "customer@barber.local"
	SeedBarberEmail   = "barber@barber.local"
	SeedPendingEmail  = "pending@barber.local"
)

// Seed inserts a small demo data set: an admin, a customer, one approved
// barber with services and a Monday to Saturday week, and one barber
// waiting for approval. It does nothing when users already exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&records.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := []records.User{
			{Name: "Admin", Email: SeedAdminEmail, Role: string(models.RoleAdmin)},
			{Name: "Ayse Customer", Email: SeedCustomerEmail, Role: string(models.RoleCustomer)},
			{Name: "Mehmet Barber", Email: SeedBarberEmail, Role: string(models.RoleBarber)},
			{Name: "Ali Pending", Email: SeedPendingEmail, Role: string(models.RoleBarber)},
		}
		for i := range users {
			users[i].PasswordHash = string(hash)
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		approved := records.BarberProfile{
			UserID:      users[2].ID,
			ShopName:    "Classic Cuts",
			Description: "Traditional barbershop",
			Address:     "Bagdat Cd. 10",
			City:        "Istanbul",
			District:    "Kadikoy",
			Status:      string(models.ProfileApproved),
		}
		pending := records.BarberProfile{
			UserID:   users[3].ID,
			ShopName: "Fresh Fade",
			Address:  "Ataturk Blv. 5",
			City:     "Ankara",
			District: "Cankaya",
			Status:   string(models.ProfilePending),
		}
		if err := tx.Create(&approved).Error; err != nil {
			return err
		}
		if err := tx.Create(&pending).Error; err != nil {
			return err
		}

		services := []records.Service{
			{BarberProfileID: approved.ID, Name: "Haircut", DurationMinutes: 30, Price: 250, IsActive: true},
			{BarberProfileID: approved.ID, Name: "Beard Trim", DurationMinutes: 20, Price: 150, IsActive: true},
			{BarberProfileID: approved.ID, Name: "Haircut & Beard", DurationMinutes: 60, Price: 350, IsActive: true},
		}
		if err := tx.Create(&services).Error; err != nil {
			return err
		}

		week := DefaultWeek(approved.ID)
		return tx.Create(&week).Error
	})
}

// DefaultWeek opens 09:00 to 19:00 Monday to Saturday and closes Sunday.
func DefaultWeek(profileID uint) []records.WorkingDay {
	days := make([]records.WorkingDay, 0, len(models.Weekdays))
	for _, d := range models.Weekdays {
		wd := records.WorkingDay{BarberProfileID: profileID, DayOfWeek: d}
		if d == "SUNDAY" {
			wd.IsClosed = true
		} else {
			wd.StartTime = "09:00"
			wd.EndTime = "19:00"
		}
		days = append(days, wd)
	}
	return days
}
