package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

// --------------------------------------------------
// Barber profile
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfile(
	ctx context.Context,
	id uint,
) (*records.BarberProfile, error) {

	var p records.BarberProfile
	if err := r.db.WithContext(ctx).Preload("User").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *AppointmentGormRepository) GetProfileByUser(
	ctx context.Context,
	userID uint,
) (*records.BarberProfile, error) {

	var p records.BarberProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	profileID uint,
	serviceID uint,
) (*records.Service, error) {

	var s records.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_profile_id = ?", serviceID, profileID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingDay(
	ctx context.Context,
	profileID uint,
	dayOfWeek string,
) (*records.WorkingDay, error) {

	var wd records.WorkingDay
	if err := r.db.WithContext(ctx).
		Where("barber_profile_id = ? AND day_of_week = ?", profileID, dayOfWeek).
		First(&wd).Error; err != nil {
		return nil, err
	}
	return &wd, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	profileID uint,
	date string,
) ([]records.Appointment, error) {

	var list []records.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"barber_profile_id = ? AND date = ? AND status <> ?",
			profileID,
			date,
			string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&list).Error

	return list, err
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *records.Appointment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&records.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_profile_id = ? AND date = ? AND status <> ? AND start_time < ? AND end_time > ?",
				ap.BarberProfileID,
				ap.Date,
				string(domain.StatusCancelled),
				ap.EndTime,
				ap.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusinessMsg("slot_taken", "This time slot is no longer available")
		}

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*records.Appointment, error) {

	var ap records.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("BarberProfile").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *records.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(&records.Appointment{}).
		Where("id = ?", ap.ID).
		Updates(map[string]any{
			"status":     ap.Status,
			"updated_at": ap.UpdatedAt,
		}).Error
}

func (r *AppointmentGormRepository) ListForCustomer(
	ctx context.Context,
	customerID uint,
	page int,
	size int,
) ([]records.Appointment, int64, error) {
	return r.listPage(ctx, "customer_id = ?", customerID, page, size)
}

func (r *AppointmentGormRepository) ListForProfile(
	ctx context.Context,
	profileID uint,
	page int,
	size int,
) ([]records.Appointment, int64, error) {
	return r.listPage(ctx, "barber_profile_id = ?", profileID, page, size)
}

func (r *AppointmentGormRepository) listPage(
	ctx context.Context,
	where string,
	id uint,
	page int,
	size int,
) ([]records.Appointment, int64, error) {

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&records.Appointment{}).
		Where(where, id).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []records.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("BarberProfile").
		Preload("Service").
		Where(where, id).
		Order("date DESC, start_time DESC").
		Offset(page * size).
		Limit(size).
		Find(&list).Error

	return list, total, err
}

func (r *AppointmentGormRepository) Reviewed(
	ctx context.Context,
	ids []uint,
) (map[uint]bool, error) {

	out := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var reviewed []uint
	if err := r.db.WithContext(ctx).
		Model(&records.Review{}).
		Where("appointment_id IN ?", ids).
		Pluck("appointment_id", &reviewed).Error; err != nil {
		return nil, err
	}

	for _, id := range reviewed {
		out[id] = true
	}
	return out, nil
}

// IsNotFound reports a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
