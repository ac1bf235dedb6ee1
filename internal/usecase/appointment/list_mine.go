package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/records"
)

type ListMine struct {
	repo domain.Repository
}

func NewListMine(repo domain.Repository) *ListMine {
	return &ListMine{repo: repo}
}

// Execute lists the caller's appointments, newest first. Barbers see the
// appointments of their shop, everyone else their own bookings.
func (uc *ListMine) Execute(
	ctx context.Context,
	userID uint,
	role models.Role,
	page int,
	size int,
) (models.Page[models.Appointment], error) {

	var (
		list  []records.Appointment
		total int64
		err   error
	)

	if role == models.RoleBarber {
		profile, perr := uc.repo.GetProfileByUser(ctx, userID)
		if perr != nil {
			if repository.IsNotFound(perr) {
				return models.Page[models.Appointment]{}, httperr.ErrBusinessMsg("profile_not_found", "Barber profile not found")
			}
			return models.Page[models.Appointment]{}, perr
		}
		list, total, err = uc.repo.ListForProfile(ctx, profile.ID, page, size)
	} else {
		list, total, err = uc.repo.ListForCustomer(ctx, userID, page, size)
	}
	if err != nil {
		return models.Page[models.Appointment]{}, err
	}

	ids := make([]uint, 0, len(list))
	for _, ap := range list {
		ids = append(ids, ap.ID)
	}
	reviewed, err := uc.repo.Reviewed(ctx, ids)
	if err != nil {
		return models.Page[models.Appointment]{}, err
	}

	out := make([]models.Appointment, 0, len(list))
	for i := range list {
		out = append(out, dto.Appointment(&list[i], reviewed[list[i].ID]))
	}

	return dto.Page(out, total, page, size), nil
}
