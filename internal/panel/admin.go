package panel

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// AdminAPI is satisfied by *api.AdminClient.
type AdminAPI interface {
	PendingBarbers(ctx context.Context) ([]models.BarberListItem, error)
	Approve(ctx context.Context, barberID uint) (*models.BarberListItem, error)
	Reject(ctx context.Context, barberID uint) (*models.BarberListItem, error)
}

// AdminGuard is satisfied by *session.Store.
type AdminGuard interface {
	RequireAdmin() error
}

// Admin is the moderation queue of barber profiles awaiting approval.
type Admin struct {
	base
	api   AdminAPI
	guard AdminGuard

	mu      sync.Mutex
	pending []models.BarberListItem
}

func NewAdmin(api AdminAPI, guard AdminGuard, confirm Confirmer, toasts Toaster) *Admin {
	return &Admin{
		base:  base{confirm: confirm, toasts: toasts},
		api:   api,
		guard: guard,
	}
}

// LoadPending refreshes the queue. A failure empties it.
func (p *Admin) LoadPending(ctx context.Context) ([]models.BarberListItem, error) {
	if err := p.guard.RequireAdmin(); err != nil {
		return nil, err
	}

	items, err := p.api.PendingBarbers(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.pending = nil
		return nil, err
	}
	p.pending = append([]models.BarberListItem(nil), items...)
	return append([]models.BarberListItem(nil), p.pending...), nil
}

func (p *Admin) Pending() []models.BarberListItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.BarberListItem(nil), p.pending...)
}

func (p *Admin) Approve(ctx context.Context, barberID uint) error {
	if err := p.guard.RequireAdmin(); err != nil {
		return err
	}

	if _, err := p.api.Approve(ctx, barberID); err != nil {
		return p.fail(err)
	}

	p.prune(barberID)
	p.success("Barber approved.")
	return nil
}

// Reject asks for confirmation before rejecting the profile.
func (p *Admin) Reject(ctx context.Context, barberID uint) error {
	if err := p.guard.RequireAdmin(); err != nil {
		return err
	}
	if err := p.ask("Are you sure you want to reject this barber?"); err != nil {
		return err
	}

	if _, err := p.api.Reject(ctx, barberID); err != nil {
		return p.fail(err)
	}

	p.prune(barberID)
	p.success("Barber rejected.")
	return nil
}

func (p *Admin) prune(barberID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()

	kept := p.pending[:0]
	for _, b := range p.pending {
		if b.ID != barberID {
			kept = append(kept, b)
		}
	}
	p.pending = kept
}
