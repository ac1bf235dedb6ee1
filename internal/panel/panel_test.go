package panel_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/api"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/panel"
	"github.com/BruksfildServices01/barber-booking/internal/sandbox"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type env struct {
	url      string
	requests *atomic.Int64
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sandbox.OpenDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, sandbox.Seed(db))

	router := sandbox.NewRouter(db, "panel-secret", nil)
	requests := &atomic.Int64{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	return &env{url: srv.URL + "/api", requests: requests}
}

func (e *env) signIn(t *testing.T, email string) (*api.Client, *session.Store) {
	t.Helper()
	client := api.New(e.url)
	sess := session.New(storage.NewMemory(), client.Auth)
	client.SetTokenSource(sess)

	_, err := sess.Login(context.Background(), models.LoginRequest{Email: email, Password: sandbox.SeedPassword})
	require.NoError(t, err)
	return client, sess
}

func toastStore() *notify.Store {
	return notify.NewStore(notify.WithScheduler(func(time.Duration, func()) {}))
}

func lastToast(t *testing.T, s *notify.Store) notify.Toast {
	t.Helper()
	toasts := s.Toasts()
	require.NotEmpty(t, toasts)
	return toasts[len(toasts)-1]
}

func hasToast(s *notify.Store, typ notify.Type, message string) bool {
	for _, t := range s.Toasts() {
		if t.Type == typ && t.Message == message {
			return true
		}
	}
	return false
}

type prompts struct {
	answer bool
	asked  []string
}

func (p *prompts) Confirm(prompt string) bool {
	p.asked = append(p.asked, prompt)
	return p.answer
}

func nextMonday() string {
	d := timezone.Now().AddDate(0, 0, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(timezone.DateLayout)
}

// book creates a 10:00 Haircut appointment at the seeded shop.
func book(t *testing.T, client *api.Client) *models.Appointment {
	t.Helper()
	ctx := context.Background()

	page, err := client.Barbers.List(ctx, models.BarberFilter{}, 0, 10)
	require.NoError(t, err)
	require.NotEmpty(t, page.Content)

	detail, err := client.Barbers.Get(ctx, page.Content[0].ID)
	require.NoError(t, err)

	var haircut models.Service
	for _, s := range detail.Services {
		if s.Name == "Haircut" {
			haircut = s
		}
	}
	require.NotZero(t, haircut.ID)

	ap, err := client.Appointments.Create(ctx, models.CreateAppointmentRequest{
		BarberProfileID: detail.ID,
		ServiceID:       haircut.ID,
		AppointmentDate: nextMonday(),
		StartTime:       "10:00",
	})
	require.NoError(t, err)
	return ap
}

func TestCustomer_CancelNeedsConfirmation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	client, sess := e.signIn(t, sandbox.SeedCustomerEmail)
	ap := book(t, client)

	ask := &prompts{}
	toasts := toastStore()
	dispatcher := events.NewDispatcher(10)
	require.NoError(t, toasts.Attach(dispatcher))

	p := panel.NewCustomer(client.Appointments, sess, ask, toasts, dispatcher)

	list, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "PENDING", list[0].Status)

	before := e.requests.Load()
	assert.ErrorIs(t, p.Cancel(ctx, ap.ID), panel.ErrNotConfirmed)
	assert.Equal(t, before, e.requests.Load())
	assert.Len(t, ask.asked, 1)

	ask.answer = true
	require.NoError(t, p.Cancel(ctx, ap.ID))
	require.Len(t, p.Appointments(), 1)
	assert.Equal(t, "CANCELLED", p.Appointments()[0].Status)

	// already cancelled: refused locally
	before = e.requests.Load()
	err = p.Cancel(ctx, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, before, e.requests.Load())

	dispatcher.Close()
	assert.True(t, hasToast(toasts, notify.Error, "This appointment can no longer be cancelled"))
	notes := toasts.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, "Appointment cancelled", notes[0].Title)
}

func TestCustomerAndBarber_CompleteThenReview(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	customerClient, customerSess := e.signIn(t, sandbox.SeedCustomerEmail)
	ap := book(t, customerClient)

	barberClient, barberSess := e.signIn(t, sandbox.SeedBarberEmail)
	barberToasts := toastStore()
	bp := panel.NewBarber(barberClient.Barbers, barberClient.Appointments, barberSess, panel.AlwaysConfirm, barberToasts)

	list, err := bp.LoadAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ayse Customer", list[0].CustomerName)

	// PENDING cannot jump to COMPLETED
	before := e.requests.Load()
	err = bp.Complete(ctx, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, before, e.requests.Load())

	require.NoError(t, bp.Confirm(ctx, ap.ID))
	assert.Equal(t, "Appointment confirmed.", lastToast(t, barberToasts).Message)
	assert.Equal(t, "CONFIRMED", bp.Appointments()[0].Status)

	require.NoError(t, bp.Complete(ctx, ap.ID))
	assert.Equal(t, "COMPLETED", bp.Appointments()[0].Status)

	toasts := toastStore()
	dispatcher := events.NewDispatcher(10)
	require.NoError(t, toasts.Attach(dispatcher))
	cp := panel.NewCustomer(customerClient.Appointments, customerSess, panel.AlwaysConfirm, toasts, dispatcher)

	mine, err := cp.Load(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].CanReview)

	before = e.requests.Load()
	_, err = cp.SubmitReview(ctx, ap.ID, 0, "")
	assert.ErrorIs(t, err, validators.ErrValidation)
	_, err = cp.SubmitReview(ctx, ap.ID, 6, "")
	assert.ErrorIs(t, err, validators.ErrValidation)
	assert.Equal(t, before, e.requests.Load())

	review, err := cp.SubmitReview(ctx, ap.ID, 5, "Great cut")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.False(t, cp.Appointments()[0].CanReview)

	_, err = cp.SubmitReview(ctx, ap.ID, 4, "")
	assert.True(t, httperr.IsBusiness(err, "cannot_review"))

	dispatcher.Close()
	assert.True(t, hasToast(toasts, notify.Success, "Your review has been submitted."))
	assert.True(t, hasToast(toasts, notify.Error, "This appointment cannot be reviewed"))
}

func TestBarber_Onboarding(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	client := api.New(e.url)
	sess := session.New(storage.NewMemory(), client.Auth)
	client.SetTokenSource(sess)
	_, err := sess.Register(ctx, models.RegisterRequest{
		Name:     "Panel Barber",
		Email:    "panel@barber.local",
		Password: "secret1",
		Role:     models.RoleBarber,
	})
	require.NoError(t, err)

	ask := &prompts{}
	toasts := toastStore()
	p := panel.NewBarber(client.Barbers, client.Appointments, sess, ask, toasts)

	_, err = p.LoadProfile(ctx)
	assert.ErrorIs(t, err, httperr.ErrNoProfile)
	assert.False(t, p.HasProfile())
	assert.Empty(t, toasts.Toasts())

	form := p.WorkingHoursForm()
	require.Len(t, form, 7)
	assert.Equal(t, "MONDAY", form[0].DayOfWeek)
	assert.Equal(t, "09:00", *form[0].StartTime)
	assert.Equal(t, "19:00", *form[0].EndTime)
	assert.False(t, form[0].IsClosed)
	assert.True(t, form[6].IsClosed)

	req := models.ProfileRequest{ShopName: "Panel Cuts", Address: "Side St 2", City: "Izmir", District: "Bornova"}
	profile, err := p.SaveProfile(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, models.ProfilePending, profile.Status)
	assert.Equal(t, "Profile created. Waiting for admin approval.", lastToast(t, toasts).Message)

	req.Description = "Walk-ins welcome"
	profile, err = p.SaveProfile(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Walk-ins welcome", profile.Description)
	assert.Equal(t, "Profile updated.", lastToast(t, toasts).Message)

	svc, err := p.AddService(ctx, models.ServiceRequest{Name: "Shave", DurationMinutes: 15, Price: 90})
	require.NoError(t, err)
	assert.Len(t, p.Profile().Services, 1)

	form[0].StartTime = strPtr("10:00")
	hours, err := p.SaveWorkingHours(ctx, form)
	require.NoError(t, err)
	assert.Len(t, hours, 7)
	assert.Equal(t, "Working hours saved.", lastToast(t, toasts).Message)

	reloaded, err := p.LoadProfile(ctx)
	require.NoError(t, err)
	assert.True(t, p.HasProfile())
	form = p.WorkingHoursForm()
	assert.Equal(t, "10:00", *form[0].StartTime)
	assert.True(t, form[6].IsClosed)
	assert.Len(t, reloaded.WorkingHours, 7)

	assert.ErrorIs(t, p.DeleteService(ctx, svc.ID), panel.ErrNotConfirmed)
	assert.Len(t, p.Profile().Services, 1)

	ask.answer = true
	require.NoError(t, p.DeleteService(ctx, svc.ID))
	assert.Empty(t, p.Profile().Services)
	assert.Equal(t, "Service deleted.", lastToast(t, toasts).Message)

	_, err = p.AddService(ctx, models.ServiceRequest{Name: "", DurationMinutes: 15})
	assert.ErrorIs(t, err, validators.ErrValidation)
	assert.Equal(t, notify.Error, lastToast(t, toasts).Type)
}

func TestAdmin_Moderation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	client, sess := e.signIn(t, sandbox.SeedAdminEmail)
	ask := &prompts{}
	toasts := toastStore()
	p := panel.NewAdmin(client.Admin, sess, ask, toasts)

	pending, err := p.LoadPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Fresh Fade", pending[0].ShopName)
	id := pending[0].ID

	assert.ErrorIs(t, p.Reject(ctx, id), panel.ErrNotConfirmed)
	assert.Len(t, p.Pending(), 1)

	require.NoError(t, p.Approve(ctx, id))
	assert.Empty(t, p.Pending())
	assert.Equal(t, "Barber approved.", lastToast(t, toasts).Message)

	ask.answer = true
	err = p.Reject(ctx, id)
	require.Error(t, err)
	assert.Equal(t, notify.Error, lastToast(t, toasts).Type)

	list, err := api.New(e.url).Barbers.List(ctx, models.BarberFilter{City: "Ankara"}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, list.Content, 1)
}

func TestPanels_RoleGuards(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	client, sess := e.signIn(t, sandbox.SeedCustomerEmail)
	before := e.requests.Load()

	_, err := panel.NewBarber(client.Barbers, client.Appointments, sess, nil, nil).LoadProfile(ctx)
	assert.ErrorIs(t, err, session.ErrRedirect)

	_, err = panel.NewAdmin(client.Admin, sess, nil, nil).LoadPending(ctx)
	assert.ErrorIs(t, err, session.ErrRedirect)

	require.NoError(t, sess.Logout(ctx))
	_, err = panel.NewCustomer(client.Appointments, sess, nil, nil, nil).Load(ctx)
	var redirect *session.RedirectError
	require.ErrorAs(t, err, &redirect)
	assert.Equal(t, session.LoginPath, redirect.To)

	assert.Equal(t, before, e.requests.Load())
}

func strPtr(s string) *string { return &s }

func TestPanels_NilConfirmerRefusesDestructiveActions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	customerClient, customerSess := e.signIn(t, sandbox.SeedCustomerEmail)
	ap := book(t, customerClient)

	cp := panel.NewCustomer(customerClient.Appointments, customerSess, nil, nil, nil)
	_, err := cp.Load(ctx)
	require.NoError(t, err)

	before := e.requests.Load()
	assert.ErrorIs(t, cp.Cancel(ctx, ap.ID), panel.ErrNotConfirmed)
	assert.Equal(t, before, e.requests.Load())

	list, err := cp.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "PENDING", list[0].Status)

	barberClient, barberSess := e.signIn(t, sandbox.SeedBarberEmail)
	bp := panel.NewBarber(barberClient.Barbers, barberClient.Appointments, barberSess, nil, nil)
	profile, err := bp.LoadProfile(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, profile.Services)

	before = e.requests.Load()
	assert.ErrorIs(t, bp.DeleteService(ctx, profile.Services[0].ID), panel.ErrNotConfirmed)
	assert.Equal(t, before, e.requests.Load())

	adminClient, adminSess := e.signIn(t, sandbox.SeedAdminEmail)
	adm := panel.NewAdmin(adminClient.Admin, adminSess, nil, nil)
	pending, err := adm.LoadPending(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, pending)

	before = e.requests.Load()
	assert.ErrorIs(t, adm.Reject(ctx, pending[0].ID), panel.ErrNotConfirmed)
	assert.Equal(t, before, e.requests.Load())
	assert.Len(t, adm.Pending(), len(pending))
}
