package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/panel"
)

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("barberctl "+name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return uint(n), nil
}

func argID(fs *flag.FlagSet, i int) (uint, error) {
	if fs.NArg() <= i {
		return 0, errors.New("missing id argument")
	}
	return parseID(fs.Arg(i))
}

func (a *app) customerPanel(c panel.Confirmer) *panel.Customer {
	return panel.NewCustomer(a.client.Appointments, a.session, c, a.toasts, a.events)
}

func (a *app) barberPanel(c panel.Confirmer) *panel.Barber {
	return panel.NewBarber(a.client.Barbers, a.client.Appointments, a.session, c, a.toasts)
}

func (a *app) adminPanel(c panel.Confirmer) *panel.Admin {
	return panel.NewAdmin(a.client.Admin, a.session, c, a.toasts)
}

// ---------- session ----------

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.session.RequireGuest(); err != nil {
		return err
	}

	user, err := a.session.Login(ctx, models.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "account password")
	phone := fs.String("phone", "", "phone number")
	role := fs.String("role", string(models.RoleCustomer), "CUSTOMER or BARBER")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.session.RequireGuest(); err != nil {
		return err
	}

	user, err := a.session.Register(ctx, models.RegisterRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Phone:    *phone,
		Role:     models.Role(strings.ToUpper(*role)),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", user.Name, user.Role)
	if user.Role == models.RoleBarber {
		fmt.Fprintln(a.out, "Next: create your shop with 'barberctl profile save'")
	}
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	user := a.session.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> %s\n", user.Name, user.Email, user.Role)
	return nil
}

// ---------- public ----------

func cmdBarbers(ctx context.Context, a *app, args []string) error {
	fs := newFlags("barbers")
	city := fs.String("city", "", "filter by city")
	district := fs.String("district", "", "filter by district")
	page := fs.Int("page", 0, "page number, from 0")
	size := fs.Int("size", 10, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := a.client.Barbers.List(ctx, models.BarberFilter{City: *city, District: *district}, *page, *size)
	if err != nil {
		return err
	}
	a.renderBarbers(result)
	return nil
}

func cmdBarber(ctx context.Context, a *app, args []string) error {
	fs := newFlags("barber")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, 0)
	if err != nil {
		return err
	}

	detail, err := a.client.Barbers.Get(ctx, id)
	if err != nil {
		return err
	}
	reviews, err := a.client.Barbers.Reviews(ctx, id, 0, 5)
	if err != nil {
		return err
	}
	a.renderDetail(detail, reviews.Content)
	return nil
}

func cmdSlots(ctx context.Context, a *app, args []string) error {
	fs := newFlags("slots")
	barberID := fs.Uint("barber", 0, "barber profile id")
	serviceID := fs.Uint("service", 0, "service id")
	date := fs.String("date", "", "YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail, err := a.client.Barbers.Get(ctx, *barberID)
	if err != nil {
		return err
	}
	svc, ok := detail.ServiceByID(*serviceID)
	if !ok {
		return fmt.Errorf("service %d is not offered by %s", *serviceID, detail.ShopName)
	}

	resp, err := a.client.Barbers.AvailableSlots(ctx, detail.ID, *date, svc.DurationMinutes)
	if err != nil {
		return err
	}
	a.renderSlots(resp.Slots)
	return nil
}

// ---------- customer ----------

func cmdBook(ctx context.Context, a *app, args []string) error {
	fs := newFlags("book")
	barberID := fs.Uint("barber", 0, "barber profile id")
	serviceID := fs.Uint("service", 0, "service id")
	date := fs.String("date", "", "YYYY-MM-DD")
	clock := fs.String("time", "", "slot start, HH:MM")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.session.RequireCustomer(); err != nil {
		return err
	}

	detail, err := a.client.Barbers.Get(ctx, *barberID)
	if err != nil {
		return err
	}
	svc, ok := detail.ServiceByID(*serviceID)
	if !ok {
		return fmt.Errorf("service %d is not offered by %s", *serviceID, detail.ShopName)
	}

	flow := booking.New(*detail, a.client.Barbers, a.client.Appointments, a.session, a.events)
	if err := flow.SelectService(ctx, svc); err != nil {
		return err
	}
	if err := flow.SetDate(ctx, *date); err != nil {
		return err
	}
	flow.Wait()

	snap := flow.Snapshot()
	if snap.State == booking.Failed {
		return snap.Err
	}

	if err := flow.SelectSlot(models.TimeSlot{StartTime: *clock}); err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) {
			fmt.Fprintf(a.out, "%s is not free on %s. Free slots:\n", *clock, *date)
			a.renderSlots(freeSlots(snap.Slots))
		}
		return err
	}

	ap, err := flow.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Booked #%d: %s, %s on %s at %s (%s)\n",
		ap.ID, ap.BarberShopName, ap.ServiceName, ap.AppointmentDate, models.ShortTime(ap.StartTime), ap.Status)
	return nil
}

func freeSlots(slots []models.TimeSlot) []models.TimeSlot {
	var out []models.TimeSlot
	for _, s := range slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}

func cmdAppointments(ctx context.Context, a *app, _ []string) error {
	var (
		list []models.Appointment
		err  error
	)
	if a.session.IsBarber() {
		list, err = a.barberPanel(nil).LoadAppointments(ctx)
	} else {
		list, err = a.customerPanel(nil).Load(ctx)
	}
	if err != nil {
		return err
	}
	a.renderAppointments(list, a.session.IsBarber())
	return nil
}

func cmdCancel(ctx context.Context, a *app, args []string) error {
	fs := newFlags("cancel")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, 0)
	if err != nil {
		return err
	}

	if a.session.IsBarber() {
		p := a.barberPanel(a.confirmer(*yes))
		if _, err := p.LoadAppointments(ctx); err != nil {
			return err
		}
		return p.Cancel(ctx, id)
	}

	p := a.customerPanel(a.confirmer(*yes))
	if _, err := p.Load(ctx); err != nil {
		return err
	}
	return p.Cancel(ctx, id)
}

func cmdReview(ctx context.Context, a *app, args []string) error {
	fs := newFlags("review")
	id := fs.Uint("appointment", 0, "completed appointment id")
	rating := fs.Int("rating", 0, "1 to 5")
	comment := fs.String("comment", "", "optional comment")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := a.customerPanel(nil)
	if _, err := p.Load(ctx); err != nil {
		return err
	}
	_, err := p.SubmitReview(ctx, *id, *rating, *comment)
	return err
}

// ---------- barber ----------

func cmdStatus(ctx context.Context, a *app, args []string) error {
	fs := newFlags("status")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := argID(fs, 0)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return errors.New("missing status argument")
	}

	p := a.barberPanel(a.confirmer(*yes))
	if _, err := p.LoadAppointments(ctx); err != nil {
		return err
	}

	switch strings.ToUpper(fs.Arg(1)) {
	case "CONFIRMED":
		return p.Confirm(ctx, id)
	case "COMPLETED":
		return p.Complete(ctx, id)
	case "CANCELLED":
		return p.Cancel(ctx, id)
	default:
		return fmt.Errorf("unknown status %q", fs.Arg(1))
	}
}

// loadOwnProfile tolerates a missing profile; p.HasProfile tells the two
// cases apart.
func loadOwnProfile(ctx context.Context, p *panel.Barber) error {
	if _, err := p.LoadProfile(ctx); err != nil && !errors.Is(err, httperr.ErrNoProfile) {
		return err
	}
	return nil
}

func cmdProfile(ctx context.Context, a *app, args []string) error {
	p := a.barberPanel(nil)
	if err := loadOwnProfile(ctx, p); err != nil {
		return err
	}

	if len(args) == 0 {
		if !p.HasProfile() {
			fmt.Fprintln(a.out, "No profile yet. Create one with 'barberctl profile save'.")
			return nil
		}
		a.renderDetail(p.Profile(), nil)
		return nil
	}
	if args[0] != "save" {
		return fmt.Errorf("unknown profile action %q", args[0])
	}

	var current models.ProfileRequest
	if existing := p.Profile(); existing != nil {
		current = models.ProfileRequest{
			ShopName:     existing.ShopName,
			Description:  existing.Description,
			Address:      existing.Address,
			City:         existing.City,
			District:     existing.District,
			Latitude:     existing.Latitude,
			Longitude:    existing.Longitude,
			ProfileImage: existing.ProfileImage,
		}
	}

	fs := newFlags("profile save")
	fs.StringVar(&current.ShopName, "shop", current.ShopName, "shop name")
	fs.StringVar(&current.Description, "description", current.Description, "description")
	fs.StringVar(&current.Address, "address", current.Address, "street address")
	fs.StringVar(&current.City, "city", current.City, "city")
	fs.StringVar(&current.District, "district", current.District, "district")
	fs.StringVar(&current.ProfileImage, "image", current.ProfileImage, "profile image URL")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	saved, err := p.SaveProfile(ctx, current)
	if err != nil {
		return err
	}
	a.renderDetail(saved, nil)
	return nil
}

func cmdServices(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		p := a.barberPanel(nil)
		if _, err := p.LoadProfile(ctx); err != nil {
			return err
		}
		a.renderServices(p.Profile().Services)
		return nil
	}

	switch args[0] {
	case "add":
		fs := newFlags("services add")
		name := fs.String("name", "", "service name")
		description := fs.String("description", "", "description")
		duration := fs.Int("duration", 30, "minutes")
		price := fs.Float64("price", 0, "price")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		svc, err := a.barberPanel(nil).AddService(ctx, models.ServiceRequest{
			Name:            *name,
			Description:     *description,
			DurationMinutes: *duration,
			Price:           *price,
		})
		if err != nil {
			return err
		}
		a.renderServices([]models.Service{*svc})
		return nil

	case "delete":
		fs := newFlags("services delete")
		yes := fs.Bool("yes", false, "do not ask for confirmation")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		id, err := argID(fs, 0)
		if err != nil {
			return err
		}
		return a.barberPanel(a.confirmer(*yes)).DeleteService(ctx, id)

	default:
		return fmt.Errorf("unknown services action %q", args[0])
	}
}

func cmdHours(ctx context.Context, a *app, args []string) error {
	p := a.barberPanel(nil)
	if err := loadOwnProfile(ctx, p); err != nil {
		return err
	}
	form := p.WorkingHoursForm()

	if len(args) == 0 {
		a.renderWeek(form)
		return nil
	}
	if args[0] != "set" {
		return fmt.Errorf("unknown hours action %q", args[0])
	}

	fs := newFlags("hours set")
	day := fs.String("day", "", "MONDAY .. SUNDAY")
	opening := fs.String("open", "", "opening time, HH:MM")
	closing := fs.String("close", "", "closing time, HH:MM")
	closed := fs.Bool("closed", false, "closed all day")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	target := strings.ToUpper(*day)
	found := false
	for i := range form {
		if form[i].DayOfWeek != target {
			continue
		}
		found = true
		form[i].IsClosed = *closed
		if *opening != "" {
			form[i].StartTime = opening
		}
		if *closing != "" {
			form[i].EndTime = closing
		}
	}
	if !found {
		return fmt.Errorf("unknown day %q", *day)
	}

	if _, err := p.SaveWorkingHours(ctx, form); err != nil {
		return err
	}
	a.renderWeek(p.WorkingHoursForm())
	return nil
}

// ---------- admin ----------

func cmdAdmin(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("missing admin action")
	}

	switch args[0] {
	case "pending":
		list, err := a.adminPanel(nil).LoadPending(ctx)
		if err != nil {
			return err
		}
		a.renderPending(list)
		return nil

	case "approve":
		fs := newFlags("admin approve")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		id, err := argID(fs, 0)
		if err != nil {
			return err
		}
		return a.adminPanel(nil).Approve(ctx, id)

	case "reject":
		fs := newFlags("admin reject")
		yes := fs.Bool("yes", false, "do not ask for confirmation")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		id, err := argID(fs, 0)
		if err != nil {
			return err
		}
		return a.adminPanel(a.confirmer(*yes)).Reject(ctx, id)

	default:
		return fmt.Errorf("unknown admin action %q", args[0])
	}
}
