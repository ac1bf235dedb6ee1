package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/api"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/sandbox"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// testApp wires the CLI against an in-process sandbox. Every call to run
// gets a fresh dispatcher and toast store, like a separate invocation,
// while the credential store is shared.
type testApp struct {
	t     *testing.T
	url   string
	store storage.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sandbox.OpenDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, sandbox.Seed(db))

	srv := httptest.NewServer(sandbox.NewRouter(db, "cli-secret", nil))
	t.Cleanup(srv.Close)

	return &testApp{t: t, url: srv.URL + "/api", store: storage.NewMemory()}
}

func (ta *testApp) run(stdin string, name string, args ...string) (string, error) {
	ta.t.Helper()
	ctx := context.Background()

	client := api.New(ta.url)
	sess := session.New(ta.store, client.Auth)
	client.SetTokenSource(sess)
	require.NoError(ta.t, sess.Restore(ctx))

	dispatcher := events.NewDispatcher(10)
	toasts := notify.NewStore(notify.WithScheduler(func(time.Duration, func()) {}))
	require.NoError(ta.t, toasts.Attach(dispatcher))

	var out bytes.Buffer
	a := &app{
		cfg:     &config.Config{APIBaseURL: ta.url},
		client:  client,
		session: sess,
		toasts:  toasts,
		events:  dispatcher,
		in:      strings.NewReader(stdin),
		out:     &out,
	}

	err := commands[name].run(ctx, a, args)
	dispatcher.Close()
	a.printToasts()
	return out.String(), err
}

func nextMonday() string {
	d := timezone.Now().AddDate(0, 0, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(timezone.DateLayout)
}

func TestBookAndCancelFromTheCommandLine(t *testing.T) {
	ta := newTestApp(t)
	date := nextMonday()

	out, err := ta.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")

	_, err = ta.run("", "book", "-barber", "1", "-service", "1", "-date", date, "-time", "10:00")
	assert.ErrorIs(t, err, session.ErrRedirect)

	out, err = ta.run("", "login", "-email", sandbox.SeedCustomerEmail, "-password", sandbox.SeedPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ayse Customer (CUSTOMER)")

	out, err = ta.run("", "barbers")
	require.NoError(t, err)
	assert.Contains(t, out, "Classic Cuts")

	out, err = ta.run("", "book", "-barber", "1", "-service", "1", "-date", date, "-time", "10:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Booked #1: Classic Cuts")
	assert.Contains(t, out, "success: Appointment created.")

	out, err = ta.run("", "slots", "-barber", "1", "-service", "1", "-date", date)
	require.NoError(t, err)
	assert.Contains(t, out, "10:00-10:30  taken")

	out, err = ta.run("", "book", "-barber", "1", "-service", "1", "-date", date, "-time", "10:00")
	require.Error(t, err)
	assert.Contains(t, out, "10:00 is not free")

	out, err = ta.run("", "appointments")
	require.NoError(t, err)
	assert.Contains(t, out, "PENDING")

	_, err = ta.run("n\n", "cancel", "1")
	require.Error(t, err)

	out, err = ta.run("y\n", "cancel", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to cancel this appointment? [y/N]")

	out, err = ta.run("", "appointments")
	require.NoError(t, err)
	assert.Contains(t, out, "CANCELLED")

	out, err = ta.run("", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")
}

func TestBarberSetupFromTheCommandLine(t *testing.T) {
	ta := newTestApp(t)

	_, err := ta.run("", "register", "-name", "Cli Barber", "-email", "cli@barber.local", "-password", "secret1", "-role", "barber")
	require.NoError(t, err)

	out, err := ta.run("", "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "No profile yet.")

	out, err = ta.run("", "profile", "save", "-shop", "Cli Cuts", "-address", "Dock 3", "-city", "Izmir", "-district", "Alsancak")
	require.NoError(t, err)
	assert.Contains(t, out, "Cli Cuts [PENDING]")

	out, err = ta.run("", "services", "add", "-name", "Buzz Cut", "-duration", "15", "-price", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "Buzz Cut")

	out, err = ta.run("", "hours", "set", "-day", "monday", "-open", "10:00", "-close", "16:00")
	require.NoError(t, err)
	assert.Contains(t, out, "MONDAY     10:00-16:00")
	assert.Contains(t, out, "SUNDAY     closed")

	out, err = ta.run("", "services")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	id := strings.Fields(lines[1])[0]
	_, convErr := strconv.Atoi(id)
	require.NoError(t, convErr)

	_, err = ta.run("", "services", "delete", "-yes", id)
	require.NoError(t, err)

	out, err = ta.run("", "services")
	require.NoError(t, err)
	assert.Contains(t, out, "No services.")

	_, err = ta.run("", "admin", "pending")
	assert.ErrorIs(t, err, session.ErrRedirect)
}

func TestAdminFromTheCommandLine(t *testing.T) {
	ta := newTestApp(t)

	_, err := ta.run("", "login", "-email", sandbox.SeedAdminEmail, "-password", sandbox.SeedPassword)
	require.NoError(t, err)

	out, err := ta.run("", "admin", "pending")
	require.NoError(t, err)
	assert.Contains(t, out, "Fresh Fade")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	id := strings.Fields(lines[1])[0]

	out, err = ta.run("", "admin", "approve", id)
	require.NoError(t, err)
	assert.Contains(t, out, "success: Barber approved.")

	out, err = ta.run("", "barbers", "-city", "Ankara")
	require.NoError(t, err)
	assert.Contains(t, out, "Fresh Fade")
	assert.Equal(t, models.RoleAdmin, ta.currentRole())
}

func (ta *testApp) currentRole() models.Role {
	client := api.New(ta.url)
	sess := session.New(ta.store, client.Auth)
	require.NoError(ta.t, sess.Restore(context.Background()))
	return sess.CurrentUser().Role
}
