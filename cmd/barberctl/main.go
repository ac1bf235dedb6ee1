// Command barberctl is a terminal client for the barbershop booking API.
//
//	barberctl login -email customer@barber.local -password password123
//	barberctl barbers -city Istanbul
//	barberctl book -barber 1 -service 1 -date 2024-06-10 -time 10:00
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/api"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/events"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/logging"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/storage"
)

type app struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Store
	toasts  *notify.Store
	events  *events.Dispatcher
	in      io.Reader
	out     io.Writer
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":        {"-email E -password P", cmdLogin},
	"register":     {"-name N -email E -password P [-phone P] [-role CUSTOMER|BARBER]", cmdRegister},
	"logout":       {"", cmdLogout},
	"whoami":       {"", cmdWhoami},
	"barbers":      {"[-city C] [-district D] [-page N] [-size N]", cmdBarbers},
	"barber":       {"ID", cmdBarber},
	"slots":        {"-barber ID -service ID -date YYYY-MM-DD", cmdSlots},
	"book":         {"-barber ID -service ID -date YYYY-MM-DD -time HH:MM", cmdBook},
	"appointments": {"", cmdAppointments},
	"cancel":       {"[-yes] ID", cmdCancel},
	"status":       {"[-yes] ID CONFIRMED|COMPLETED|CANCELLED", cmdStatus},
	"review":       {"-appointment ID -rating 1-5 [-comment C]", cmdReview},
	"profile":      {"[save -shop S -address A -city C -district D [-description D]]", cmdProfile},
	"services":     {"[add -name N -duration M -price P | delete [-yes] ID]", cmdServices},
	"hours":        {"[set -day DAY (-open HH:MM -close HH:MM | -closed)]", cmdHours},
	"admin":        {"pending | approve ID | reject [-yes] ID", cmdAdmin},
}

func main() {
	cfg := config.Load()

	flush, err := logging.Init(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer flush()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, closeApp, err := newApp(ctx, cfg)
	if err != nil {
		zap.S().Fatalw("failed to start", "error", err)
	}

	runErr := cmd.run(ctx, a, os.Args[2:])
	closeApp()
	shown := a.printToasts()

	if runErr != nil {
		if !shown {
			report(runErr)
		}
		os.Exit(1)
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, func(), error) {
	store, err := storage.Open(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	client := api.New(cfg.APIBaseURL, api.WithTimeout(cfg.HTTPTimeout))
	sess := session.New(store, client.Auth)
	client.SetTokenSource(sess)

	if err := sess.Restore(ctx); err != nil {
		return nil, nil, fmt.Errorf("restore session: %w", err)
	}

	dispatcher := events.NewDispatcher(100)
	if err := events.LogAll(dispatcher); err != nil {
		return nil, nil, err
	}

	toasts := notify.NewStore()
	if err := toasts.Attach(dispatcher); err != nil {
		return nil, nil, err
	}

	a := &app{
		cfg:     cfg,
		client:  client,
		session: sess,
		toasts:  toasts,
		events:  dispatcher,
		in:      os.Stdin,
		out:     os.Stdout,
	}

	closeApp := func() {
		dispatcher.Close()
		if c, ok := store.(io.Closer); ok {
			_ = c.Close()
		}
	}
	return a, closeApp, nil
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: barberctl <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(w, "  %-13s %s\n", name, commands[name].usage)
	}
}

// report prints err the way the UI would show it.
func report(err error) {
	var redirect *session.RedirectError
	switch {
	case errors.As(err, &redirect) && redirect.To == session.LoginPath:
		fmt.Fprintln(os.Stderr, "Please sign in first: barberctl login")
	case errors.As(err, &redirect):
		fmt.Fprintf(os.Stderr, "Not available for this account (%s)\n", redirect.Reason)
	default:
		fmt.Fprintln(os.Stderr, httperr.Message(err))
	}
}
