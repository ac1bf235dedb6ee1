package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notify"
	"github.com/BruksfildServices01/barber-booking/internal/panel"
)

// confirmer prompts on stdin unless the user passed -yes.
func (a *app) confirmer(yes bool) panel.Confirmer {
	if yes {
		return panel.AlwaysConfirm
	}
	return panel.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(a.out, "%s [y/N] ", prompt)
		line, _ := bufio.NewReader(a.in).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

// printToasts writes the messages raised during the command. It reports
// whether any of them was an error.
func (a *app) printToasts() bool {
	hadError := false
	for _, t := range a.toasts.Toasts() {
		if t.Type == notify.Error {
			hadError = true
			fmt.Fprintf(os.Stderr, "error: %s\n", t.Message)
			continue
		}
		fmt.Fprintf(a.out, "%s: %s\n", t.Type, t.Message)
	}
	return hadError
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *app) renderBarbers(page *models.Page[models.BarberListItem]) {
	w := a.table()
	fmt.Fprintln(w, "ID\tSHOP\tLOCATION\tRATING\tFROM")
	for _, b := range page.Content {
		from := b.StartingPrice
		if from == "" {
			from = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s / %s\t%.1f (%d)\t%s\n",
			b.ID, b.ShopName, b.City, b.District, b.AverageRating, b.TotalReviews, from)
	}
	_ = w.Flush()
	fmt.Fprintf(a.out, "page %d of %d, %d barbers\n", page.Number+1, max(page.TotalPages, 1), page.TotalElements)
}

func (a *app) renderDetail(b *models.BarberDetail, reviews []models.Review) {
	fmt.Fprintf(a.out, "#%d %s [%s]\n", b.ID, b.ShopName, b.Status)
	fmt.Fprintf(a.out, "%s, %s / %s\n", b.Address, b.City, b.District)
	if b.Description != "" {
		fmt.Fprintln(a.out, b.Description)
	}
	fmt.Fprintf(a.out, "Rating %.1f from %d reviews\n\n", b.AverageRating, b.TotalReviews)

	a.renderServices(b.Services)

	if len(b.WorkingHours) > 0 {
		fmt.Fprintln(a.out)
		w := a.table()
		for _, wh := range b.WorkingHours {
			if wh.IsClosed {
				fmt.Fprintf(w, "%s\tclosed\n", wh.DayName)
				continue
			}
			fmt.Fprintf(w, "%s\t%s-%s\n", wh.DayName, models.ShortTime(wh.StartTime), models.ShortTime(wh.EndTime))
		}
		_ = w.Flush()
	}

	if len(reviews) > 0 {
		fmt.Fprintln(a.out)
		for _, r := range reviews {
			fmt.Fprintf(a.out, "%s %s: %s\n", strings.Repeat("*", r.Rating), r.CustomerName, r.Comment)
		}
	}
}

func (a *app) renderServices(services []models.Service) {
	if len(services) == 0 {
		fmt.Fprintln(a.out, "No services.")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tSERVICE\tMINUTES\tPRICE")
	for _, s := range services {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\n", s.ID, s.Name, s.DurationMinutes, s.Price)
	}
	_ = w.Flush()
}

func (a *app) renderSlots(slots []models.TimeSlot) {
	if len(slots) == 0 {
		fmt.Fprintln(a.out, "No slots on this day.")
		return
	}
	w := a.table()
	for _, s := range slots {
		state := "free"
		if !s.Available {
			state = "taken"
		}
		fmt.Fprintf(w, "%s-%s\t%s\n", s.Short(), models.ShortTime(s.EndTime), state)
	}
	_ = w.Flush()
}

func (a *app) renderAppointments(list []models.Appointment, forBarber bool) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No appointments.")
		return
	}
	w := a.table()
	if forBarber {
		fmt.Fprintln(w, "ID\tDATE\tTIME\tCUSTOMER\tSERVICE\tSTATUS\tPRICE")
	} else {
		fmt.Fprintln(w, "ID\tDATE\tTIME\tSHOP\tSERVICE\tSTATUS\tPRICE")
	}
	for _, ap := range list {
		who := ap.BarberShopName
		if forBarber {
			who = ap.CustomerName
		}
		status := ap.Status
		if ap.CanReview {
			status += " (review pending)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s-%s\t%s\t%s\t%s\t%.2f\n",
			ap.ID, ap.AppointmentDate, models.ShortTime(ap.StartTime), models.ShortTime(ap.EndTime),
			who, ap.ServiceName, status, ap.TotalPrice)
	}
	_ = w.Flush()
}

func (a *app) renderWeek(days []models.WorkingDay) {
	w := a.table()
	for _, d := range days {
		if d.IsClosed {
			fmt.Fprintf(w, "%s\tclosed\n", d.DayOfWeek)
			continue
		}
		fmt.Fprintf(w, "%s\t%s-%s\n", d.DayOfWeek, deref(d.StartTime), deref(d.EndTime))
	}
	_ = w.Flush()
}

func (a *app) renderPending(list []models.BarberListItem) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No barbers waiting for approval.")
		return
	}
	w := a.table()
	fmt.Fprintln(w, "ID\tSHOP\tLOCATION")
	for _, b := range list {
		fmt.Fprintf(w, "%d\t%s\t%s / %s\n", b.ID, b.ShopName, b.City, b.District)
	}
	_ = w.Flush()
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return models.ShortTime(*s)
}
