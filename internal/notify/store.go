// Package notify keeps the two user-facing message collections: short lived
// toasts that expire on a timer, and the persistent notification list with a
// read flag. They have independent lifecycles and neither is touched by the
// session.
package notify

import (
	"sync/atomic"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/observable"
)

type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
	Info    Type = "info"
)

const (
	SuccessDuration      = 3 * time.Second
	ErrorDuration        = 5 * time.Second
	WarningDuration      = 4 * time.Second
	InfoDuration         = 3 * time.Second
	NotificationDuration = 4 * time.Second
)

type Toast struct {
	ID       uint64
	Type     Type
	Message  string
	Duration time.Duration
}

type Notification struct {
	ID        uint64
	Type      Type
	Title     string
	Message   string
	Timestamp time.Time
	Read      bool
}

// Scheduler runs fn once after d. The default is time.AfterFunc.
type Scheduler func(d time.Duration, fn func())

type Option func(*Store)

func WithScheduler(s Scheduler) Option {
	return func(st *Store) { st.schedule = s }
}

func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

type Store struct {
	toastSeq        atomic.Uint64
	notificationSeq atomic.Uint64

	toasts        *observable.Value[[]Toast]
	notifications *observable.Value[[]Notification]

	schedule Scheduler
	now      func() time.Time
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		toasts:        observable.New[[]Toast](nil),
		notifications: observable.New[[]Notification](nil),
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ---------- toasts ----------

func (s *Store) ShowSuccess(message string) uint64 {
	return s.AddToast(Success, message, SuccessDuration)
}

func (s *Store) ShowError(message string) uint64 {
	return s.AddToast(Error, message, ErrorDuration)
}

func (s *Store) ShowWarning(message string) uint64 {
	return s.AddToast(Warning, message, WarningDuration)
}

func (s *Store) ShowInfo(message string) uint64 {
	return s.AddToast(Info, message, InfoDuration)
}

// AddToast appends a toast and arms its expiry timer.
func (s *Store) AddToast(typ Type, message string, d time.Duration) uint64 {
	t := Toast{
		ID:       s.toastSeq.Add(1),
		Type:     typ,
		Message:  message,
		Duration: d,
	}

	s.toasts.Update(func(cur []Toast) []Toast {
		next := make([]Toast, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, t)
	})

	s.schedule(d, func() { s.RemoveToast(t.ID) })
	return t.ID
}

// RemoveToast drops the toast with id. Unknown ids are ignored, so an expiry
// timer firing after a manual dismissal does nothing.
func (s *Store) RemoveToast(id uint64) {
	s.toasts.Update(func(cur []Toast) []Toast {
		idx := -1
		for i, t := range cur {
			if t.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return cur
		}
		next := make([]Toast, 0, len(cur)-1)
		next = append(next, cur[:idx]...)
		return append(next, cur[idx+1:]...)
	})
}

func (s *Store) Toasts() []Toast {
	return s.toasts.Get()
}

func (s *Store) SubscribeToasts(fn func([]Toast)) func() {
	return s.toasts.Subscribe(fn)
}

// ---------- notifications ----------

// AddNotification prepends an unread notification and shows its message as
// a toast.
func (s *Store) AddNotification(typ Type, title, message string) uint64 {
	return s.addNotification(typ, title, message, message)
}

func (s *Store) addNotification(typ Type, title, message, toast string) uint64 {
	n := Notification{
		ID:        s.notificationSeq.Add(1),
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: s.now(),
	}

	s.notifications.Update(func(cur []Notification) []Notification {
		next := make([]Notification, 0, len(cur)+1)
		next = append(next, n)
		return append(next, cur...)
	})

	s.AddToast(typ, toast, NotificationDuration)
	return n.ID
}

func (s *Store) MarkAsRead(id uint64) {
	s.notifications.Update(func(cur []Notification) []Notification {
		next := make([]Notification, len(cur))
		copy(next, cur)
		for i := range next {
			if next[i].ID == id {
				next[i].Read = true
			}
		}
		return next
	})
}

func (s *Store) MarkAllAsRead() {
	s.notifications.Update(func(cur []Notification) []Notification {
		next := make([]Notification, len(cur))
		copy(next, cur)
		for i := range next {
			next[i].Read = true
		}
		return next
	})
}

func (s *Store) ClearAll() {
	s.notifications.Set(nil)
}

func (s *Store) Notifications() []Notification {
	return s.notifications.Get()
}

func (s *Store) UnreadCount() int {
	n := 0
	for _, item := range s.notifications.Get() {
		if !item.Read {
			n++
		}
	}
	return n
}

func (s *Store) SubscribeNotifications(fn func([]Notification)) func() {
	return s.notifications.Subscribe(fn)
}
