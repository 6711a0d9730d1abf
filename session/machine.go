package session

import (
	"errors"
	"fmt"
	"time"
)

type View string

const (
	ViewLanding        View = "LANDING"
	ViewPinEntry       View = "PIN_ENTRY"
	ViewAdminDashboard View = "ADMIN_DASHBOARD"
	ViewClientBooking  View = "CLIENT_BOOKING"
)

type Tab string

const (
	TabHome     Tab = "HOME"
	TabFinance  Tab = "FINANCE"
	TabReports  Tab = "REPORTS"
	TabBookings Tab = "BOOKINGS"
)

func (t Tab) Valid() bool {
	switch t {
	case TabHome, TabFinance, TabReports, TabBookings:
		return true
	}
	return false
}

type EventType string

const (
	EventOpenAdmin        EventType = "open_admin"
	EventOpenBooking      EventType = "open_booking"
	EventCancel           EventType = "cancel"
	EventPressDigit       EventType = "press_digit"
	EventBackspace        EventType = "backspace"
	EventPinAccepted      EventType = "pin_accepted"
	EventPinRejected      EventType = "pin_rejected"
	EventSelectTab        EventType = "select_tab"
	EventLogout           EventType = "logout"
	EventBookingSubmitted EventType = "booking_submitted"
)

type Event struct {
	Type  EventType `json:"type" binding:"required"`
	Tab   Tab       `json:"tab,omitempty"`
	Digit string    `json:"digit,omitempty"`
}

const (
	// PinErrorWindow is how long the error indicator stays up after a wrong PIN.
	PinErrorWindow = time.Second
	MaxPinInput    = 6
)

var ErrInvalidTransition = errors.New("invalid view transition")

// State is the whole view state of one operator session. Tab is only
// meaningful on the admin dashboard.
type State struct {
	View          View
	Tab           Tab
	PinInput      string
	PinErrorUntil time.Time
}

func Initial() State {
	return State{View: ViewLanding, Tab: TabHome}
}

func (s State) PinError(now time.Time) bool {
	return now.Before(s.PinErrorUntil)
}

func (s State) IsAdmin() bool {
	return s.View == ViewAdminDashboard
}

type transitionFunc func(s State, ev Event, now time.Time) (State, error)

var transitions = map[View]map[EventType]transitionFunc{
	ViewLanding: {
		EventOpenAdmin:   goTo(ViewPinEntry),
		EventOpenBooking: goTo(ViewClientBooking),
	},
	ViewPinEntry: {
		EventPressDigit: pressDigit,
		EventBackspace:  backspace,
		EventCancel:     goTo(ViewLanding),
		EventPinAccepted: func(s State, _ Event, _ time.Time) (State, error) {
			return State{View: ViewAdminDashboard, Tab: TabHome}, nil
		},
		EventPinRejected: func(s State, _ Event, now time.Time) (State, error) {
			s.PinInput = ""
			s.PinErrorUntil = now.Add(PinErrorWindow)
			return s, nil
		},
	},
	ViewAdminDashboard: {
		EventSelectTab: func(s State, ev Event, _ time.Time) (State, error) {
			if !ev.Tab.Valid() {
				return s, fmt.Errorf("%w: unknown tab %q", ErrInvalidTransition, ev.Tab)
			}
			s.Tab = ev.Tab
			return s, nil
		},
		EventLogout: goTo(ViewLanding),
	},
	ViewClientBooking: {
		EventCancel:           goTo(ViewLanding),
		EventBookingSubmitted: goTo(ViewLanding),
	},
}

func goTo(v View) transitionFunc {
	return func(State, Event, time.Time) (State, error) {
		st := Initial()
		st.View = v
		return st, nil
	}
}

func pressDigit(s State, ev Event, _ time.Time) (State, error) {
	if len(ev.Digit) != 1 || ev.Digit[0] < '0' || ev.Digit[0] > '9' {
		return s, fmt.Errorf("%w: %q is not a digit", ErrInvalidTransition, ev.Digit)
	}
	if len(s.PinInput) < MaxPinInput {
		s.PinInput += ev.Digit
	}
	return s, nil
}

func backspace(s State, _ Event, _ time.Time) (State, error) {
	if n := len(s.PinInput); n > 0 {
		s.PinInput = s.PinInput[:n-1]
	}
	return s, nil
}

// Next applies ev to s. Events that have no entry for the current view are
// rejected with ErrInvalidTransition and leave the state untouched.
func Next(s State, ev Event, now time.Time) (State, error) {
	fn, ok := transitions[s.View][ev.Type]
	if !ok {
		return s, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev.Type, s.View)
	}
	return fn(s, ev, now)
}

// Allowed lists the events accepted in view v.
func Allowed(v View) []EventType {
	out := make([]EventType, 0, len(transitions[v]))
	for ev := range transitions[v] {
		out = append(out, ev)
	}
	return out
}
