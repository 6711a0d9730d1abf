package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"studio-backend/access"

	"github.com/google/uuid"
)

type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	state    State
	lastSeen time.Time
}

// Snapshot is the JSON view of a session. The PIN digits are never echoed
// back, only their count.
type Snapshot struct {
	ID        uuid.UUID   `json:"id"`
	View      View        `json:"view"`
	Tab       Tab         `json:"tab,omitempty"`
	PinLength int         `json:"pinLength"`
	PinError  bool        `json:"pinError"`
	Allowed   []EventType `json:"allowed"`
}

func (s *Session) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(now)
}

func (s *Session) snapshotLocked(now time.Time) Snapshot {
	snap := Snapshot{
		ID:        s.ID,
		View:      s.state.View,
		PinLength: len(s.state.PinInput),
		PinError:  s.state.PinError(now),
		Allowed:   Allowed(s.state.View),
	}
	sort.Slice(snap.Allowed, func(i, j int) bool { return snap.Allowed[i] < snap.Allowed[j] })
	if s.state.IsAdmin() {
		snap.Tab = s.state.Tab
	}
	return snap
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Authorize reports whether the session is still on the admin dashboard and
// counts the call as activity.
func (s *Session) Authorize(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsAdmin() {
		return false
	}
	s.lastSeen = now
	return true
}

// Apply runs a client event. pin_accepted and pin_rejected are reserved for
// SubmitPin.
func (s *Session) Apply(ev Event, now time.Time) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	if ev.Type == EventPinAccepted || ev.Type == EventPinRejected {
		return s.snapshotLocked(now), ErrInvalidTransition
	}
	next, err := Next(s.state, ev, now)
	if err != nil {
		return s.snapshotLocked(now), err
	}
	s.state = next
	return s.snapshotLocked(now), nil
}

// SubmitPin checks the typed digits against the gate. When pin is not empty
// it replaces whatever was typed through press_digit events.
func (s *Session) SubmitPin(ctx context.Context, gate access.Gate, pin string, now time.Time) (bool, Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
	if s.state.View != ViewPinEntry {
		return false, s.snapshotLocked(now), ErrInvalidTransition
	}
	if pin != "" {
		s.state.PinInput = pin
	}
	ok, err := gate.Verify(ctx, s.state.PinInput)
	if err != nil {
		return false, s.snapshotLocked(now), err
	}
	evType := EventPinRejected
	if ok {
		evType = EventPinAccepted
	}
	next, err := Next(s.state, Event{Type: evType}, now)
	if err != nil {
		return false, s.snapshotLocked(now), err
	}
	s.state = next
	return ok, s.snapshotLocked(now), nil
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*Session)}
}

func (r *Registry) Create(now time.Time) *Session {
	s := &Session{ID: uuid.New(), state: Initial(), lastSeen: now}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Prune drops sessions idle since before cutoff and returns how many went.
func (r *Registry) Prune(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
