package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"studio-backend/models"
	"studio-backend/reports"
)

// Ledger is a point-in-time copy of every collection.
type Ledger struct {
	Employees    []models.Employee
	Services     []models.Service
	Transactions []models.Transaction
	Expenses     []models.Expense
	Bookings     []models.Booking
}

// Report aggregates the ledger over r.
func (l Ledger) Report(r reports.Range) reports.Report {
	return reports.Aggregate(l.Employees, l.Transactions, l.Expenses, r)
}

// In returns a copy with every date expressed in loc, for display.
func (l Ledger) In(loc *time.Location) Ledger {
	out := l
	out.Transactions = make([]models.Transaction, len(l.Transactions))
	for i, t := range l.Transactions {
		t.Date = t.Date.In(loc)
		out.Transactions[i] = t
	}
	out.Expenses = make([]models.Expense, len(l.Expenses))
	for i, e := range l.Expenses {
		e.Date = e.Date.In(loc)
		out.Expenses[i] = e
	}
	out.Bookings = make([]models.Booking, len(l.Bookings))
	for i, b := range l.Bookings {
		b.Date = b.Date.In(loc)
		out.Bookings[i] = b
	}
	return out
}

// Replica keeps an in-memory copy of all collections, replacing each one
// wholesale whenever its snapshot arrives.
type Replica struct {
	mu       sync.RWMutex
	ledger   Ledger
	versions map[Collection]uint64
}

func NewReplica() *Replica {
	return &Replica{versions: make(map[Collection]uint64, len(Collections))}
}

// Apply replaces the collection carried by snap. Snapshots older than the
// one already applied are ignored.
func (r *Replica) Apply(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.versions[snap.Collection]; ok && snap.Version < v {
		return
	}
	switch docs := snap.Docs.(type) {
	case []models.Employee:
		r.ledger.Employees = docs
	case []models.Service:
		r.ledger.Services = docs
	case []models.Transaction:
		r.ledger.Transactions = docs
	case []models.Expense:
		r.ledger.Expenses = docs
	case []models.Booking:
		r.ledger.Bookings = docs
	default:
		log.Printf("[STORE] replica ignored snapshot of %s with %T", snap.Collection, snap.Docs)
		return
	}
	r.versions[snap.Collection] = snap.Version
}

func (r *Replica) Ledger() Ledger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Ledger{
		Employees:    append([]models.Employee(nil), r.ledger.Employees...),
		Services:     append([]models.Service(nil), r.ledger.Services...),
		Transactions: append([]models.Transaction(nil), r.ledger.Transactions...),
		Expenses:     append([]models.Expense(nil), r.ledger.Expenses...),
		Bookings:     append([]models.Booking(nil), r.ledger.Bookings...),
	}
}

func (r *Replica) Version(coll Collection) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.versions[coll]
}

// Start subscribes to every collection, applies the initial snapshots before
// returning and keeps applying updates until ctx is done.
func (r *Replica) Start(ctx context.Context, st *Store) error {
	var wg sync.WaitGroup
	cancels := make([]func(), 0, len(Collections))
	for _, coll := range Collections {
		ch, cancel, err := st.Subscribe(ctx, coll)
		if err != nil {
			for _, c := range cancels {
				c()
			}
			return fmt.Errorf("replica subscribe %s: %w", coll, err)
		}
		cancels = append(cancels, cancel)
		r.Apply(<-ch)

		wg.Add(1)
		go func() {
			defer wg.Done()
			for snap := range ch {
				r.Apply(snap)
			}
		}()
	}
	go func() {
		<-ctx.Done()
		for _, c := range cancels {
			c()
		}
		wg.Wait()
	}()
	return nil
}
