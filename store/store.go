package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"studio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Collection string

const (
	Employees    Collection = "employees"
	Services     Collection = "services"
	Transactions Collection = "transactions"
	Expenses     Collection = "expenses"
	Bookings     Collection = "bookings"
)

var Collections = []Collection{Employees, Services, Transactions, Expenses, Bookings}

var (
	ErrNotFound          = errors.New("document not found")
	ErrUnknownCollection = errors.New("unknown collection")
)

func ParseCollection(s string) (Collection, error) {
	for _, c := range Collections {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
}

// Snapshot is the full content of one collection at some version. Docs
// holds a []models.Employee, []models.Service, []models.Transaction,
// []models.Expense or []models.Booking depending on Collection.
type Snapshot struct {
	Collection Collection  `json:"collection"`
	Version    uint64      `json:"version"`
	Docs       interface{} `json:"docs"`
}

type Store struct {
	db  *gorm.DB
	hub *Hub

	// one lock per collection orders the read-then-publish sequences so a
	// stale read is never delivered after a fresher one.
	pubMu    map[Collection]*sync.Mutex
	versions map[Collection]*atomic.Uint64
}

func New(db *gorm.DB) *Store {
	s := &Store{
		db:       db,
		hub:      NewHub(),
		pubMu:    make(map[Collection]*sync.Mutex, len(Collections)),
		versions: make(map[Collection]*atomic.Uint64, len(Collections)),
	}
	for _, c := range Collections {
		s.pubMu[c] = &sync.Mutex{}
		s.versions[c] = &atomic.Uint64{}
	}
	return s
}

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error
	return out, err
}

func (s *Store) ListServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	err := s.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var out []models.Transaction
	err := s.db.WithContext(ctx).Order("occurred_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	var out []models.Expense
	err := s.db.WithContext(ctx).Order("occurred_at DESC").Find(&out).Error
	return out, err
}

func (s *Store) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	err := s.db.WithContext(ctx).Order("scheduled_at ASC").Find(&out).Error
	return out, err
}

func (s *Store) GetEmployee(ctx context.Context, id uuid.UUID) (models.Employee, error) {
	var emp models.Employee
	err := s.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return emp, ErrNotFound
	}
	return emp, err
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	var b models.Booking
	err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return b, ErrNotFound
	}
	return b, err
}

// Create inserts one document (or a slice of transactions) and publishes a
// fresh snapshot of its collection.
func (s *Store) Create(ctx context.Context, doc interface{}) error {
	coll, err := collectionOf(doc)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		log.Printf("[STORE] create in %s failed: %v", coll, err)
		return fmt.Errorf("create %s: %w", coll, err)
	}
	s.publish(ctx, coll)
	return nil
}

// CreateTransactions writes all entries of one checkout atomically.
func (s *Store) CreateTransactions(ctx context.Context, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&txs).Error
	})
	if err != nil {
		log.Printf("[STORE] create %d transactions failed: %v", len(txs), err)
		return fmt.Errorf("create transactions: %w", err)
	}
	s.publish(ctx, Transactions)
	return nil
}

func (s *Store) Update(ctx context.Context, coll Collection, id uuid.UUID, fields map[string]interface{}) error {
	model, err := modelFor(coll)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		log.Printf("[STORE] update %s/%s failed: %v", coll, id, res.Error)
		return fmt.Errorf("update %s: %w", coll, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.publish(ctx, coll)
	return nil
}

func (s *Store) Delete(ctx context.Context, coll Collection, id uuid.UUID) error {
	if err := s.deleteOne(ctx, coll, id); err != nil {
		return err
	}
	s.publish(ctx, coll)
	return nil
}

func (s *Store) deleteOne(ctx context.Context, coll Collection, id uuid.UUID) error {
	model, err := modelFor(coll)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(model, "id = ?", id)
	if res.Error != nil {
		log.Printf("[STORE] delete %s/%s failed: %v", coll, id, res.Error)
		return fmt.Errorf("delete %s: %w", coll, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadPin reads the admin secret once. A missing settings row means the
// default PIN.
func (s *Store) LoadPin(ctx context.Context) (string, error) {
	var settings models.Settings
	res := s.db.WithContext(ctx).Where("id = ?", models.SettingsID).Limit(1).Find(&settings)
	if res.Error != nil {
		return "", fmt.Errorf("load settings: %w", res.Error)
	}
	if res.RowsAffected == 0 || settings.Pin == "" {
		return models.DefaultPin, nil
	}
	return settings.Pin, nil
}

func (s *Store) SavePin(ctx context.Context, pin string) error {
	settings := models.Settings{ID: models.SettingsID, Pin: pin}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"pin"}),
	}).Create(&settings).Error
	if err != nil {
		log.Printf("[STORE] save pin failed: %v", err)
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Snapshot reads the whole collection.
func (s *Store) Snapshot(ctx context.Context, coll Collection) (Snapshot, error) {
	var (
		docs interface{}
		err  error
	)
	switch coll {
	case Employees:
		docs, err = s.ListEmployees(ctx)
	case Services:
		docs, err = s.ListServices(ctx)
	case Transactions:
		docs, err = s.ListTransactions(ctx)
	case Expenses:
		docs, err = s.ListExpenses(ctx)
	case Bookings:
		docs, err = s.ListBookings(ctx)
	default:
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownCollection, coll)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", coll, err)
	}
	return Snapshot{Collection: coll, Version: s.versions[coll].Load(), Docs: docs}, nil
}

// Subscribe returns a channel that first carries the current snapshot of
// coll and then a new one after every write to it. cancel must be called to
// release the subscription; the channel is closed by it.
func (s *Store) Subscribe(ctx context.Context, coll Collection) (<-chan Snapshot, func(), error) {
	mu, ok := s.pubMu[coll]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCollection, coll)
	}
	mu.Lock()
	defer mu.Unlock()

	ch, cancel := s.hub.Subscribe(coll)
	snap, err := s.Snapshot(ctx, coll)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	s.hub.deliver(ch, snap)
	return ch, cancel, nil
}

// publish re-reads coll after a committed write. A failed re-read is only
// logged: the write already succeeded and subscribers catch up on the next
// one.
func (s *Store) publish(ctx context.Context, coll Collection) {
	mu := s.pubMu[coll]
	mu.Lock()
	defer mu.Unlock()

	s.versions[coll].Add(1)
	snap, err := s.Snapshot(context.WithoutCancel(ctx), coll)
	if err != nil {
		log.Printf("[STORE] snapshot of %s after write failed, subscribers not updated: %v", coll, err)
		return
	}
	s.hub.Publish(snap)
}

func collectionOf(doc interface{}) (Collection, error) {
	switch doc.(type) {
	case *models.Employee:
		return Employees, nil
	case *models.Service:
		return Services, nil
	case *models.Transaction, *[]models.Transaction:
		return Transactions, nil
	case *models.Expense:
		return Expenses, nil
	case *models.Booking:
		return Bookings, nil
	}
	return "", fmt.Errorf("%w: %T", ErrUnknownCollection, doc)
}

func modelFor(coll Collection) (interface{}, error) {
	switch coll {
	case Employees:
		return &models.Employee{}, nil
	case Services:
		return &models.Service{}, nil
	case Transactions:
		return &models.Transaction{}, nil
	case Expenses:
		return &models.Expense{}, nil
	case Bookings:
		return &models.Booking{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, coll)
}

// LogMessage records an outbound message attempt. Message logs are not a
// live collection and publish nothing.
func (s *Store) LogMessage(ctx context.Context, entry *models.MessageLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Printf("[STORE] message log failed: %v", err)
		return fmt.Errorf("log message: %w", err)
	}
	return nil
}

func (s *Store) ListMessageLogs(ctx context.Context, kind string) ([]models.MessageLog, error) {
	var out []models.MessageLog
	q := s.db.WithContext(ctx).Order("sent_at DESC")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Find(&out).Error
	return out, err
}
